// Package service 提供订单筛选、导入导出等跨仓库的业务能力。
package service

import "github.com/bitfantasy/nimo-orders/internal/repository"

// Services 服务集合
type Services struct {
	Order  *OrderService
	Import *ImportService
	Export *ExportService
}

func NewServices(repos *repository.Repositories) *Services {
	orderSvc := NewOrderService(repos.Order)
	return &Services{
		Order:  orderSvc,
		Import: NewImportService(repos.Order),
		Export: NewExportService(repos, orderSvc),
	}
}
