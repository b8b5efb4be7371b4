// Package repository 在表存储之上提供带约束校验的实体 CRUD。
// 每个写操作是一次 store.Mutate：锁内加载整表、内存修改、整表回写，
// 校验失败在保存之前返回，文件不会留下半截状态。
package repository

import "github.com/bitfantasy/nimo-orders/internal/store"

// Repositories 仓库集合
type Repositories struct {
	PriceList *PriceListRepository
	Product   *ProductRepository
	Customer  *CustomerRepository
	Order     *OrderRepository
}

// NewRepositories 创建仓库集合。validUnits 为空时不限制货物单位。
func NewRepositories(st *store.Store, validUnits []string) *Repositories {
	return &Repositories{
		PriceList: NewPriceListRepository(st),
		Product:   NewProductRepository(st, validUnits),
		Customer:  NewCustomerRepository(st),
		Order:     NewOrderRepository(st),
	}
}
