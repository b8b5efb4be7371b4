package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/bitfantasy/nimo-orders/internal/entity"
	"github.com/bitfantasy/nimo-orders/internal/repository"
	"github.com/xuri/excelize/v2"
)

// 订单导出的双语表头，列顺序与 entity.OrderFields 一致
var orderExportHeaders = []string{"ID", "日期", "客户", "货物", "单位", "单价", "数量", "总价"}

// ExportService 订单及全量数据导出。筛选复用 OrderService.Filter，
// 保证搜索结果和导出内容永远一致。
type ExportService struct {
	repos    *repository.Repositories
	orderSvc *OrderService
}

func NewExportService(repos *repository.Repositories, orderSvc *OrderService) *ExportService {
	return &ExportService{repos: repos, orderSvc: orderSvc}
}

func timestamp() string {
	return time.Now().Format("20060102_150405")
}

// OrdersCSV 导出筛选后的订单为 CSV。带 UTF-8 BOM，Excel 直接打开不乱码。
func (s *ExportService) OrdersCSV(params SearchParams) ([]byte, string, error) {
	orders, err := s.repos.Order.List()
	if err != nil {
		return nil, "", err
	}
	results := s.orderSvc.Filter(orders, params)

	var buf bytes.Buffer
	buf.WriteString("\xEF\xBB\xBF")
	w := csv.NewWriter(&buf)
	if err := w.Write(entity.OrderFields); err != nil {
		return nil, "", fmt.Errorf("导出 CSV 失败: %w", err)
	}
	for _, o := range results {
		rec := o.ToRecord()
		row := make([]string, len(entity.OrderFields))
		for i, f := range entity.OrderFields {
			row[i] = rec[f]
		}
		if err := w.Write(row); err != nil {
			return nil, "", fmt.Errorf("导出 CSV 失败: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("导出 CSV 失败: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf("orders_%s.csv", timestamp()), nil
}

// OrdersExcel 导出筛选后的订单为 xlsx
func (s *ExportService) OrdersExcel(params SearchParams) (*excelize.File, string, error) {
	orders, err := s.repos.Order.List()
	if err != nil {
		return nil, "", err
	}
	results := s.orderSvc.Filter(orders, params)

	f := excelize.NewFile()
	sheet := "订单"
	f.SetSheetName("Sheet1", sheet)
	if err := writeOrderSheet(f, sheet, results); err != nil {
		return nil, "", err
	}
	return f, fmt.Sprintf("orders_%s.xlsx", timestamp()), nil
}

// AllData 导出全部四张表，一表一个工作表
func (s *ExportService) AllData() (*excelize.File, string, error) {
	f := excelize.NewFile()

	lists, err := s.repos.PriceList.List()
	if err != nil {
		return nil, "", err
	}
	sheet := "货物清单"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &[]interface{}{"ID", "名称"})
	for i, pl := range lists {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow(sheet, cell, &[]interface{}{pl.ID, pl.Name})
	}

	products, err := s.repos.Product.List(0)
	if err != nil {
		return nil, "", err
	}
	sheet = "货物明细"
	f.NewSheet(sheet)
	f.SetSheetRow(sheet, "A1", &[]interface{}{"ID", "清单ID", "名称", "单位", "单价"})
	for i, p := range products {
		cell := fmt.Sprintf("A%d", i+2)
		rec := p.ToRecord()
		f.SetSheetRow(sheet, cell, &[]interface{}{p.ID, rec["list_id"], p.Name, p.Unit, p.Price.String()})
	}

	customers, err := s.repos.Customer.List()
	if err != nil {
		return nil, "", err
	}
	sheet = "客户"
	f.NewSheet(sheet)
	f.SetSheetRow(sheet, "A1", &[]interface{}{"ID", "名称", "货物清单ID"})
	for i, c := range customers {
		cell := fmt.Sprintf("A%d", i+2)
		rec := c.ToRecord()
		f.SetSheetRow(sheet, cell, &[]interface{}{c.ID, c.Name, rec["list_id"]})
	}

	orders, err := s.repos.Order.List()
	if err != nil {
		return nil, "", err
	}
	sheet = "订单"
	f.NewSheet(sheet)
	if err := writeOrderSheet(f, sheet, orders); err != nil {
		return nil, "", err
	}

	return f, fmt.Sprintf("all_data_%s.xlsx", timestamp()), nil
}

// writeOrderSheet 写订单工作表：双语表头加数据行，数值列保留小数文本
func writeOrderSheet(f *excelize.File, sheet string, orders []entity.Order) error {
	headers := make([]interface{}, len(orderExportHeaders))
	for i, h := range orderExportHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("导出工作表失败: %w", err)
	}
	for i, o := range orders {
		row := []interface{}{
			o.ID, o.Date, o.Customer, o.Product, o.Unit,
			o.Price.String(), o.Quantity.String(), o.Total.String(),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("导出工作表失败: %w", err)
		}
	}
	return nil
}
