package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/bitfantasy/nimo-orders/internal/entity"
	"github.com/bitfantasy/nimo-orders/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// ErrUnsupportedFormat 导入文件不是受支持的格式
var ErrUnsupportedFormat = errors.New("仅支持 .csv 和 .xlsx 文件")

// 导入格式声明
const (
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
)

// headerAliases 中英双语表头到规范字段名的映射。
// 新增别名直接加表项，不要写分支。
var headerAliases = map[string]string{
	"ID": "id", "id": "id",
	"日期": "date", "date": "date",
	"客户": "customer", "customer": "customer",
	"货物": "product", "product": "product",
	"单位": "unit", "unit": "unit",
	"单价": "price", "price": "price",
	"数量": "quantity", "quantity": "quantity",
	"总价": "total", "total": "total",
}

// ImportService 订单导入：解析外部表格、映射表头、逐行校验，
// 再把通过校验的行一次性并入订单表。
type ImportService struct {
	orders *repository.OrderRepository
}

func NewImportService(orders *repository.OrderRepository) *ImportService {
	return &ImportService{orders: orders}
}

// Import 按声明的格式解析字节流并并入订单表，返回成功并入的行数。
// 缺必填字段的行静默跳过；导入行的 id 一律丢弃、重新分配。
func (s *ImportService) Import(r io.Reader, format string) (int, error) {
	var rows [][]string
	var err error
	switch format {
	case FormatCSV:
		rows, err = parseCSV(r)
	case FormatExcel:
		rows, err = parseExcel(r)
	default:
		return 0, ErrUnsupportedFormat
	}
	if err != nil {
		return 0, err
	}
	if len(rows) < 2 {
		return 0, nil
	}

	headers := rows[0]
	accepted := make([]entity.Order, 0, len(rows)-1)
	for _, row := range rows[1:] {
		mapped := mapRow(headers, row)
		order, ok := buildOrder(mapped)
		if !ok {
			continue
		}
		accepted = append(accepted, order)
	}
	return s.orders.Merge(accepted)
}

// mapRow 按表头别名把一行映射到规范字段，认不出的表头忽略
func mapRow(headers, row []string) map[string]string {
	mapped := make(map[string]string, len(headers))
	for i, h := range headers {
		field, ok := headerAliases[strings.TrimSpace(h)]
		if !ok {
			continue
		}
		if i < len(row) {
			mapped[field] = strings.TrimSpace(row[i])
		}
	}
	return mapped
}

// buildOrder 校验一行并构造订单。date/customer/product/quantity
// 任一为空则整行跳过；单价数量解析失败同样跳过。
func buildOrder(mapped map[string]string) (entity.Order, bool) {
	if mapped["date"] == "" || mapped["customer"] == "" ||
		mapped["product"] == "" || mapped["quantity"] == "" {
		return entity.Order{}, false
	}
	price, err := parseNumber(mapped["price"])
	if err != nil {
		return entity.Order{}, false
	}
	quantity, err := parseNumber(mapped["quantity"])
	if err != nil {
		return entity.Order{}, false
	}
	return entity.Order{
		Date:     mapped["date"],
		Customer: mapped["customer"],
		Product:  mapped["product"],
		Unit:     mapped["unit"],
		Price:    price,
		Quantity: quantity,
	}, true
}

func parseNumber(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v)
}

// parseCSV 解析 CSV 字节流。去掉 UTF-8 BOM；
// 内容不是合法 UTF-8 时按 GBK 解码（国内 Excel 另存的 CSV 常见如此）。
func parseCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取导入文件失败: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("%w", ErrUnsupportedFormat)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析 CSV 失败: %w", err)
	}
	return rows, nil
}

// parseExcel 解析 xlsx 字节流，取第一个工作表
func parseExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", ErrUnsupportedFormat)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	return rows, nil
}
