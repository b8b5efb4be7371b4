package service

import (
	"regexp"
	"strings"

	"github.com/bitfantasy/nimo-orders/internal/entity"
	"github.com/bitfantasy/nimo-orders/internal/repository"
	"github.com/shopspring/decimal"
)

// SearchParams 订单筛选条件，空字段不参与过滤
type SearchParams struct {
	Customer string
	Product  string
	DateFrom string
	DateTo   string
}

// OrderService 订单查询。Filter 是搜索和导出共用的唯一过滤实现，
// 避免两条路径各写一份筛选逻辑产生分歧。
type OrderService struct {
	repo *repository.OrderRepository
}

func NewOrderService(repo *repository.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// Filter 按条件过滤订单，保持表内原有顺序
func (s *OrderService) Filter(orders []entity.Order, params SearchParams) []entity.Order {
	matchCustomer := customerMatcher(params.Customer)
	results := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if params.Customer != "" && !matchCustomer(o.Customer) {
			continue
		}
		if params.Product != "" && !strings.Contains(o.Product, params.Product) {
			continue
		}
		if params.DateFrom != "" && o.Date < params.DateFrom {
			continue
		}
		if params.DateTo != "" && !withinDateTo(o.Date, params.DateTo) {
			continue
		}
		results = append(results, o)
	}
	return results
}

// Search 过滤订单并汇总总价（保留两位小数）
func (s *OrderService) Search(params SearchParams) ([]entity.Order, decimal.Decimal, error) {
	orders, err := s.repo.List()
	if err != nil {
		return nil, decimal.Zero, err
	}
	results := s.Filter(orders, params)
	total := decimal.Zero
	for _, o := range results {
		total = total.Add(o.Total)
	}
	return results, total.Round(2), nil
}

// customerMatcher 客户条件按正则解释；不是合法正则时退化为子串匹配，
// 不向调用方抛错
func customerMatcher(pattern string) func(string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return func(customer string) bool {
			return strings.Contains(customer, pattern)
		}
	}
	return re.MatchString
}

// withinDateTo 上界按长度推断精度：4 位比年、7 位比年月、其余比全串。
// 日期是零填充的 YYYY-MM-DD，字典序比较即日期序。
func withinDateTo(date, dateTo string) bool {
	switch len(dateTo) {
	case 4:
		return prefix(date, 4) <= dateTo
	case 7:
		return prefix(date, 7) <= dateTo
	default:
		return date <= dateTo
	}
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
