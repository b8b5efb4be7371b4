package service

import (
	"testing"

	"github.com/bitfantasy/nimo-orders/internal/entity"
	"github.com/bitfantasy/nimo-orders/internal/repository"
	"github.com/bitfantasy/nimo-orders/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestServices(t *testing.T) (*Services, *repository.Repositories) {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	repos := repository.NewRepositories(st, []string{"套", "个"})
	return NewServices(repos), repos
}

func seedOrder(t *testing.T, repos *repository.Repositories, date, customer, product, price, quantity string) {
	t.Helper()
	qty := decimal.RequireFromString(quantity)
	_, err := repos.Order.Create(repository.CreateOrderParams{
		Date:     date,
		Customer: customer,
		Product:  product,
		Unit:     "个",
		Price:    decimal.RequireFromString(price),
		Quantity: &qty,
	})
	require.NoError(t, err)
}

func dates(orders []entity.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.Date
	}
	return out
}

func TestSearchDateToPrecision(t *testing.T) {
	svc, repos := newTestServices(t)
	for _, d := range []string{
		"2024-01-01", "2024-06-15", "2024-06-30", "2024-07-01", "2024-12-31", "2025-01-01",
	} {
		seedOrder(t, repos, d, "客户", "货物", "1", "1")
	}

	// 按年：2024 含全年，排除 2025-01-01
	results, _, err := svc.Order.Search(SearchParams{DateTo: "2024"})
	require.NoError(t, err)
	require.Equal(t, []string{"2024-01-01", "2024-06-15", "2024-06-30", "2024-07-01", "2024-12-31"}, dates(results))

	// 按月：2024-06 含 2024-06-30，排除 2024-07-01
	results, _, err = svc.Order.Search(SearchParams{DateTo: "2024-06"})
	require.NoError(t, err)
	require.Equal(t, []string{"2024-01-01", "2024-06-15", "2024-06-30"}, dates(results))

	// 按日：2024-06-15 含当日，排除次日
	results, _, err = svc.Order.Search(SearchParams{DateTo: "2024-06-15"})
	require.NoError(t, err)
	require.Equal(t, []string{"2024-01-01", "2024-06-15"}, dates(results))
}

func TestSearchDateFrom(t *testing.T) {
	svc, repos := newTestServices(t)
	seedOrder(t, repos, "2024-05-31", "客户", "货物", "1", "1")
	seedOrder(t, repos, "2024-06-01", "客户", "货物", "1", "1")

	results, _, err := svc.Order.Search(SearchParams{DateFrom: "2024-06-01"})
	require.NoError(t, err)
	require.Equal(t, []string{"2024-06-01"}, dates(results))
}

func TestSearchCustomerRegexWithFallback(t *testing.T) {
	svc, repos := newTestServices(t)
	seedOrder(t, repos, "2024-01-01", "华东电力", "货物", "1", "1")
	seedOrder(t, repos, "2024-01-02", "华南电网", "货物", "1", "1")
	seedOrder(t, repos, "2024-01-03", "西部机械(集团)", "货物", "1", "1")

	// 合法正则
	results, _, err := svc.Order.Search(SearchParams{Customer: "^华.电"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// 非法正则退化为子串匹配，不报错
	results, _, err = svc.Order.Search(SearchParams{Customer: "机械(集团"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "西部机械(集团)", results[0].Customer)
}

func TestSearchProductSubstring(t *testing.T) {
	svc, repos := newTestServices(t)
	seedOrder(t, repos, "2024-01-01", "客户", "低压配电箱", "1", "1")
	seedOrder(t, repos, "2024-01-02", "客户", "电缆", "1", "1")

	results, _, err := svc.Order.Search(SearchParams{Product: "配电"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "低压配电箱", results[0].Product)
}

func TestSearchSumsTotals(t *testing.T) {
	svc, repos := newTestServices(t)
	seedOrder(t, repos, "2024-01-01", "客户", "货物", "10.05", "2") // 20.10
	seedOrder(t, repos, "2024-01-02", "客户", "货物", "3.33", "3")  // 9.99

	results, total, err := svc.Order.Search(SearchParams{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "30.09", total.String())
}

func TestSearchKeepsTableOrder(t *testing.T) {
	svc, repos := newTestServices(t)
	seedOrder(t, repos, "2024-03-01", "客户", "货物", "1", "1")
	seedOrder(t, repos, "2024-01-01", "客户", "货物", "1", "1")
	seedOrder(t, repos, "2024-02-01", "客户", "货物", "1", "1")

	results, _, err := svc.Order.Search(SearchParams{})
	require.NoError(t, err)
	require.Equal(t, []string{"2024-03-01", "2024-01-01", "2024-02-01"}, dates(results))
}
