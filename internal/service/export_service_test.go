package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// 全量导出的 list_id 列与落盘表示一致：未关联清单写空，不写 0
func TestAllDataExportListID(t *testing.T) {
	svc, repos := newTestServices(t)

	_, err := repos.PriceList.Create("标准报价")
	require.NoError(t, err)
	_, err = repos.Product.Create(1, "断路器", "个", decimal.RequireFromString("5.5"))
	require.NoError(t, err)
	_, err = repos.Customer.Create("华东电力", 1)
	require.NoError(t, err)
	_, err = repos.Customer.Create("散客", 0)
	require.NoError(t, err)

	f, filename, err := svc.Export.AllData()
	require.NoError(t, err)
	defer f.Close()
	require.True(t, len(filename) > 0)

	v, err := f.GetCellValue("货物明细", "B2")
	require.NoError(t, err)
	require.Equal(t, "1", v)

	v, err = f.GetCellValue("客户", "C2")
	require.NoError(t, err)
	require.Equal(t, "1", v)

	v, err = f.GetCellValue("客户", "C3")
	require.NoError(t, err)
	require.Empty(t, v)
}
