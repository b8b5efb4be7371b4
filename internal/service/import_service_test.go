package service

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

func TestImportCSVSkipsRowsMissingRequired(t *testing.T) {
	svc, repos := newTestServices(t)

	// 五行里一行缺客户：并入 4 行
	csv := strings.Join([]string{
		"id,日期,客户,货物,单位,单价,数量,总价",
		"900,2024-01-01,甲,开关,个,2.5,4,999",
		"901,2024-01-02,乙,插座,个,3,2,999",
		"902,2024-01-03,,断路器,个,5,1,999",
		"903,2024-01-04,丙,电缆,米,1.2,100,999",
		"904,2024-01-05,丁,配电箱,套,260,1,999",
	}, "\n")

	count, err := svc.Import.Import(strings.NewReader(csv), FormatCSV)
	require.NoError(t, err)
	require.Equal(t, 4, count)

	orders, err := repos.Order.List()
	require.NoError(t, err)
	require.Len(t, orders, 4)

	// 导入的 id 一律丢弃，重新从 1 起分配
	for i, o := range orders {
		require.Equal(t, i+1, o.ID)
	}
	// 总价不信任输入，重算
	require.Equal(t, "10", orders[0].Total.String())
	require.Equal(t, "120", orders[2].Total.String())
}

func TestImportCSVWithBOMAndEnglishHeaders(t *testing.T) {
	svc, repos := newTestServices(t)

	csv := "\xEF\xBB\xBFdate,customer,product,unit,price,quantity\n" +
		"2024-02-01,华东电力,开关,个,2,3\n"
	count, err := svc.Import.Import(strings.NewReader(csv), FormatCSV)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	orders, err := repos.Order.List()
	require.NoError(t, err)
	require.Equal(t, "华东电力", orders[0].Customer)
	require.Equal(t, "6", orders[0].Total.String())
}

// 国内 Excel 另存的 CSV 常是 GBK 编码，导入时按 GBK 解码
func TestImportCSVDecodesGBK(t *testing.T) {
	svc, repos := newTestServices(t)

	csv := "日期,客户,货物,单位,单价,数量\n" +
		"2024-02-01,华东电力,配电箱,套,260.5,2\n"
	gbk, _, err := transform.Bytes(simplifiedchinese.GBK.NewEncoder(), []byte(csv))
	require.NoError(t, err)
	require.False(t, utf8.Valid(gbk))

	count, err := svc.Import.Import(bytes.NewReader(gbk), FormatCSV)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	orders, err := repos.Order.List()
	require.NoError(t, err)
	require.Equal(t, "华东电力", orders[0].Customer)
	require.Equal(t, "配电箱", orders[0].Product)
	require.Equal(t, "套", orders[0].Unit)
	require.Equal(t, "521", orders[0].Total.String())
}

func TestImportCSVPriceDefaultsToZero(t *testing.T) {
	svc, repos := newTestServices(t)

	csv := "日期,客户,货物,数量\n2024-02-01,甲,开关,3\n"
	count, err := svc.Import.Import(strings.NewReader(csv), FormatCSV)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	orders, err := repos.Order.List()
	require.NoError(t, err)
	require.True(t, orders[0].Price.IsZero())
	require.True(t, orders[0].Total.IsZero())
}

func TestImportIgnoresUnknownHeaders(t *testing.T) {
	svc, repos := newTestServices(t)

	csv := "日期,客户,货物,数量,备注\n2024-02-01,甲,开关,3,随便写的\n"
	count, err := svc.Import.Import(strings.NewReader(csv), FormatCSV)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	orders, err := repos.Order.List()
	require.NoError(t, err)
	require.Equal(t, "开关", orders[0].Product)
}

func TestImportZeroAcceptedRowsWritesNothing(t *testing.T) {
	svc, repos := newTestServices(t)

	csv := "日期,客户,货物,数量\n2024-02-01,,开关,3\n"
	count, err := svc.Import.Import(strings.NewReader(csv), FormatCSV)
	require.NoError(t, err)
	require.Zero(t, count)

	orders, err := repos.Order.List()
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestImportUnsupportedFormat(t *testing.T) {
	svc, _ := newTestServices(t)
	_, err := svc.Import.Import(strings.NewReader("whatever"), "")
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = svc.Import.Import(strings.NewReader("whatever"), "pdf")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestImportExcel(t *testing.T) {
	svc, repos := newTestServices(t)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetSheetRow(sheet, "A1", &[]interface{}{"ID", "日期", "客户", "货物", "单位", "单价", "数量", "总价"})
	f.SetSheetRow(sheet, "A2", &[]interface{}{"7", "2024-03-01", "华南电网", "电缆", "米", "1.5", "200", "0"})
	f.SetSheetRow(sheet, "A3", &[]interface{}{"8", "2024-03-02", "", "电缆", "米", "1.5", "50", "0"})
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	count, err := svc.Import.Import(&buf, FormatExcel)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	orders, err := repos.Order.List()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, 1, orders[0].ID)
	require.Equal(t, "300", orders[0].Total.String())
}

// 导出再导入还原同样的业务字段（id 可以不同）
func TestExportImportRoundTrip(t *testing.T) {
	svc, repos := newTestServices(t)
	seedOrder(t, repos, "2024-04-01", "华东电力", "配电箱", "260.5", "2")
	seedOrder(t, repos, "2024-04-02", "华南电网", "电缆", "1.25", "400")

	data, filename, err := svc.Export.OrdersCSV(SearchParams{})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(filename, "orders_"))

	// 导入到一套全新的存储
	svc2, repos2 := newTestServices(t)
	count, err := svc2.Import.Import(bytes.NewReader(data), FormatCSV)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	original, err := repos.Order.List()
	require.NoError(t, err)
	imported, err := repos2.Order.List()
	require.NoError(t, err)
	require.Len(t, imported, len(original))
	for i := range original {
		require.Equal(t, original[i].Date, imported[i].Date)
		require.Equal(t, original[i].Customer, imported[i].Customer)
		require.Equal(t, original[i].Product, imported[i].Product)
		require.Equal(t, original[i].Unit, imported[i].Unit)
		require.True(t, original[i].Price.Equal(imported[i].Price))
		require.True(t, original[i].Quantity.Equal(imported[i].Quantity))
		require.True(t, original[i].Total.Equal(imported[i].Total))
	}
}
