// Package entity 定义四张表的记录类型及其与 CSV 记录的互转。
// 数值字段内部用 decimal 表示，只在存储和导出边界序列化为文本。
package entity

import (
	"fmt"
	"strconv"

	"github.com/bitfantasy/nimo-orders/internal/store"
	"github.com/shopspring/decimal"
)

func parseID(rec store.Record) (int, error) {
	id, err := strconv.Atoi(rec["id"])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", store.ErrMalformedID, rec["id"])
	}
	return id, nil
}

// parseListID 清单关联可以为空，空串表示未关联
func parseListID(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("list_id 字段无效: %q", v)
	}
	return id, nil
}

func formatListID(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}

// parseDecimal 空串按 0 处理
func parseDecimal(field, v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s 字段无效: %q", field, v)
	}
	return d, nil
}
