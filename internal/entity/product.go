package entity

import (
	"strconv"

	"github.com/bitfantasy/nimo-orders/internal/store"
	"github.com/shopspring/decimal"
)

// ProductFields products 表的列顺序
var ProductFields = []string{"id", "list_id", "name", "unit", "price"}

// Product 货物明细，归属于一张货物清单
type Product struct {
	ID     int             `json:"id"`
	ListID int             `json:"list_id"`
	Name   string          `json:"name"`
	Unit   string          `json:"unit"`
	Price  decimal.Decimal `json:"price"`
}

func (p Product) ToRecord() store.Record {
	return store.Record{
		"id":      strconv.Itoa(p.ID),
		"list_id": formatListID(p.ListID),
		"name":    p.Name,
		"unit":    p.Unit,
		"price":   p.Price.String(),
	}
}

func ProductFromRecord(rec store.Record) (Product, error) {
	id, err := parseID(rec)
	if err != nil {
		return Product{}, err
	}
	listID, err := parseListID(rec["list_id"])
	if err != nil {
		return Product{}, err
	}
	price, err := parseDecimal("price", rec["price"])
	if err != nil {
		return Product{}, err
	}
	return Product{
		ID:     id,
		ListID: listID,
		Name:   rec["name"],
		Unit:   rec["unit"],
		Price:  price,
	}, nil
}
