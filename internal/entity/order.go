package entity

import (
	"strconv"

	"github.com/bitfantasy/nimo-orders/internal/store"
	"github.com/shopspring/decimal"
)

// OrderFields orders 表的列顺序
var OrderFields = []string{"id", "date", "customer", "product", "unit", "price", "quantity", "total"}

// Order 订单。Customer/Product 是下单时刻的文本快照，不是外键，
// 后续修改或删除目录数据不影响历史订单。
type Order struct {
	ID       int             `json:"id"`
	Date     string          `json:"date"`
	Customer string          `json:"customer"`
	Product  string          `json:"product"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotal 重算总价。总价永远由服务端计算，不信任外部输入。
func (o *Order) ComputeTotal() {
	o.Total = o.Price.Mul(o.Quantity).Round(2)
}

func (o Order) ToRecord() store.Record {
	return store.Record{
		"id":       strconv.Itoa(o.ID),
		"date":     o.Date,
		"customer": o.Customer,
		"product":  o.Product,
		"unit":     o.Unit,
		"price":    o.Price.String(),
		"quantity": o.Quantity.String(),
		"total":    o.Total.String(),
	}
}

func OrderFromRecord(rec store.Record) (Order, error) {
	id, err := parseID(rec)
	if err != nil {
		return Order{}, err
	}
	price, err := parseDecimal("price", rec["price"])
	if err != nil {
		return Order{}, err
	}
	quantity, err := parseDecimal("quantity", rec["quantity"])
	if err != nil {
		return Order{}, err
	}
	total, err := parseDecimal("total", rec["total"])
	if err != nil {
		return Order{}, err
	}
	return Order{
		ID:       id,
		Date:     rec["date"],
		Customer: rec["customer"],
		Product:  rec["product"],
		Unit:     rec["unit"],
		Price:    price,
		Quantity: quantity,
		Total:    total,
	}, nil
}
