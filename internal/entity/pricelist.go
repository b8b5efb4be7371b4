package entity

import (
	"strconv"

	"github.com/bitfantasy/nimo-orders/internal/store"
)

// PriceListFields price_lists 表的列顺序
var PriceListFields = []string{"id", "name"}

// PriceList 货物清单：一组货物的命名分组，支撑按客户定价
type PriceList struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (p PriceList) ToRecord() store.Record {
	return store.Record{
		"id":   strconv.Itoa(p.ID),
		"name": p.Name,
	}
}

func PriceListFromRecord(rec store.Record) (PriceList, error) {
	id, err := parseID(rec)
	if err != nil {
		return PriceList{}, err
	}
	return PriceList{ID: id, Name: rec["name"]}, nil
}
