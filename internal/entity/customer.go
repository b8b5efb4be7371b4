package entity

import (
	"strconv"

	"github.com/bitfantasy/nimo-orders/internal/store"
)

// CustomerFields customers 表的列顺序
var CustomerFields = []string{"id", "name", "list_id"}

// Customer 客户。ListID 为可选的货物清单关联，0 表示未关联。
type Customer struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	ListID int    `json:"list_id"`
}

func (c Customer) ToRecord() store.Record {
	return store.Record{
		"id":      strconv.Itoa(c.ID),
		"name":    c.Name,
		"list_id": formatListID(c.ListID),
	}
}

func CustomerFromRecord(rec store.Record) (Customer, error) {
	id, err := parseID(rec)
	if err != nil {
		return Customer{}, err
	}
	listID, err := parseListID(rec["list_id"])
	if err != nil {
		return Customer{}, err
	}
	return Customer{ID: id, Name: rec["name"], ListID: listID}, nil
}
