package repository

import (
	"strings"

	"github.com/bitfantasy/nimo-orders/internal/entity"
	"github.com/bitfantasy/nimo-orders/internal/store"
	"github.com/shopspring/decimal"
)

var orderTable = store.Table{Name: "orders", Fields: entity.OrderFields}

type OrderRepository struct {
	store *store.Store
}

func NewOrderRepository(st *store.Store) *OrderRepository {
	return &OrderRepository{store: st}
}

func (r *OrderRepository) load() ([]entity.Order, []store.Record, error) {
	records, err := r.store.Load(orderTable)
	if err != nil {
		return nil, nil, err
	}
	orders := make([]entity.Order, 0, len(records))
	for _, rec := range records {
		o, err := entity.OrderFromRecord(rec)
		if err != nil {
			return nil, nil, err
		}
		orders = append(orders, o)
	}
	return orders, records, nil
}

func (r *OrderRepository) save(orders []entity.Order) error {
	records := make([]store.Record, len(orders))
	for i, o := range orders {
		records[i] = o.ToRecord()
	}
	return r.store.Save(orderTable, records)
}

// List 按落盘顺序返回全部订单
func (r *OrderRepository) List() ([]entity.Order, error) {
	orders, _, err := r.load()
	return orders, err
}

// CreateOrderParams 新建订单的入参。Price 缺省为 0，Total 不接受外部输入。
type CreateOrderParams struct {
	Date     string
	Customer string
	Product  string
	Unit     string
	Price    decimal.Decimal
	Quantity *decimal.Decimal
}

// Create 新建订单，date/customer/product/quantity 必填，总价由服务端计算
func (r *OrderRepository) Create(params CreateOrderParams) (*entity.Order, error) {
	date := strings.TrimSpace(params.Date)
	customer := strings.TrimSpace(params.Customer)
	product := strings.TrimSpace(params.Product)
	switch {
	case date == "":
		return nil, invalid("date 不能为空")
	case customer == "":
		return nil, invalid("customer 不能为空")
	case product == "":
		return nil, invalid("product 不能为空")
	case params.Quantity == nil:
		return nil, invalid("quantity 不能为空")
	}

	order := entity.Order{
		Date:     date,
		Customer: customer,
		Product:  product,
		Unit:     strings.TrimSpace(params.Unit),
		Price:    params.Price,
		Quantity: *params.Quantity,
	}
	order.ComputeTotal()

	err := r.store.Mutate(func() error {
		orders, records, err := r.load()
		if err != nil {
			return err
		}
		id, err := store.NextID(records)
		if err != nil {
			return err
		}
		order.ID = id
		return r.save(append(orders, order))
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderParams 订单部分更新，nil 字段保持原值。
// 不含 Total：总价永远在套用变更后按当前单价和数量重算。
type UpdateOrderParams struct {
	Date     *string
	Customer *string
	Product  *string
	Unit     *string
	Price    *decimal.Decimal
	Quantity *decimal.Decimal
}

// Update 更新订单并重算总价
func (r *OrderRepository) Update(id int, params UpdateOrderParams) (*entity.Order, error) {
	var updated entity.Order
	err := r.store.Mutate(func() error {
		orders, _, err := r.load()
		if err != nil {
			return err
		}
		for i := range orders {
			if orders[i].ID != id {
				continue
			}
			if params.Date != nil {
				orders[i].Date = strings.TrimSpace(*params.Date)
			}
			if params.Customer != nil {
				orders[i].Customer = strings.TrimSpace(*params.Customer)
			}
			if params.Product != nil {
				orders[i].Product = strings.TrimSpace(*params.Product)
			}
			if params.Unit != nil {
				orders[i].Unit = strings.TrimSpace(*params.Unit)
			}
			if params.Price != nil {
				orders[i].Price = *params.Price
			}
			if params.Quantity != nil {
				orders[i].Quantity = *params.Quantity
			}
			orders[i].ComputeTotal()
			updated = orders[i]
			return r.save(orders)
		}
		return notFound("订单")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete 删除订单
func (r *OrderRepository) Delete(id int) error {
	return r.store.Mutate(func() error {
		orders, _, err := r.load()
		if err != nil {
			return err
		}
		kept := orders[:0]
		for _, o := range orders {
			if o.ID != id {
				kept = append(kept, o)
			}
		}
		if len(kept) == len(orders) {
			return notFound("订单")
		}
		return r.save(kept)
	})
}

// Merge 把外部导入、已通过行校验的订单并入订单表。
// 在一次锁内为每行重新分配 id、重算总价，至少并入一行才落盘一次。
// 导入的行不会按 id 覆盖既有订单。
func (r *OrderRepository) Merge(incoming []entity.Order) (int, error) {
	if len(incoming) == 0 {
		return 0, nil
	}
	count := 0
	err := r.store.Mutate(func() error {
		orders, records, err := r.load()
		if err != nil {
			return err
		}
		id, err := store.NextID(records)
		if err != nil {
			return err
		}
		for _, o := range incoming {
			o.ID = id
			o.ComputeTotal()
			orders = append(orders, o)
			id++
			count++
		}
		return r.save(orders)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
