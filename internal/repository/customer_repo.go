package repository

import (
	"strings"

	"github.com/bitfantasy/nimo-orders/internal/entity"
	"github.com/bitfantasy/nimo-orders/internal/store"
)

var customerTable = store.Table{Name: "customers", Fields: entity.CustomerFields}

type CustomerRepository struct {
	store *store.Store
}

func NewCustomerRepository(st *store.Store) *CustomerRepository {
	return &CustomerRepository{store: st}
}

func (r *CustomerRepository) load() ([]entity.Customer, []store.Record, error) {
	records, err := r.store.Load(customerTable)
	if err != nil {
		return nil, nil, err
	}
	customers := make([]entity.Customer, 0, len(records))
	for _, rec := range records {
		c, err := entity.CustomerFromRecord(rec)
		if err != nil {
			return nil, nil, err
		}
		customers = append(customers, c)
	}
	return customers, records, nil
}

func (r *CustomerRepository) save(customers []entity.Customer) error {
	records := make([]store.Record, len(customers))
	for i, c := range customers {
		records[i] = c.ToRecord()
	}
	return r.store.Save(customerTable, records)
}

// List 按落盘顺序返回全部客户
func (r *CustomerRepository) List() ([]entity.Customer, error) {
	customers, _, err := r.load()
	return customers, err
}

// Create 新建客户，名称须非空且唯一；listID 为可选的清单关联
func (r *CustomerRepository) Create(name string, listID int) (*entity.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("客户名称不能为空")
	}
	var created entity.Customer
	err := r.store.Mutate(func() error {
		customers, records, err := r.load()
		if err != nil {
			return err
		}
		for _, c := range customers {
			if c.Name == name {
				return invalid("客户名称已存在")
			}
		}
		id, err := store.NextID(records)
		if err != nil {
			return err
		}
		created = entity.Customer{ID: id, Name: name, ListID: listID}
		return r.save(append(customers, created))
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCustomerParams 客户部分更新，nil 字段保持原值
type UpdateCustomerParams struct {
	Name   *string
	ListID *int
}

// Update 更新客户，新名称不能与其他客户重复
func (r *CustomerRepository) Update(id int, params UpdateCustomerParams) (*entity.Customer, error) {
	var updated entity.Customer
	err := r.store.Mutate(func() error {
		customers, _, err := r.load()
		if err != nil {
			return err
		}
		for i := range customers {
			if customers[i].ID != id {
				continue
			}
			if params.Name != nil {
				newName := strings.TrimSpace(*params.Name)
				if newName == "" {
					return invalid("客户名称不能为空")
				}
				for _, other := range customers {
					if other.ID != id && other.Name == newName {
						return invalid("客户名称已存在")
					}
				}
				customers[i].Name = newName
			}
			if params.ListID != nil {
				customers[i].ListID = *params.ListID
			}
			updated = customers[i]
			return r.save(customers)
		}
		return notFound("客户")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete 删除客户
func (r *CustomerRepository) Delete(id int) error {
	return r.store.Mutate(func() error {
		customers, _, err := r.load()
		if err != nil {
			return err
		}
		kept := customers[:0]
		for _, c := range customers {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(customers) {
			return notFound("客户")
		}
		return r.save(kept)
	})
}
