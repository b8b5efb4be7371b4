package repository

import (
	"strings"

	"github.com/bitfantasy/nimo-orders/internal/entity"
	"github.com/bitfantasy/nimo-orders/internal/store"
	"github.com/shopspring/decimal"
)

var productTable = store.Table{Name: "products", Fields: entity.ProductFields}

func loadProducts(st *store.Store) ([]entity.Product, []store.Record, error) {
	records, err := st.Load(productTable)
	if err != nil {
		return nil, nil, err
	}
	products := make([]entity.Product, 0, len(records))
	for _, rec := range records {
		p, err := entity.ProductFromRecord(rec)
		if err != nil {
			return nil, nil, err
		}
		products = append(products, p)
	}
	return products, records, nil
}

func saveProducts(st *store.Store, products []entity.Product) error {
	records := make([]store.Record, len(products))
	for i, p := range products {
		records[i] = p.ToRecord()
	}
	return st.Save(productTable, records)
}

// ProductRepository 货物明细仓库。validUnits 非空时限制货物单位的取值。
type ProductRepository struct {
	store      *store.Store
	validUnits []string
}

func NewProductRepository(st *store.Store, validUnits []string) *ProductRepository {
	return &ProductRepository{store: st, validUnits: validUnits}
}

func (r *ProductRepository) checkUnit(unit string) error {
	if len(r.validUnits) == 0 {
		return nil
	}
	for _, u := range r.validUnits {
		if unit == u {
			return nil
		}
	}
	quoted := make([]string, len(r.validUnits))
	for i, u := range r.validUnits {
		quoted[i] = `"` + u + `"`
	}
	return invalid("单位只能是%s", strings.Join(quoted, "或"))
}

// List 返回全部货物；listID 非零时只返回该清单下的货物
func (r *ProductRepository) List(listID int) ([]entity.Product, error) {
	products, _, err := loadProducts(r.store)
	if err != nil {
		return nil, err
	}
	if listID == 0 {
		return products, nil
	}
	filtered := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.ListID == listID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Create 新增货物。同一清单下 (名称, 单位) 必须唯一。
func (r *ProductRepository) Create(listID int, name, unit string, price decimal.Decimal) (*entity.Product, error) {
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)
	if name == "" {
		return nil, invalid("货物名称不能为空")
	}
	if listID == 0 {
		return nil, invalid("请选择货物清单")
	}
	if err := r.checkUnit(unit); err != nil {
		return nil, err
	}
	var created entity.Product
	err := r.store.Mutate(func() error {
		products, records, err := loadProducts(r.store)
		if err != nil {
			return err
		}
		for _, p := range products {
			if p.ListID == listID && p.Name == name && p.Unit == unit {
				return invalid("该清单下已存在同名同单位的货物")
			}
		}
		id, err := store.NextID(records)
		if err != nil {
			return err
		}
		created = entity.Product{ID: id, ListID: listID, Name: name, Unit: unit, Price: price}
		return saveProducts(r.store, append(products, created))
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProductParams 货物部分更新，nil 字段保持原值。清单归属不可变更。
type UpdateProductParams struct {
	Name  *string
	Unit  *string
	Price *decimal.Decimal
}

// Update 更新货物，唯一性按更新后的值与其余货物的当前值比较
func (r *ProductRepository) Update(id int, params UpdateProductParams) (*entity.Product, error) {
	var updated entity.Product
	err := r.store.Mutate(func() error {
		products, _, err := loadProducts(r.store)
		if err != nil {
			return err
		}
		for i := range products {
			if products[i].ID != id {
				continue
			}
			newName := products[i].Name
			if params.Name != nil {
				newName = strings.TrimSpace(*params.Name)
				if newName == "" {
					return invalid("货物名称不能为空")
				}
			}
			newUnit := products[i].Unit
			if params.Unit != nil {
				newUnit = strings.TrimSpace(*params.Unit)
			}
			if err := r.checkUnit(newUnit); err != nil {
				return err
			}
			for _, other := range products {
				if other.ID != id && other.ListID == products[i].ListID &&
					other.Name == newName && other.Unit == newUnit {
					return invalid("该清单下已存在同名同单位的货物")
				}
			}
			products[i].Name = newName
			products[i].Unit = newUnit
			if params.Price != nil {
				products[i].Price = *params.Price
			}
			updated = products[i]
			return saveProducts(r.store, products)
		}
		return notFound("货物")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete 删除货物
func (r *ProductRepository) Delete(id int) error {
	return r.store.Mutate(func() error {
		products, _, err := loadProducts(r.store)
		if err != nil {
			return err
		}
		kept := products[:0]
		for _, p := range products {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(products) {
			return notFound("货物")
		}
		return saveProducts(r.store, kept)
	})
}
