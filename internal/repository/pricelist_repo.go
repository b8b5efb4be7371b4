package repository

import (
	"strings"

	"github.com/bitfantasy/nimo-orders/internal/entity"
	"github.com/bitfantasy/nimo-orders/internal/store"
)

var priceListTable = store.Table{Name: "price_lists", Fields: entity.PriceListFields}

// CopySuffix 复制清单时附加在名称后的后缀
const CopySuffix = "(副本)"

type PriceListRepository struct {
	store *store.Store
}

func NewPriceListRepository(st *store.Store) *PriceListRepository {
	return &PriceListRepository{store: st}
}

func (r *PriceListRepository) load() ([]entity.PriceList, []store.Record, error) {
	records, err := r.store.Load(priceListTable)
	if err != nil {
		return nil, nil, err
	}
	lists := make([]entity.PriceList, 0, len(records))
	for _, rec := range records {
		pl, err := entity.PriceListFromRecord(rec)
		if err != nil {
			return nil, nil, err
		}
		lists = append(lists, pl)
	}
	return lists, records, nil
}

func (r *PriceListRepository) save(lists []entity.PriceList) error {
	records := make([]store.Record, len(lists))
	for i, pl := range lists {
		records[i] = pl.ToRecord()
	}
	return r.store.Save(priceListTable, records)
}

// List 按落盘顺序返回全部清单
func (r *PriceListRepository) List() ([]entity.PriceList, error) {
	lists, _, err := r.load()
	return lists, err
}

// Create 新建清单，名称去除首尾空白后须非空且全局唯一
func (r *PriceListRepository) Create(name string) (*entity.PriceList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("清单名称不能为空")
	}
	var created entity.PriceList
	err := r.store.Mutate(func() error {
		lists, records, err := r.load()
		if err != nil {
			return err
		}
		for _, pl := range lists {
			if pl.Name == name {
				return invalid("清单名称已存在")
			}
		}
		id, err := store.NextID(records)
		if err != nil {
			return err
		}
		created = entity.PriceList{ID: id, Name: name}
		return r.save(append(lists, created))
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update 重命名清单，新名称不能与其他清单重复
func (r *PriceListRepository) Update(id int, name *string) (*entity.PriceList, error) {
	var updated entity.PriceList
	err := r.store.Mutate(func() error {
		lists, _, err := r.load()
		if err != nil {
			return err
		}
		for i := range lists {
			if lists[i].ID != id {
				continue
			}
			if name != nil {
				newName := strings.TrimSpace(*name)
				if newName == "" {
					return invalid("清单名称不能为空")
				}
				for _, other := range lists {
					if other.ID != id && other.Name == newName {
						return invalid("清单名称已存在")
					}
				}
				lists[i].Name = newName
			}
			updated = lists[i]
			return r.save(lists)
		}
		return notFound("清单")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete 删除清单并级联删除清单下全部货物，两次保存在同一次锁内完成
func (r *PriceListRepository) Delete(id int) error {
	return r.store.Mutate(func() error {
		lists, _, err := r.load()
		if err != nil {
			return err
		}
		kept := lists[:0]
		for _, pl := range lists {
			if pl.ID != id {
				kept = append(kept, pl)
			}
		}
		if len(kept) == len(lists) {
			return notFound("清单")
		}
		if err := r.save(kept); err != nil {
			return err
		}

		products, _, err := loadProducts(r.store)
		if err != nil {
			return err
		}
		keptProducts := products[:0]
		for _, p := range products {
			if p.ListID != id {
				keptProducts = append(keptProducts, p)
			}
		}
		return saveProducts(r.store, keptProducts)
	})
}

// Copy 复制清单：新清单名为原名加副本后缀，清单下货物逐个克隆并分配新 id
func (r *PriceListRepository) Copy(id int) (*entity.PriceList, error) {
	var created entity.PriceList
	err := r.store.Mutate(func() error {
		lists, records, err := r.load()
		if err != nil {
			return err
		}
		var source *entity.PriceList
		for i := range lists {
			if lists[i].ID == id {
				source = &lists[i]
				break
			}
		}
		if source == nil {
			return notFound("清单")
		}

		newID, err := store.NextID(records)
		if err != nil {
			return err
		}
		created = entity.PriceList{ID: newID, Name: source.Name + CopySuffix}
		if err := r.save(append(lists, created)); err != nil {
			return err
		}

		products, productRecords, err := loadProducts(r.store)
		if err != nil {
			return err
		}
		pid, err := store.NextID(productRecords)
		if err != nil {
			return err
		}
		for _, p := range products {
			if p.ListID != id {
				continue
			}
			clone := p
			clone.ID = pid
			clone.ListID = created.ID
			products = append(products, clone)
			pid++
		}
		return saveProducts(r.store, products)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}
