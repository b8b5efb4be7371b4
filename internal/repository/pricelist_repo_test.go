package repository

import (
	"testing"

	"github.com/bitfantasy/nimo-orders/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	return NewRepositories(st, []string{"套", "个"})
}

func TestPriceListCreateUnique(t *testing.T) {
	repos := newTestRepos(t)

	pl, err := repos.PriceList.Create("  工程清单 ")
	require.NoError(t, err)
	require.Equal(t, 1, pl.ID)
	require.Equal(t, "工程清单", pl.Name)

	_, err = repos.PriceList.Create("工程清单")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "清单名称已存在", ve.Reason)

	_, err = repos.PriceList.Create("   ")
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "清单名称不能为空", ve.Reason)
}

func TestPriceListUpdate(t *testing.T) {
	repos := newTestRepos(t)
	a, err := repos.PriceList.Create("清单A")
	require.NoError(t, err)
	_, err = repos.PriceList.Create("清单B")
	require.NoError(t, err)

	name := "清单B"
	_, err = repos.PriceList.Update(a.ID, &name)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	name = "清单C"
	updated, err := repos.PriceList.Update(a.ID, &name)
	require.NoError(t, err)
	require.Equal(t, "清单C", updated.Name)

	_, err = repos.PriceList.Update(99, &name)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPriceListUpdateRejectsBlankName(t *testing.T) {
	repos := newTestRepos(t)
	a, err := repos.PriceList.Create("清单A")
	require.NoError(t, err)

	blank := "   "
	_, err = repos.PriceList.Update(a.ID, &blank)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "清单名称不能为空", ve.Reason)

	lists, err := repos.PriceList.List()
	require.NoError(t, err)
	require.Equal(t, "清单A", lists[0].Name)
}

func TestPriceListDeleteCascade(t *testing.T) {
	repos := newTestRepos(t)

	// 清单 id 顺次分配：填充到 5 和 6
	var listA, listB int
	for i := 1; i <= 6; i++ {
		pl, err := repos.PriceList.Create("清单" + string(rune('0'+i)))
		require.NoError(t, err)
		if i == 5 {
			listA = pl.ID
		}
		if i == 6 {
			listB = pl.ID
		}
	}
	require.Equal(t, 5, listA)
	require.Equal(t, 6, listB)

	price := decimal.NewFromInt(10)
	_, err := repos.Product.Create(listA, "货物甲", "套", price)
	require.NoError(t, err)
	_, err = repos.Product.Create(listA, "货物乙", "个", price)
	require.NoError(t, err)
	survivor, err := repos.Product.Create(listB, "货物丙", "套", price)
	require.NoError(t, err)

	require.NoError(t, repos.PriceList.Delete(listA))

	products, err := repos.Product.List(0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, survivor.ID, products[0].ID)

	require.ErrorIs(t, repos.PriceList.Delete(listA), ErrNotFound)
}

func TestPriceListCopy(t *testing.T) {
	repos := newTestRepos(t)
	src, err := repos.PriceList.Create("标准报价")
	require.NoError(t, err)

	p1, err := repos.Product.Create(src.ID, "断路器", "个", decimal.RequireFromString("35.5"))
	require.NoError(t, err)
	p2, err := repos.Product.Create(src.ID, "配电箱", "套", decimal.RequireFromString("260"))
	require.NoError(t, err)

	clone, err := repos.PriceList.Copy(src.ID)
	require.NoError(t, err)
	require.Equal(t, "标准报价(副本)", clone.Name)
	require.NotEqual(t, src.ID, clone.ID)

	cloned, err := repos.Product.List(clone.ID)
	require.NoError(t, err)
	require.Len(t, cloned, 2)
	for i, origin := range []struct {
		name, unit string
		price      decimal.Decimal
	}{
		{p1.Name, p1.Unit, p1.Price},
		{p2.Name, p2.Unit, p2.Price},
	} {
		require.Equal(t, origin.name, cloned[i].Name)
		require.Equal(t, origin.unit, cloned[i].Unit)
		require.True(t, origin.price.Equal(cloned[i].Price))
		require.Greater(t, cloned[i].ID, p2.ID)
	}

	_, err = repos.PriceList.Copy(999)
	require.ErrorIs(t, err, ErrNotFound)
}
