package service_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/maydel/storefront/internal/core/domain"
	"github.com/maydel/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func makeProducts(n int) []domain.Product {
	ps := make([]domain.Product, n)
	for i := range ps {
		ps[i] = domain.Product{
			ID:       "p" + strconv.Itoa(i),
			Name:     "Producto " + strconv.Itoa(i),
			Category: "ropa",
			Size:     "M",
		}
	}
	return ps
}

func TestCatalogBrowsePage(t *testing.T) {
	ctx := context.Background()

	t.Run("ClampsPageToRange", func(t *testing.T) {
		store := new(MockProductStore)
		store.On("ListProducts", mock.Anything).
			Return(makeProducts(domain.PageSize+1), nil)
		catalog := service.NewCatalog(store)

		page, err := catalog.BrowsePage(ctx, domain.Filter{}, 100)
		require.NoError(t, err)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Products, 1)

		page, err = catalog.BrowsePage(ctx, domain.Filter{}, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Len(t, page.Products, domain.PageSize)
	})

	t.Run("FacetsComeFromFullCollection", func(t *testing.T) {
		ps := []domain.Product{
			{ID: "p1", Category: "ropa", Size: "M"},
			{ID: "p2", Category: "zapatos", Size: "38"},
		}
		store := new(MockProductStore)
		store.On("ListProducts", mock.Anything).Return(ps, nil)
		catalog := service.NewCatalog(store)

		page, err := catalog.BrowsePage(ctx, domain.Filter{Category: "ropa"}, 1)
		require.NoError(t, err)
		assert.Len(t, page.Products, 1)
		assert.Equal(t, []string{"M", "38"}, page.Sizes)
		assert.Len(t, page.Categories, 4)
	})

	t.Run("StoreError", func(t *testing.T) {
		wantErr := errors.New("connection refused")
		store := new(MockProductStore)
		store.On("ListProducts", mock.Anything).Return(nil, wantErr)
		catalog := service.NewCatalog(store)

		_, err := catalog.BrowsePage(ctx, domain.Filter{}, 1)
		assert.ErrorIs(t, err, wantErr)
	})
}

func TestBrowser(t *testing.T) {
	t.Run("FilterChangeResetsPage", func(t *testing.T) {
		b := service.NewBrowser(makeProducts(3*domain.PageSize + 1))
		b.SetPage(3)
		require.Equal(t, 3, b.Page())

		b.SetCategory("ropa")
		assert.Equal(t, 1, b.Page())

		b.SetPage(2)
		b.SetSize("M")
		assert.Equal(t, 1, b.Page())

		b.SetPage(2)
		b.SetColor("Negro")
		assert.Equal(t, 1, b.Page())

		b.SetPage(2)
		b.SetQuery("faja")
		assert.Equal(t, 1, b.Page())
	})

	t.Run("SetPageClamps", func(t *testing.T) {
		b := service.NewBrowser(makeProducts(domain.PageSize + 1))
		b.SetPage(100)
		assert.Equal(t, 2, b.Page())
		b.SetPage(-5)
		assert.Equal(t, 1, b.Page())
	})

	t.Run("ViewNeverOutOfRange", func(t *testing.T) {
		b := service.NewBrowser(makeProducts(2*domain.PageSize + 1))
		b.SetPage(3)

		// Narrowing the filter shrinks the page range; the stored page
		// must follow.
		b.SetQuery("Producto 1")
		require.NotPanics(t, func() {
			view := b.View()
			assert.Equal(t, 1, view.Page)
		})
	})

	t.Run("ReloadKeepsFilter", func(t *testing.T) {
		b := service.NewBrowser(makeProducts(5))
		b.SetCategory("ropa")
		b.Reload(makeProducts(2 * domain.PageSize))
		assert.Equal(t, 1, b.Page())
		assert.Equal(t, "ropa", b.Filter().Category)
		assert.Len(t, b.View().Products, domain.PageSize)
	})

	t.Run("ResetFilter", func(t *testing.T) {
		b := service.NewBrowser(makeProducts(5))
		b.SetCategory("zapatos")
		b.SetQuery("sandalia")
		b.ResetFilter()
		assert.Equal(t, domain.Filter{}, b.Filter())
		assert.Len(t, b.View().Products, 5)
	})
}
