package service

import (
	"context"
	"fmt"

	"github.com/maydel/storefront/internal/core/domain"
	"github.com/maydel/storefront/internal/core/port"
)

var _ port.CatalogProvider = (*Catalog)(nil)

// A Catalog serves the storefront read path: filtered, paginated views
// over the product collection plus the facet values for the filter UI.
type Catalog struct {
	products port.ProductStore
}

func NewCatalog(products port.ProductStore) Catalog {
	return Catalog{products}
}

// BrowsePage loads the collection, applies f and returns the requested
// page. The page argument is clamped to [1, total] here, at the caller
// side of the paginator contract.
func (c Catalog) BrowsePage(
	ctx context.Context, f domain.Filter, page int,
) (domain.CatalogPage, error) {
	const op = "Catalog.BrowsePage"

	ps, err := c.products.ListProducts(ctx)
	if err != nil {
		return domain.CatalogPage{}, fmt.Errorf("%s: %w", op, err)
	}

	filtered := domain.ApplyFilter(ps, f)
	total := domain.TotalPages(len(filtered))
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	items, err := domain.Page(filtered, page)
	if err != nil {
		return domain.CatalogPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.CatalogPage{
		Products:   items,
		Page:       page,
		TotalPages: total,
		Categories: domain.Categories(),
		Sizes:      domain.Sizes(ps),
		Colors:     domain.Colors(ps),
	}, nil
}

func (c Catalog) ProductByID(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "Catalog.ProductByID"

	p, err := c.products.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// A Browser holds the ephemeral filter and page state of one catalog
// view. Changing any filter field invalidates the page position and
// resets it to 1.
type Browser struct {
	products []domain.Product
	filter   domain.Filter
	page     int
}

func NewBrowser(products []domain.Product) *Browser {
	return &Browser{products: products, page: 1}
}

func (b *Browser) SetCategory(v string) {
	b.filter.Category = v
	b.page = 1
}

func (b *Browser) SetSize(v string) {
	b.filter.Size = v
	b.page = 1
}

func (b *Browser) SetColor(v string) {
	b.filter.Color = v
	b.page = 1
}

func (b *Browser) SetQuery(v string) {
	b.filter.Query = v
	b.page = 1
}

func (b *Browser) ResetFilter() {
	b.filter = domain.Filter{}
	b.page = 1
}

// SetPage clamps page to the valid range of the current filtered view.
func (b *Browser) SetPage(page int) {
	total := domain.TotalPages(len(b.filtered()))
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	b.page = page
}

// Reload replaces the collection wholesale and returns to page 1,
// keeping the filter.
func (b *Browser) Reload(products []domain.Product) {
	b.products = products
	b.page = 1
}

func (b *Browser) Page() int {
	return b.page
}

func (b *Browser) Filter() domain.Filter {
	return b.filter
}

// View renders the current page. The stored page is always valid for
// the current filter, so the paginator cannot report an out-of-range
// page here.
func (b *Browser) View() domain.CatalogPage {
	filtered := b.filtered()
	total := domain.TotalPages(len(filtered))

	items, err := domain.Page(filtered, b.page)
	if err != nil {
		panic(err) // develop mistake
	}

	return domain.CatalogPage{
		Products:   items,
		Page:       b.page,
		TotalPages: total,
		Categories: domain.Categories(),
		Sizes:      domain.Sizes(b.products),
		Colors:     domain.Colors(b.products),
	}
}

func (b *Browser) filtered() []domain.Product {
	return domain.ApplyFilter(b.products, b.filter)
}
