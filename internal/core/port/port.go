package port

import (
	"context"

	"github.com/maydel/storefront/internal/core/domain"
)

// Outbound ports.

type ProductStore interface {
	ListProducts(context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	InsertProduct(context.Context, domain.Product) (domain.Product, error)
	UpdateProduct(context.Context, domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type VariantStore interface {
	VariantsByProduct(ctx context.Context, productID string) ([]domain.ColorVariant, error)
	InsertVariants(ctx context.Context, productID string, vs []domain.ColorVariant) ([]domain.ColorVariant, error)
	DeleteProductVariants(ctx context.Context, productID string) error
}

type ImageHost interface {
	UploadImage(ctx context.Context, file domain.ImageFile) (url string, err error)
}

type CatalogEventsProducer interface {
	ProduceCatalogEvent(context.Context, domain.CatalogEvent) error
}

// Inbound ports.

type CatalogProvider interface {
	BrowsePage(ctx context.Context, f domain.Filter, page int) (domain.CatalogPage, error)
	ProductByID(ctx context.Context, id string) (domain.Product, error)
}

type ProductAdmin interface {
	CreateProduct(ctx context.Context, p domain.Product, vs []domain.ColorVariant) (domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product, vs []domain.ColorVariant) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UploadImages(ctx context.Context, files []domain.ImageFile) ([]string, error)
}
