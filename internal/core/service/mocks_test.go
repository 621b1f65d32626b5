package service_test

import (
	"context"

	"github.com/maydel/storefront/internal/core/domain"
	"github.com/maydel/storefront/internal/core/port"
	"github.com/stretchr/testify/mock"
)

var (
	_ port.ProductStore          = (*MockProductStore)(nil)
	_ port.VariantStore          = (*MockVariantStore)(nil)
	_ port.ImageHost             = (*MockImageHost)(nil)
	_ port.CatalogEventsProducer = (*MockEventsProducer)(nil)
)

type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) ListProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockProductStore) GetProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(domain.Product)
	return p, args.Error(1)
}

func (m *MockProductStore) InsertProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, p)
	stored, _ := args.Get(0).(domain.Product)
	return stored, args.Error(1)
}

func (m *MockProductStore) UpdateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, p)
	stored, _ := args.Get(0).(domain.Product)
	return stored, args.Error(1)
}

func (m *MockProductStore) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockVariantStore struct {
	mock.Mock
}

func (m *MockVariantStore) VariantsByProduct(
	ctx context.Context, productID string,
) ([]domain.ColorVariant, error) {
	args := m.Called(ctx, productID)
	vs, _ := args.Get(0).([]domain.ColorVariant)
	return vs, args.Error(1)
}

func (m *MockVariantStore) InsertVariants(
	ctx context.Context, productID string, vs []domain.ColorVariant,
) ([]domain.ColorVariant, error) {
	args := m.Called(ctx, productID, vs)
	stored, _ := args.Get(0).([]domain.ColorVariant)
	return stored, args.Error(1)
}

func (m *MockVariantStore) DeleteProductVariants(
	ctx context.Context, productID string,
) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type MockImageHost struct {
	mock.Mock
}

func (m *MockImageHost) UploadImage(
	ctx context.Context, file domain.ImageFile,
) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

type MockEventsProducer struct {
	mock.Mock
}

func (m *MockEventsProducer) ProduceCatalogEvent(
	ctx context.Context, e domain.CatalogEvent,
) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
