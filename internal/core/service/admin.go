package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maydel/storefront/internal/core/domain"
	"github.com/maydel/storefront/internal/core/port"
	"golang.org/x/sync/errgroup"
)

var _ port.ProductAdmin = (*Admin)(nil)

// An Admin performs the persistent side of catalog administration:
// product CRUD with dependent variant reconciliation, image upload
// batches and catalog event publishing.
type Admin struct {
	products port.ProductStore
	variants port.VariantStore
	images   port.ImageHost
	events   port.CatalogEventsProducer
}

func NewAdmin(
	products port.ProductStore,
	variants port.VariantStore,
	images port.ImageHost,
	events port.CatalogEventsProducer,
) Admin {
	return Admin{products, variants, images, events}
}

// CreateProduct inserts the product record and then the draft variants
// tagged with the new id. A variant failure leaves the already inserted
// product in place; no rollback is attempted.
func (a Admin) CreateProduct(
	ctx context.Context, p domain.Product, vs []domain.ColorVariant,
) (domain.Product, error) {
	const op = "Admin.CreateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := a.products.InsertProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	storedVs, err := a.variants.InsertVariants(ctx, stored.ID, vs)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	stored.Colors = storedVs

	a.publish(ctx, domain.EventUpsert, stored)
	return stored, nil
}

// UpdateProduct updates the product record and reconciles its variant
// set with delete-then-insert semantics. The two phases are not atomic:
// when the insert fails after a successful delete the product keeps its
// updated fields but holds zero variants, reported as
// [domain.ErrVariantsLost] so the caller can tell it apart from a full
// failure.
func (a Admin) UpdateProduct(
	ctx context.Context, p domain.Product, vs []domain.ColorVariant,
) (domain.Product, error) {
	const op = "Admin.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := a.products.UpdateProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := a.variants.DeleteProductVariants(ctx, stored.ID); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	storedVs, err := a.variants.InsertVariants(ctx, stored.ID, vs)
	if err != nil {
		return domain.Product{}, fmt.Errorf(
			"%s: %w: %w", op, domain.ErrVariantsLost, err,
		)
	}
	stored.Colors = storedVs

	a.publish(ctx, domain.EventUpsert, stored)
	return stored, nil
}

// DeleteProduct removes the product record. Dependent variants are not
// deleted here; the store cascades on the foreign key.
func (a Admin) DeleteProduct(ctx context.Context, id string) error {
	const op = "Admin.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.products.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	a.publish(ctx, domain.EventDelete, domain.Product{ID: id})
	return nil
}

// FetchVariants loads the persisted variant set of one product.
func (a Admin) FetchVariants(
	ctx context.Context, productID string,
) ([]domain.ColorVariant, error) {
	const op = "Admin.FetchVariants"

	vs, err := a.variants.VariantsByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

// UploadImages sends every file to the image host in parallel and
// returns the URLs in input order. The batch is all-or-nothing: any
// failing upload aborts the whole result.
func (a Admin) UploadImages(
	ctx context.Context, files []domain.ImageFile,
) ([]string, error) {
	const op = "Admin.UploadImages"

	if len(files) == 0 {
		return nil, nil
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			url, err := a.images.UploadImage(gctx, f)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrUpload, err)
	}
	return urls, nil
}

// publish is best effort: the store already committed, so a broker
// failure is logged and does not fail the admin operation.
func (a Admin) publish(ctx context.Context, eventOp string, p domain.Product) {
	const op = "Admin.publish"

	if a.events == nil {
		return
	}

	e := domain.CatalogEvent{Op: eventOp, Product: p}
	if err := a.events.ProduceCatalogEvent(ctx, e); err != nil {
		slog.Warn("failed to produce catalog event",
			"op", op, "productID", p.ID, "err", err)
	}
}
