package kafka

import (
	"context"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/maydel/storefront/pkg/schema"
)

// A CatalogView reads the group table materialized by
// [CatalogTableProcessor], giving lookups of the latest published state
// of a product without touching the store.
type CatalogView struct {
	gv *goka.View
}

func NewCatalogView(
	seedBrokers []string, group string, eventSerde Serde,
) (CatalogView, error) {
	const op = "NewCatalogView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		newCatalogEventCodec(eventSerde),
	)
	if err != nil {
		return CatalogView{}, opErr(err, op)
	}
	return CatalogView{gv}, nil
}

// Get returns the latest published event of the product and whether
// the table holds one.
func (v CatalogView) Get(productID string) (schema.CatalogEventV1, bool, error) {
	const op = "CatalogView.Get"

	val, err := v.gv.Get(productID)
	if err != nil {
		return schema.CatalogEventV1{}, false, opErr(err, op)
	}
	if val == nil {
		return schema.CatalogEventV1{}, false, nil
	}

	e, ok := val.(schema.CatalogEventV1)
	if !ok {
		return schema.CatalogEventV1{}, false, opErr(ErrInvalidValueType, op)
	}
	return e, true, nil
}

func (v CatalogView) Run(ctx context.Context) {
	const op = "CatalogView.Run"
	log := slog.With("op", op)

	if err := v.gv.Run(ctx); err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}
