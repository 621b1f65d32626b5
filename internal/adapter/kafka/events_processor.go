package kafka

import (
	"context"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/maydel/storefront/internal/core/domain"
	"github.com/maydel/storefront/pkg/schema"
)

// A catalogEventCodec serdes [schema.CatalogEventV1] for goka streams
// and group tables.
type catalogEventCodec struct {
	serde Serde
}

func newCatalogEventCodec(s Serde) catalogEventCodec {
	return catalogEventCodec{s}
}

func (c catalogEventCodec) Encode(v any) ([]byte, error) {
	const op = "catalogEventCodec.Encode"
	if _, ok := v.(schema.CatalogEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c catalogEventCodec) Decode(data []byte) (any, error) {
	const op = "catalogEventCodec.Decode"
	var s schema.CatalogEventV1
	if err := c.serde.Decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A CatalogTableProcessor consumes the catalog events stream and
// persists the latest event of every product into the compacted group
// table. Delete events drop the table row.
type CatalogTableProcessor struct {
	gp *goka.Processor
}

func NewCatalogTableProcessor(
	seedBrokers []string, stream, group string, eventSerde Serde,
) (CatalogTableProcessor, error) {
	const op = "NewCatalogTableProcessor"

	codec := newCatalogEventCodec(eventSerde)
	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(goka.Stream(stream), codec, processCatalogEvent),
		goka.Persist(codec),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg)
	if err != nil {
		return CatalogTableProcessor{}, opErr(err, op)
	}
	return CatalogTableProcessor{gp}, nil
}

func processCatalogEvent(ctx goka.Context, msg any) {
	e, ok := msg.(schema.CatalogEventV1)
	if !ok {
		return
	}
	if e.Op == domain.EventDelete {
		ctx.Delete()
		return
	}
	ctx.SetValue(e)
}

func (p CatalogTableProcessor) Run(ctx context.Context) {
	const op = "CatalogTableProcessor.Run"
	log := slog.With("op", op)

	if err := p.gp.Run(ctx); err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p CatalogTableProcessor) Close() {
	const op = "CatalogTableProcessor.Close"
	log := slog.With("op", op)

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}
