package kafka

import (
	"context"
	"log/slog"

	"github.com/maydel/storefront/internal/core/domain"
	"github.com/maydel/storefront/internal/core/port"
	"github.com/maydel/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.CatalogEventsProducer = (*CatalogEventsProducer)(nil)

// A producer is used for composition: producing records to the broker
// and closing the underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(ctx context.Context, rs ...*kgo.Record) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// A CatalogEventsProducer publishes [domain.CatalogEvent] values keyed
// by product id, so the events topic compacts to the latest state of
// each product.
type CatalogEventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewCatalogEventsProducer(
	opts ...ProducerOpt,
) (CatalogEventsProducer, error) {
	const op = "NewCatalogEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CatalogEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "CatalogEventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return CatalogEventsProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p CatalogEventsProducer) Close() {
	p.producer.close()
}

func (p CatalogEventsProducer) ProduceCatalogEvent(
	ctx context.Context, e domain.CatalogEvent,
) error {
	const op = "ProduceCatalogEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(e)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, &r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p CatalogEventsProducer) createRecord(
	e domain.CatalogEvent,
) (kgo.Record, error) {
	const op = "createRecord"

	s := p.toSchema(e)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return kgo.Record{}, opErr(err, p.opPrefix, op)
	}
	msgKey := []byte(s.ProductID)
	return kgo.Record{Key: msgKey, Value: b}, nil
}

func (CatalogEventsProducer) toSchema(
	e domain.CatalogEvent,
) schema.CatalogEventV1 {
	return catalogEventToSchemaV1(e)
}
