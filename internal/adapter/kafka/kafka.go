package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/maydel/storefront/internal/core/domain"
	"github.com/maydel/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(data []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			return err
		}
		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func catalogEventToSchemaV1(e domain.CatalogEvent) (s schema.CatalogEventV1) {
	s.Op = e.Op
	s.ProductID = e.Product.ID
	s.Name = e.Product.Name
	s.Description = e.Product.Description
	s.Price = e.Product.Price
	s.Category = e.Product.Category
	s.Stock = e.Product.Stock
	s.Size = e.Product.Size
	s.ImageURLs = e.Product.Images

	s.Colors = make([]schema.ProductColorV1, len(e.Product.Colors))
	for i, c := range e.Product.Colors {
		s.Colors[i].ColorName = c.Name
		s.Colors[i].ColorCode = c.Code
	}
	return s
}
