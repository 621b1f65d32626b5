package schema_test

import (
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/maydel/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogEventSchemaTextV1(t *testing.T) {
	t.Run("Parses", func(t *testing.T) {
		_, err := avro.Parse(schema.CatalogEventSchemaTextV1)
		require.NoError(t, err)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		s, err := avro.Parse(schema.CatalogEventSchemaTextV1)
		require.NoError(t, err)

		want := schema.CatalogEventV1{
			Op:          "upsert",
			ProductID:   "p1",
			Name:        "Faja Reductora",
			Description: "compresion alta",
			Price:       29.99,
			Category:    "ropa",
			Stock:       "disponible",
			Size:        "M",
			ImageURLs:   []string{"https://cdn/a.jpg", "https://cdn/b.jpg"},
			Colors: []schema.ProductColorV1{
				{ColorName: "Negro", ColorCode: "#000"},
				{ColorName: "Cocoa", ColorCode: "#754"},
			},
		}

		data, err := avro.Marshal(s, want)
		require.NoError(t, err)

		var got schema.CatalogEventV1
		require.NoError(t, avro.Unmarshal(s, data, &got))
		assert.Equal(t, want, got)
	})

	t.Run("NilListsRoundTripEmpty", func(t *testing.T) {
		s, err := avro.Parse(schema.CatalogEventSchemaTextV1)
		require.NoError(t, err)

		in := schema.CatalogEventV1{Op: "delete", ProductID: "p1"}
		data, err := avro.Marshal(s, in)
		require.NoError(t, err)

		var got schema.CatalogEventV1
		require.NoError(t, avro.Unmarshal(s, data, &got))
		assert.Empty(t, got.ImageURLs)
		assert.Empty(t, got.Colors)
	})
}
