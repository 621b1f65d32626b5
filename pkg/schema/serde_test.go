package schema_test

import (
	"context"
	"errors"
	"testing"

	"github.com/maydel/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (m *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject, schemaText string,
) (int, error) {
	args := m.Called(ctx, subject, schemaText)
	return args.Int(0), args.Error(1)
}

func TestNewSerdeCatalogEventV1(t *testing.T) {
	ctx := context.Background()
	const subject = "catalog.events-value"

	t.Run("Ordinary", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		si.On("DetermineID", ctx, subject, schema.CatalogEventSchemaTextV1).
			Return(1, nil)

		s, err := schema.NewSerdeCatalogEventV1(
			ctx,
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(si),
		)
		require.NoError(t, err)
		require.NotNil(t, s)
		si.AssertExpectations(t)

		want := schema.CatalogEventV1{
			Op:        "upsert",
			ProductID: "p1",
			Name:      "Faja",
			Price:     19.99,
			ImageURLs: []string{"https://cdn/a.jpg"},
			Colors:    []schema.ProductColorV1{{ColorName: "Negro", ColorCode: "#000"}},
		}
		data, err := s.Encode(want)
		require.NoError(t, err)

		var got schema.CatalogEventV1
		require.NoError(t, s.Decode(data, &got))
		assert.Equal(t, want, got)
	})

	t.Run("TooFewOpts", func(t *testing.T) {
		_, err := schema.NewSerdeCatalogEventV1(
			ctx, schema.SubjectOpt(subject),
		)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		_, err := schema.NewSerdeCatalogEventV1(
			ctx,
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(si),
		)
		assert.Error(t, err)
	})

	t.Run("NilIdentifier", func(t *testing.T) {
		_, err := schema.NewSerdeCatalogEventV1(
			ctx,
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(nil),
		)
		assert.Error(t, err)
	})

	t.Run("RegistryFailure", func(t *testing.T) {
		wantErr := errors.New("registry unreachable")
		si := new(MockSchemaIdentifier)
		si.On("DetermineID", ctx, subject, mock.Anything).Return(0, wantErr)

		_, err := schema.NewSerdeCatalogEventV1(
			ctx,
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(si),
		)
		assert.ErrorIs(t, err, wantErr)
	})
}
