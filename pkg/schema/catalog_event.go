package schema

// The "prince" field name is the legacy persisted spelling of the
// product price and is kept for compatibility with every existing
// consumer of the catalog data.
const CatalogEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "catalog_event",
	"fields": [
		{"name": "op", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "description", "type": "string"},
		{"name": "prince", "type": "double"},
		{"name": "category", "type": "string"},
		{"name": "stock", "type": "string"},
		{"name": "size", "type": "string"},
		{"name": "image_urls", "type": {"type": "array", "items": "string"}},
		{"name": "colors", "type": {"type": "array", "items": {
			"type": "record",
			"name": "product_color",
			"fields": [
				{"name": "color_name", "type": "string"},
				{"name": "color_code", "type": "string"}
			]
		}}}
	]
}`

type (
	CatalogEventV1 struct {
		Op          string           `avro:"op"`
		ProductID   string           `avro:"product_id"`
		Name        string           `avro:"name"`
		Description string           `avro:"description"`
		Price       float64          `avro:"prince"`
		Category    string           `avro:"category"`
		Stock       string           `avro:"stock"`
		Size        string           `avro:"size"`
		ImageURLs   []string         `avro:"image_urls"`
		Colors      []ProductColorV1 `avro:"colors"`
	}

	ProductColorV1 struct {
		ColorName string `avro:"color_name"`
		ColorCode string `avro:"color_code"`
	}
)
