package domain

import "io"

// Catalog event operations.
const (
	EventUpsert = "upsert"
	EventDelete = "delete"
)

// A CatalogEvent records one confirmed catalog mutation. Delete events
// carry only the product id.
type CatalogEvent struct {
	Op      string
	Product Product
}

// An ImageFile is one pending upload handed to the image host.
type ImageFile struct {
	Name string
	Data io.Reader
}
