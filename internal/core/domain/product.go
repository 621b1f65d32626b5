package domain

type (
	// A Product is one catalog record with its color variants attached.
	// Images holds the normalized ordered URL list; the raw stored form
	// never leaves the storage boundary.
	Product struct {
		ID          string
		Name        string
		Description string
		Price       float64 // persisted under the legacy "prince" column
		Category    string
		Stock       string
		Size        string
		Images      []string
		Colors      []ColorVariant
	}

	// A ColorVariant is one color option of a product.
	ColorVariant struct {
		ID        string
		ProductID string
		Name      string
		Code      string
	}
)

// HasColor reports whether some variant of p carries the given color name.
func (p Product) HasColor(name string) bool {
	for _, c := range p.Colors {
		if c.Name == name {
			return true
		}
	}
	return false
}
