package domain

type (
	// A CategoryOption is one entry of the fixed category vocabulary.
	CategoryOption struct {
		ID    string
		Label string
	}

	// A ColorOption is one distinct variant color present in the catalog.
	ColorOption struct {
		Name string
		Code string
	}
)

// categories is the catalog-wide vocabulary. It is static, not derived
// from data; the ids are the persisted category values.
var categories = []CategoryOption{
	{ID: "ropa", Label: "Ropa"},
	{ID: "zapatos", Label: "Zapatos"},
	{ID: "accesorios", Label: "Accesorios"},
	{ID: "otros", Label: "Otros"},
}

// Categories returns the fixed category vocabulary.
func Categories() []CategoryOption {
	out := make([]CategoryOption, len(categories))
	copy(out, categories)
	return out
}

// ValidCategory reports whether id belongs to the category vocabulary.
func ValidCategory(id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Sizes returns the distinct non-empty sizes of ps in first-seen order.
func Sizes(ps []Product) []string {
	var out []string
	seen := make(map[string]struct{}, len(ps))
	for _, p := range ps {
		if p.Size == "" {
			continue
		}
		if _, ok := seen[p.Size]; ok {
			continue
		}
		seen[p.Size] = struct{}{}
		out = append(out, p.Size)
	}
	return out
}

// Colors returns the distinct variant colors across ps deduplicated by
// color name. When two products reuse a name with different codes the
// first occurrence wins.
func Colors(ps []Product) []ColorOption {
	var out []ColorOption
	seen := make(map[string]struct{})
	for _, p := range ps {
		for _, c := range p.Colors {
			if _, ok := seen[c.Name]; ok {
				continue
			}
			seen[c.Name] = struct{}{}
			out = append(out, ColorOption{Name: c.Name, Code: c.Code})
		}
	}
	return out
}
