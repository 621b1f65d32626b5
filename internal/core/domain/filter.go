package domain

import "strings"

// A Filter is the active facet selection of one catalog view.
// The zero value matches every product.
type Filter struct {
	Category string
	Size     string
	Color    string
	Query    string
}

// Match reports whether p passes every set clause of f. Unset clauses
// are vacuously true; category, size and color compare exactly, the
// query is a case-insensitive substring of name or description.
func (f Filter) Match(p Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Size != "" && p.Size != f.Size {
		return false
	}
	if f.Color != "" && !p.HasColor(f.Color) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}

// ApplyFilter returns the products of ps passing f, preserving the
// input order. No ranking is applied.
func ApplyFilter(ps []Product, f Filter) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
