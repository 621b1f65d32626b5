package domain

import "fmt"

// PageSize is the fixed catalog page size.
const PageSize = 16

// TotalPages returns ceil(n/PageSize). An empty collection still has
// one page so the view always renders "page 1".
func TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// Page returns the 1-based page of ps. The caller clamps page to
// [1, TotalPages] beforehand; asking beyond the total is a contract
// violation reported as [ErrPageOutOfRange].
func Page(ps []Product, page int) ([]Product, error) {
	const op = "domain.Page"

	total := TotalPages(len(ps))
	if page < 1 || page > total {
		return nil, fmt.Errorf("%s: page %d of %d: %w",
			op, page, total, ErrPageOutOfRange)
	}

	lo := (page - 1) * PageSize
	if lo >= len(ps) {
		return nil, nil
	}
	hi := lo + PageSize
	if hi > len(ps) {
		hi = len(ps)
	}
	return ps[lo:hi:hi], nil
}

// A CatalogPage is one rendered slice of the filtered catalog together
// with the facet values the filter controls offer.
type CatalogPage struct {
	Products   []Product
	Page       int
	TotalPages int
	Categories []CategoryOption
	Sizes      []string
	Colors     []ColorOption
}
