package httphandler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maydel/storefront/internal/core/domain"
	"github.com/maydel/storefront/pkg/schema"
)

// Wire names mirror the persisted collection fields, including the
// legacy "prince" price field and the image_url list.

type (
	Product struct {
		ID          string         `json:"id"`
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Price       float64        `json:"prince"`
		Category    string         `json:"category"`
		Stock       string         `json:"stock"`
		Size        string         `json:"size"`
		ImageURLs   []string       `json:"image_url"`
		Colors      []ProductColor `json:"product_colors"`
	}

	ProductColor struct {
		ID        string `json:"id"`
		ProductID string `json:"product_id"`
		ColorName string `json:"color_name"`
		ColorCode string `json:"color_code"`
	}

	// A ProductForm is the admin create/edit payload. The price arrives
	// as the form's text value and is validated here.
	ProductForm struct {
		Name        string             `json:"name"`
		Description string             `json:"description"`
		Price       string             `json:"prince"`
		Category    string             `json:"category"`
		Stock       string             `json:"stock"`
		Size        string             `json:"size"`
		ImageURLs   []string           `json:"image_url"`
		Colors      []ProductColorForm `json:"product_colors"`
	}

	ProductColorForm struct {
		ColorName string `json:"color_name"`
		ColorCode string `json:"color_code"`
	}

	CategoryOption struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}

	ColorOption struct {
		ColorName string `json:"color_name"`
		ColorCode string `json:"color_code"`
	}

	CatalogPage struct {
		Products   []Product        `json:"products"`
		Page       int              `json:"page"`
		TotalPages int              `json:"total_pages"`
		Categories []CategoryOption `json:"categories"`
		Sizes      []string         `json:"sizes"`
		Colors     []ColorOption    `json:"colors"`
	}

	UploadResult struct {
		URLs []string `json:"urls"`
	}
)

func fromDomainProduct(p domain.Product) Product {
	out := Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Stock:       p.Stock,
		Size:        p.Size,
		ImageURLs:   p.Images,
	}
	out.Colors = make([]ProductColor, len(p.Colors))
	for i, c := range p.Colors {
		out.Colors[i] = ProductColor{
			ID:        c.ID,
			ProductID: c.ProductID,
			ColorName: c.Name,
			ColorCode: c.Code,
		}
	}
	return out
}

// fromSchemaEvent renders a materialized catalog event as the wire
// product. Variant row ids are not part of the event payload.
func fromSchemaEvent(e schema.CatalogEventV1) Product {
	out := Product{
		ID:          e.ProductID,
		Name:        e.Name,
		Description: e.Description,
		Price:       e.Price,
		Category:    e.Category,
		Stock:       e.Stock,
		Size:        e.Size,
		ImageURLs:   e.ImageURLs,
	}
	out.Colors = make([]ProductColor, len(e.Colors))
	for i, c := range e.Colors {
		out.Colors[i] = ProductColor{
			ProductID: e.ProductID,
			ColorName: c.ColorName,
			ColorCode: c.ColorCode,
		}
	}
	return out
}

func fromDomainPage(v domain.CatalogPage) CatalogPage {
	out := CatalogPage{
		Products:   make([]Product, len(v.Products)),
		Page:       v.Page,
		TotalPages: v.TotalPages,
		Categories: make([]CategoryOption, len(v.Categories)),
		Sizes:      v.Sizes,
		Colors:     make([]ColorOption, len(v.Colors)),
	}
	for i, p := range v.Products {
		out.Products[i] = fromDomainProduct(p)
	}
	for i, c := range v.Categories {
		out.Categories[i] = CategoryOption{ID: c.ID, Label: c.Label}
	}
	for i, c := range v.Colors {
		out.Colors[i] = ColorOption{ColorName: c.Name, ColorCode: c.Code}
	}
	return out
}

// toDomain validates the form and returns the product record and its
// variant set. All failures wrap [domain.ErrValidation].
func (f ProductForm) toDomain() (domain.Product, []domain.ColorVariant, error) {
	const op = "ProductForm.toDomain"

	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil || price < 0 {
		return domain.Product{}, nil, fmt.Errorf(
			"%s: price %q is not a non-negative number: %w",
			op, f.Price, domain.ErrValidation)
	}
	if f.Category != "" && !domain.ValidCategory(f.Category) {
		return domain.Product{}, nil, fmt.Errorf(
			"%s: unknown category %q: %w", op, f.Category, domain.ErrValidation)
	}
	if len(f.ImageURLs) == 0 {
		return domain.Product{}, nil, fmt.Errorf(
			"%s: image list is empty: %w", op, domain.ErrValidation)
	}
	if len(f.ImageURLs) > domain.MaxImages {
		return domain.Product{}, nil, fmt.Errorf(
			"%s: %d images exceeds the cap of %d: %w",
			op, len(f.ImageURLs), domain.MaxImages, domain.ErrValidation)
	}
	if len(f.Colors) == 0 {
		return domain.Product{}, nil, fmt.Errorf(
			"%s: variant list is empty: %w", op, domain.ErrValidation)
	}

	p := domain.Product{
		Name:        f.Name,
		Description: f.Description,
		Price:       price,
		Category:    f.Category,
		Stock:       f.Stock,
		Size:        f.Size,
		Images:      f.ImageURLs,
	}
	vs := make([]domain.ColorVariant, len(f.Colors))
	for i, c := range f.Colors {
		vs[i] = domain.ColorVariant{Name: c.ColorName, Code: c.ColorCode}
	}
	return p, vs, nil
}
