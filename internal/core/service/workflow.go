package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/maydel/storefront/internal/core/domain"
)

// WorkflowState is the lifecycle position of the admin product form.
type WorkflowState int

const (
	StateIdle WorkflowState = iota
	StateCreating
	StateEditing
	StateSubmitting
)

func (s WorkflowState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCreating:
		return "creating"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	}
	return "unknown"
}

type (
	// A VariantDraft is one unsaved color entry of the form.
	VariantDraft struct {
		Name string
		Code string
	}

	// A Draft is the in-progress product state held by the form before
	// submission. Price stays text until submit parses it.
	Draft struct {
		Name        string
		Description string
		Price       string
		Category    string
		Stock       string
		Size        string
		Images      []string
		Variants    []VariantDraft
	}
)

// blankDraft is the single factory for an empty form. Every reset goes
// through here.
func blankDraft() Draft {
	return Draft{}
}

func (d Draft) clone() Draft {
	d.Images = slices.Clone(d.Images)
	d.Variants = slices.Clone(d.Variants)
	return d
}

// A Workflow drives the create/edit/delete lifecycle of one admin
// session: it owns the draft, the variant draft set, the pending image
// list and the in-memory product list shown to the admin. It is not
// safe for concurrent use; one session is single-threaded.
type Workflow struct {
	admin    Admin
	products []domain.Product
	state    WorkflowState
	draft    Draft
	editID   string
	errMsg   string
}

func NewWorkflow(admin Admin, products []domain.Product) *Workflow {
	return &Workflow{admin: admin, products: products, draft: blankDraft()}
}

func (w *Workflow) State() WorkflowState {
	return w.state
}

// Draft returns a snapshot; mutating it does not affect the form.
func (w *Workflow) Draft() Draft {
	return w.draft.clone()
}

func (w *Workflow) Products() []domain.Product {
	return slices.Clone(w.products)
}

// ErrMessage is the user-visible message of the last failed operation,
// empty after a success.
func (w *Workflow) ErrMessage() string {
	return w.errMsg
}

func (w *Workflow) formOpen() bool {
	return w.state == StateCreating || w.state == StateEditing
}

// StartCreate opens a blank form. It is a no-op unless the workflow is
// idle.
func (w *Workflow) StartCreate() {
	if w.state != StateIdle {
		return
	}
	w.draft = blankDraft()
	w.editID = ""
	w.errMsg = ""
	w.state = StateCreating
}

// StartEdit fetches the product's variants and opens the form populated
// from the record and the fetched set. When the fetch fails the form
// does not open and the error wraps [domain.ErrVariantFetch].
func (w *Workflow) StartEdit(ctx context.Context, productID string) error {
	const op = "Workflow.StartEdit"

	if w.state != StateIdle {
		return fmt.Errorf("%s: form already open: %w", op, domain.ErrValidation)
	}

	p, ok := w.findProduct(productID)
	if !ok {
		w.errMsg = "product no longer exists"
		return fmt.Errorf("%s: product %q: %w", op, productID, domain.ErrNotFound)
	}

	vs, err := w.admin.FetchVariants(ctx, productID)
	if err != nil {
		w.errMsg = "failed to load product colors"
		return fmt.Errorf("%s: %w: %w", op, domain.ErrVariantFetch, err)
	}

	d := blankDraft()
	d.Name = p.Name
	d.Description = p.Description
	d.Price = strconv.FormatFloat(p.Price, 'f', -1, 64)
	d.Category = p.Category
	d.Stock = p.Stock
	d.Size = p.Size
	d.Images = slices.Clone(p.Images)
	for _, v := range vs {
		d.Variants = append(d.Variants, VariantDraft{Name: v.Name, Code: v.Code})
	}

	w.draft = d
	w.editID = productID
	w.errMsg = ""
	w.state = StateEditing
	return nil
}

// Field setters are silent no-ops while no form is open.

func (w *Workflow) SetName(v string) {
	if w.formOpen() {
		w.draft.Name = v
	}
}

func (w *Workflow) SetDescription(v string) {
	if w.formOpen() {
		w.draft.Description = v
	}
}

// SetPrice stores the raw text; it is parsed and validated on submit.
func (w *Workflow) SetPrice(v string) {
	if w.formOpen() {
		w.draft.Price = v
	}
}

func (w *Workflow) SetCategory(v string) {
	if w.formOpen() {
		w.draft.Category = v
	}
}

func (w *Workflow) SetStock(v string) {
	if w.formOpen() {
		w.draft.Stock = v
	}
}

func (w *Workflow) SetSize(v string) {
	if w.formOpen() {
		w.draft.Size = v
	}
}

// AddVariant appends an empty color entry to the draft.
func (w *Workflow) AddVariant() {
	if !w.formOpen() {
		return
	}
	w.draft.Variants = append(w.draft.Variants, VariantDraft{})
}

// RemoveVariant drops the entry at i, keeping the order of the rest.
// Out-of-range indexes are a silent no-op.
func (w *Workflow) RemoveVariant(i int) {
	if !w.formOpen() || i < 0 || i >= len(w.draft.Variants) {
		return
	}
	w.draft.Variants = slices.Delete(slices.Clone(w.draft.Variants), i, i+1)
}

func (w *Workflow) SetVariantName(i int, name string) {
	if !w.formOpen() || i < 0 || i >= len(w.draft.Variants) {
		return
	}
	vs := slices.Clone(w.draft.Variants)
	vs[i].Name = name
	w.draft.Variants = vs
}

func (w *Workflow) SetVariantCode(i int, code string) {
	if !w.formOpen() || i < 0 || i >= len(w.draft.Variants) {
		return
	}
	vs := slices.Clone(w.draft.Variants)
	vs[i].Code = code
	w.draft.Variants = vs
}

// AddImage appends url to the pending list. Once the list holds
// [domain.MaxImages] entries further adds are rejected.
func (w *Workflow) AddImage(url string) error {
	const op = "Workflow.AddImage"

	if !w.formOpen() {
		return fmt.Errorf("%s: no open form: %w", op, domain.ErrValidation)
	}
	if len(w.draft.Images) >= domain.MaxImages {
		w.errMsg = fmt.Sprintf("a product holds at most %d images", domain.MaxImages)
		return fmt.Errorf("%s: %d images: %w",
			op, len(w.draft.Images), domain.ErrValidation)
	}
	w.draft.Images = append(slices.Clone(w.draft.Images), url)
	return nil
}

// RemoveImage drops the image at i; out of range is a silent no-op.
func (w *Workflow) RemoveImage(i int) {
	if !w.formOpen() || i < 0 || i >= len(w.draft.Images) {
		return
	}
	w.draft.Images = slices.Delete(slices.Clone(w.draft.Images), i, i+1)
}

// UploadImages sends the whole batch to the image host and merges the
// URLs into the draft only when every upload succeeded. A batch that
// would push the list past the image cap is rejected up front.
func (w *Workflow) UploadImages(ctx context.Context, files []domain.ImageFile) error {
	const op = "Workflow.UploadImages"

	if !w.formOpen() {
		return fmt.Errorf("%s: no open form: %w", op, domain.ErrValidation)
	}
	if len(w.draft.Images)+len(files) > domain.MaxImages {
		w.errMsg = fmt.Sprintf("a product holds at most %d images", domain.MaxImages)
		return fmt.Errorf("%s: %d images: %w",
			op, len(w.draft.Images)+len(files), domain.ErrValidation)
	}

	urls, err := w.admin.UploadImages(ctx, files)
	if err != nil {
		w.errMsg = "failed to upload images, try again"
		return fmt.Errorf("%s: %w", op, err)
	}

	w.draft.Images = append(slices.Clone(w.draft.Images), urls...)
	w.errMsg = ""
	return nil
}

// Submit validates the draft and persists it: insert plus variant
// insert on create, update plus delete-then-insert variant
// reconciliation on edit. On failure the draft stays intact and the
// form remains open with a message; on success the form closes and the
// in-memory list is updated.
func (w *Workflow) Submit(ctx context.Context) error {
	const op = "Workflow.Submit"

	if !w.formOpen() {
		return fmt.Errorf("%s: no open form: %w", op, domain.ErrValidation)
	}

	p, err := w.buildProduct()
	if err != nil {
		w.errMsg = "check the form fields and try again"
		return fmt.Errorf("%s: %w", op, err)
	}
	vs := make([]domain.ColorVariant, 0, len(w.draft.Variants))
	for _, v := range w.draft.Variants {
		vs = append(vs, domain.ColorVariant{Name: v.Name, Code: v.Code})
	}

	prev := w.state
	w.state = StateSubmitting

	var stored domain.Product
	if prev == StateCreating {
		stored, err = w.admin.CreateProduct(ctx, p, vs)
	} else {
		p.ID = w.editID
		stored, err = w.admin.UpdateProduct(ctx, p, vs)
	}
	if err != nil {
		w.state = prev
		w.errMsg = submitErrMessage(err)
		return fmt.Errorf("%s: %w", op, err)
	}

	if prev == StateCreating {
		w.products = append(slices.Clone(w.products), stored)
	} else {
		ps := slices.Clone(w.products)
		for i := range ps {
			if ps[i].ID == stored.ID {
				ps[i] = stored
				break
			}
		}
		w.products = ps
	}

	w.draft = blankDraft()
	w.editID = ""
	w.errMsg = ""
	w.state = StateIdle
	return nil
}

// Cancel discards the draft unconditionally and closes the form.
func (w *Workflow) Cancel() {
	if !w.formOpen() {
		return
	}
	w.draft = blankDraft()
	w.editID = ""
	w.errMsg = ""
	w.state = StateIdle
}

// Delete removes the product record and drops it from the in-memory
// list. Variants are left to the store's cascade.
func (w *Workflow) Delete(ctx context.Context, productID string) error {
	const op = "Workflow.Delete"

	if err := w.admin.DeleteProduct(ctx, productID); err != nil {
		w.errMsg = "failed to delete the product"
		return fmt.Errorf("%s: %w", op, err)
	}

	ps := slices.Clone(w.products)
	ps = slices.DeleteFunc(ps, func(p domain.Product) bool {
		return p.ID == productID
	})
	w.products = ps
	w.errMsg = ""
	return nil
}

func (w *Workflow) buildProduct() (domain.Product, error) {
	const op = "Workflow.buildProduct"

	if len(w.draft.Images) == 0 {
		return domain.Product{}, fmt.Errorf(
			"%s: image list is empty: %w", op, domain.ErrValidation)
	}
	if len(w.draft.Variants) == 0 {
		return domain.Product{}, fmt.Errorf(
			"%s: variant list is empty: %w", op, domain.ErrValidation)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(w.draft.Price), 64)
	if err != nil || price < 0 {
		return domain.Product{}, fmt.Errorf(
			"%s: price %q is not a non-negative number: %w",
			op, w.draft.Price, domain.ErrValidation)
	}

	return domain.Product{
		Name:        w.draft.Name,
		Description: w.draft.Description,
		Price:       price,
		Category:    w.draft.Category,
		Stock:       w.draft.Stock,
		Size:        w.draft.Size,
		Images:      slices.Clone(w.draft.Images),
	}, nil
}

func (w *Workflow) findProduct(id string) (domain.Product, bool) {
	for _, p := range w.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func submitErrMessage(err error) string {
	if errors.Is(err, domain.ErrVariantsLost) {
		return "the product was saved but its colors were lost, re-add them and save again"
	}
	return "failed to save the product, try again"
}
