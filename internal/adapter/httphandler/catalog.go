package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/maydel/storefront/internal/core/domain"
	"github.com/maydel/storefront/internal/core/port"
	"github.com/maydel/storefront/pkg/schema"
)

// GET v1/catalog?category=&size=&color=&q=&page= (200 OK)
// GET v1/catalog/products/{id} (200 OK, 404 Not found)

// A PublishedLookup reads the latest published state of a product from
// the materialized events table.
type PublishedLookup interface {
	Get(productID string) (schema.CatalogEventV1, bool, error)
}

type CatalogHandler struct {
	catalog   port.CatalogProvider
	published PublishedLookup
}

// RegisterCatalog mounts the storefront read surface. The published
// lookup is optional; when nil every product read goes to the store.
func RegisterCatalog(
	mux *http.ServeMux, catalog port.CatalogProvider, published PublishedLookup,
) {
	h := CatalogHandler{catalog, published}
	mux.HandleFunc("GET /v1/catalog", h.GetCatalog)
	mux.HandleFunc("GET /v1/catalog/products/{id}", h.GetProduct)
}

func (h CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCatalog"
	log := slog.With("op", op)

	q := r.URL.Query()
	f := domain.Filter{
		Category: q.Get("category"),
		Size:     q.Get("size"),
		Color:    q.Get("color"),
		Query:    q.Get("q"),
	}

	page := 1
	if s := q.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
		page = n
	}

	v, err := h.catalog.BrowsePage(r.Context(), f, page)
	if err != nil {
		http.Error(w, "failed to load catalog", http.StatusServiceUnavailable)
		log.Error("failed to browse catalog", "err", err)
		return
	}

	writeJSON(w, fromDomainPage(v), log)
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	id := r.PathValue("id")

	if h.published != nil {
		e, ok, err := h.published.Get(id)
		if err != nil {
			log.Warn("published lookup failed, falling back to store",
				"id", id, "err", err)
		} else if ok {
			writeJSON(w, fromSchemaEvent(e), log)
			return
		}
	}

	p, err := h.catalog.ProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load product", http.StatusServiceUnavailable)
		log.Error("failed to load product", "id", id, "err", err)
		return
	}

	writeJSON(w, fromDomainProduct(p), log)
}

func writeJSON(w http.ResponseWriter, v any, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
