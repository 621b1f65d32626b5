package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/maydel/storefront/internal/core/domain"
	"github.com/maydel/storefront/internal/core/port"
)

// POST   v1/admin/products JSON [ProductForm] (201 Created, 400 Bad request)
// PUT    v1/admin/products/{id} JSON [ProductForm] (200 OK, 404, 409 Conflict)
// DELETE v1/admin/products/{id} (204 No content, 404)
// POST   v1/admin/images multipart "images" (200 OK, 400, 502)

const maxUploadBytes = 32 << 20

type AdminHandler struct {
	admin port.ProductAdmin
}

func RegisterAdmin(
	mux *http.ServeMux, admin port.ProductAdmin, adminToken string,
) {
	h := AdminHandler{admin}
	gate := func(hf http.HandlerFunc) http.Handler {
		return RequireAdmin(adminToken, hf)
	}
	mux.Handle("POST /v1/admin/products", gate(h.PostProduct))
	mux.Handle("PUT /v1/admin/products/{id}", gate(h.PutProduct))
	mux.Handle("DELETE /v1/admin/products/{id}", gate(h.DeleteProduct))
	mux.Handle("POST /v1/admin/images", gate(h.PostImages))
}

func (h AdminHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostProduct"
	log := slog.With("op", op)

	p, vs, ok := decodeForm(w, r, log)
	if !ok {
		return
	}

	stored, err := h.admin.CreateProduct(r.Context(), p, vs)
	if err != nil {
		http.Error(w, "failed to create product", http.StatusServiceUnavailable)
		log.Error("failed to create product", "err", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(fromDomainProduct(stored)); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func (h AdminHandler) PutProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PutProduct"
	log := slog.With("op", op)

	p, vs, ok := decodeForm(w, r, log)
	if !ok {
		return
	}
	p.ID = r.PathValue("id")

	stored, err := h.admin.UpdateProduct(r.Context(), p, vs)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrVariantsLost):
			// the record kept its updated fields but lost its variants
			http.Error(w, "product saved without colors, resubmit them",
				http.StatusConflict)
			log.Error("variants lost on update", "id", p.ID, "err", err)
		default:
			http.Error(w, "failed to update product",
				http.StatusServiceUnavailable)
			log.Error("failed to update product", "id", p.ID, "err", err)
		}
		return
	}

	writeJSON(w, fromDomainProduct(stored), log)
}

func (h AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.DeleteProduct"
	log := slog.With("op", op)

	id := r.PathValue("id")
	if err := h.admin.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete product", http.StatusServiceUnavailable)
		log.Error("failed to delete product", "id", id, "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h AdminHandler) PostImages(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostImages"
	log := slog.With("op", op)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		http.Error(w, "no images attached", http.StatusBadRequest)
		return
	}
	if len(headers) > domain.MaxImages {
		http.Error(w, "too many images", http.StatusBadRequest)
		return
	}

	files := make([]domain.ImageFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		defer f.Close()
		files = append(files, domain.ImageFile{Name: fh.Filename, Data: f})
	}

	urls, err := h.admin.UploadImages(r.Context(), files)
	if err != nil {
		http.Error(w, "failed to upload images", http.StatusBadGateway)
		log.Error("failed to upload images", "n", len(files), "err", err)
		return
	}

	writeJSON(w, UploadResult{URLs: urls}, log)
}

func decodeForm(
	w http.ResponseWriter, r *http.Request, log *slog.Logger,
) (domain.Product, []domain.ColorVariant, bool) {
	var form ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return domain.Product{}, nil, false
	}

	p, vs, err := form.toDomain()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Warn("invalid product form", "err", err)
		return domain.Product{}, nil, false
	}
	return p, vs, true
}
