package httphandler_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/maydel/storefront/internal/adapter/httphandler"
	"github.com/maydel/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testToken = "secret-token"

type MockProductAdmin struct {
	mock.Mock
}

func (m *MockProductAdmin) CreateProduct(
	ctx context.Context, p domain.Product, vs []domain.ColorVariant,
) (domain.Product, error) {
	args := m.Called(ctx, p, vs)
	stored, _ := args.Get(0).(domain.Product)
	return stored, args.Error(1)
}

func (m *MockProductAdmin) UpdateProduct(
	ctx context.Context, p domain.Product, vs []domain.ColorVariant,
) (domain.Product, error) {
	args := m.Called(ctx, p, vs)
	stored, _ := args.Get(0).(domain.Product)
	return stored, args.Error(1)
}

func (m *MockProductAdmin) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductAdmin) UploadImages(
	ctx context.Context, files []domain.ImageFile,
) ([]string, error) {
	args := m.Called(ctx, files)
	urls, _ := args.Get(0).([]string)
	return urls, args.Error(1)
}

func adminMux(admin *MockProductAdmin) *http.ServeMux {
	mux := http.NewServeMux()
	httphandler.RegisterAdmin(mux, admin, testToken)
	return mux
}

func adminRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set("X-Admin-Token", testToken)
	return r
}

const validForm = `{
	"name": "Faja",
	"prince": "29.99",
	"category": "ropa",
	"image_url": ["https://cdn/a.jpg"],
	"product_colors": [{"color_name": "Negro", "color_code": "#000"}]
}`

func TestPostProduct(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		admin := new(MockProductAdmin)
		admin.On("CreateProduct", mock.Anything,
			mock.MatchedBy(func(p domain.Product) bool {
				return p.Name == "Faja" && p.Price == 29.99
			}),
			mock.Anything,
		).Return(domain.Product{ID: "p1", Name: "Faja", Price: 29.99}, nil)

		rec := httptest.NewRecorder()
		adminMux(admin).ServeHTTP(rec,
			adminRequest(http.MethodPost, "/v1/admin/products", validForm))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"prince":29.99`)
		admin.AssertExpectations(t)
	})

	t.Run("MalformedPrice", func(t *testing.T) {
		admin := new(MockProductAdmin)
		body := strings.Replace(validForm, "29.99", "29.99abc", 1)

		rec := httptest.NewRecorder()
		adminMux(admin).ServeHTTP(rec,
			adminRequest(http.MethodPost, "/v1/admin/products", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		admin.AssertNotCalled(t, "CreateProduct",
			mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("TooManyImages", func(t *testing.T) {
		urls := make([]string, domain.MaxImages+1)
		for i := range urls {
			urls[i] = fmt.Sprintf(`"https://cdn/%d.jpg"`, i)
		}
		body := strings.Replace(validForm,
			`["https://cdn/a.jpg"]`, "["+strings.Join(urls, ",")+"]", 1)

		rec := httptest.NewRecorder()
		adminMux(new(MockProductAdmin)).ServeHTTP(rec,
			adminRequest(http.MethodPost, "/v1/admin/products", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Forbidden", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/v1/admin/products",
			strings.NewReader(validForm))
		r.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		adminMux(new(MockProductAdmin)).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("SessionCookieGrantsAccess", func(t *testing.T) {
		admin := new(MockProductAdmin)
		admin.On("CreateProduct", mock.Anything, mock.Anything, mock.Anything).
			Return(domain.Product{ID: "p1"}, nil)

		r := httptest.NewRequest(http.MethodPost, "/v1/admin/products",
			strings.NewReader(validForm))
		r.Header.Set("Content-Type", "application/json")
		r.AddCookie(&http.Cookie{Name: "session", Value: "admin"})

		rec := httptest.NewRecorder()
		adminMux(admin).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestPutProduct(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		admin := new(MockProductAdmin)
		admin.On("UpdateProduct", mock.Anything, mock.Anything, mock.Anything).
			Return(domain.Product{}, domain.ErrNotFound)

		rec := httptest.NewRecorder()
		adminMux(admin).ServeHTTP(rec,
			adminRequest(http.MethodPut, "/v1/admin/products/p1", validForm))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("VariantsLostIsConflict", func(t *testing.T) {
		admin := new(MockProductAdmin)
		admin.On("UpdateProduct", mock.Anything, mock.Anything, mock.Anything).
			Return(domain.Product{}, fmt.Errorf("%w: insert failed",
				domain.ErrVariantsLost))

		rec := httptest.NewRecorder()
		adminMux(admin).ServeHTTP(rec,
			adminRequest(http.MethodPut, "/v1/admin/products/p1", validForm))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "resubmit")
	})

	t.Run("PathIDWins", func(t *testing.T) {
		admin := new(MockProductAdmin)
		admin.On("UpdateProduct", mock.Anything,
			mock.MatchedBy(func(p domain.Product) bool { return p.ID == "p7" }),
			mock.Anything,
		).Return(domain.Product{ID: "p7"}, nil)

		rec := httptest.NewRecorder()
		adminMux(admin).ServeHTTP(rec,
			adminRequest(http.MethodPut, "/v1/admin/products/p7", validForm))

		assert.Equal(t, http.StatusOK, rec.Code)
		admin.AssertExpectations(t)
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("NoContent", func(t *testing.T) {
		admin := new(MockProductAdmin)
		admin.On("DeleteProduct", mock.Anything, "p1").Return(nil)

		rec := httptest.NewRecorder()
		adminMux(admin).ServeHTTP(rec,
			adminRequest(http.MethodDelete, "/v1/admin/products/p1", ""))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		admin := new(MockProductAdmin)
		admin.On("DeleteProduct", mock.Anything, "p1").
			Return(domain.ErrNotFound)

		rec := httptest.NewRecorder()
		adminMux(admin).ServeHTTP(rec,
			adminRequest(http.MethodDelete, "/v1/admin/products/p1", ""))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPostImages(t *testing.T) {
	t.Run("UploadFailureIsBadGateway", func(t *testing.T) {
		admin := new(MockProductAdmin)
		admin.On("UploadImages", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: quota exceeded", domain.ErrUpload))

		body, contentType := multipartImages(t, "a.jpg")
		r := httptest.NewRequest(http.MethodPost, "/v1/admin/images", body)
		r.Header.Set("Content-Type", contentType)
		r.Header.Set("X-Admin-Token", testToken)

		rec := httptest.NewRecorder()
		adminMux(admin).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("ReturnsURLs", func(t *testing.T) {
		admin := new(MockProductAdmin)
		admin.On("UploadImages", mock.Anything,
			mock.MatchedBy(func(files []domain.ImageFile) bool {
				return len(files) == 2 && files[0].Name == "a.jpg"
			})).Return([]string{"https://cdn/a.jpg", "https://cdn/b.jpg"}, nil)

		body, contentType := multipartImages(t, "a.jpg", "b.jpg")
		r := httptest.NewRequest(http.MethodPost, "/v1/admin/images", body)
		r.Header.Set("Content-Type", contentType)
		r.Header.Set("X-Admin-Token", testToken)

		rec := httptest.NewRecorder()
		adminMux(admin).ServeHTTP(rec, r)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "https://cdn/b.jpg")
	})

	t.Run("EmptyBatch", func(t *testing.T) {
		body, contentType := multipartImages(t)
		r := httptest.NewRequest(http.MethodPost, "/v1/admin/images", body)
		r.Header.Set("Content-Type", contentType)
		r.Header.Set("X-Admin-Token", testToken)

		rec := httptest.NewRecorder()
		adminMux(new(MockProductAdmin)).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("TooManyFiles", func(t *testing.T) {
		names := make([]string, domain.MaxImages+1)
		for i := range names {
			names[i] = fmt.Sprintf("%d.jpg", i)
		}
		body, contentType := multipartImages(t, names...)
		r := httptest.NewRequest(http.MethodPost, "/v1/admin/images", body)
		r.Header.Set("Content-Type", contentType)
		r.Header.Set("X-Admin-Token", testToken)

		rec := httptest.NewRecorder()
		adminMux(new(MockProductAdmin)).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func multipartImages(t *testing.T, names ...string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range names {
		fw, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
