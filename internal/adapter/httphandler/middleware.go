package httphandler

import "net/http"

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		ct := r.Header.Get("Content-Type")
		if ct != "application/json" && !isMultipart(ct) {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

func isMultipart(contentType string) bool {
	const prefix = "multipart/form-data"
	return len(contentType) >= len(prefix) && contentType[:len(prefix)] == prefix
}

// RequireAdmin gates the admin surface. Session resolution itself is
// external; this only honors an already issued admin session cookie or
// the configured token header.
func RequireAdmin(token string, next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if isAdmin(r, token) {
			next.ServeHTTP(w, r)
			return
		}
		http.Error(w, "forbidden", http.StatusForbidden)
	}
	return http.HandlerFunc(hf)
}

func isAdmin(r *http.Request, token string) bool {
	if c, err := r.Cookie("session"); err == nil && c.Value == "admin" {
		return true
	}
	if token == "" {
		return false
	}
	return r.Header.Get("X-Admin-Token") == token
}
