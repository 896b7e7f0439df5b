package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func authedHandler(apiKeys []string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return BearerAuthMiddleware(apiKeys)(next)
}

func TestBearerAuthMiddleware_Disabled(t *testing.T) {
	h := authedHandler(nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want pass-through with no keys", rec.Code)
	}
}

func TestBearerAuthMiddleware(t *testing.T) {
	h := authedHandler([]string{"key-one", "key-two"})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid key", "Bearer key-one", http.StatusOK},
		{"second valid key", "Bearer key-two", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic key-one", http.StatusUnauthorized},
		{"invalid key", "Bearer wrong", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestBearerAuthMiddleware_ExemptPaths(t *testing.T) {
	h := authedHandler([]string{"key-one"})
	for _, path := range []string{"/health", "/metrics"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want exempt from auth", path, rec.Code)
		}
	}
}

func TestBearerAuthMiddleware_EmptyKeysFiltered(t *testing.T) {
	// Blank entries in the key list must not enable auth on their own.
	h := authedHandler([]string{"", ""})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want pass-through", rec.Code)
	}
}
