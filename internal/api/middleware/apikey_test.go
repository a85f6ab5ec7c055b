package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/middleware"
)

// TestAPIKeyMiddleware tests the internal API key and time token guard.
//
// WHY: The payment route mutates externally-owned financial state; every
// rejection path must fire before the handler runs, with a details message
// the internal caller can act on.
func TestAPIKeyMiddleware(t *testing.T) {
	testAPIKey := "test-api-key-12345"
	os.Setenv("INTERNAL_API_KEY", testAPIKey)
	defer os.Unsetenv("INTERNAL_API_KEY")

	serve := func(t *testing.T, mutate func(*http.Request)) (*httptest.ResponseRecorder, bool) {
		t.Helper()

		handlerCalled := false
		mw := middleware.APIKeyMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			handlerCalled = true
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodPost, "/test", nil)
		mutate(req)

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)
		return w, handlerCalled
	}

	details := func(t *testing.T, w *httptest.ResponseRecorder) string {
		t.Helper()

		var response map[string]string
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}
		return response["details"]
	}

	t.Run("rejects request without API key", func(t *testing.T) {
		w, called := serve(t, func(_ *http.Request) {})

		if called {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
		if got := details(t, w); got != "Missing API key" {
			t.Errorf("Expected 'Missing API key' error, got '%s'", got)
		}
	})

	t.Run("rejects request with invalid API key", func(t *testing.T) {
		w, called := serve(t, func(r *http.Request) {
			r.Header.Set("X-API-Key", "invalid")
		})

		if called {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
		if got := details(t, w); got != "Invalid API key" {
			t.Errorf("Expected 'Invalid API key' error, got '%s'", got)
		}
	})

	t.Run("rejects request without time token", func(t *testing.T) {
		w, called := serve(t, func(r *http.Request) {
			r.Header.Set("X-API-Key", testAPIKey)
		})

		if called {
			t.Error("Expected request not to complete.")
		}
		if got := details(t, w); got != "Missing Time token" {
			t.Errorf("Expected 'Missing Time token' error, got '%s'", got)
		}
	})

	t.Run("rejects request with invalid time token", func(t *testing.T) {
		w, called := serve(t, func(r *http.Request) {
			r.Header.Set("X-API-Key", testAPIKey)
			r.Header.Set("X-Time-Token", "invalid")
		})

		if called {
			t.Error("Expected request not to complete.")
		}
		if got := details(t, w); got != "Time token is invalid or expired" {
			t.Errorf("Expected 'Time token is invalid or expired' error, got '%s'", got)
		}
	})

	t.Run("rejects time token signed with a different key", func(t *testing.T) {
		w, called := serve(t, func(r *http.Request) {
			r.Header.Set("X-API-Key", testAPIKey)
			r.Header.Set("X-Time-Token", middleware.GenerateTimeToken("some-other-key"))
		})

		if called {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("allows request with valid API key and time token", func(t *testing.T) {
		w, called := serve(t, func(r *http.Request) {
			r.Header.Set("X-API-Key", testAPIKey)
			r.Header.Set("X-Time-Token", middleware.GenerateTimeToken(testAPIKey))
		})

		if !called {
			t.Error("Expected handler to complete.")
		}
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("fail on not loaded internal_api_key", func(t *testing.T) {
		os.Unsetenv("INTERNAL_API_KEY")
		defer os.Setenv("INTERNAL_API_KEY", testAPIKey)

		w, called := serve(t, func(_ *http.Request) {})

		if called {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
		if got := details(t, w); got != "Authentication not loaded" {
			t.Errorf("Expected 'Authentication not loaded' error, got '%s'", got)
		}
	})
}
