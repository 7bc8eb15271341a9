package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgAuth "github.com/velomart/storefront/internal/pkg/auth"
	testhelpers "github.com/velomart/storefront/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// tokens resolve to identities by value: "admin" is an administrator,
// anything else a plain user.
func tokenAwareStub() testhelpers.FacadeStub {
	return testhelpers.FacadeStub{ParseTokenFn: func(token string) (pkgAuth.Identity, error) {
		switch token {
		case "admin":
			return pkgAuth.Identity{UserID: 1, IsAdmin: true}, nil
		case "user":
			return pkgAuth.Identity{UserID: 2}, nil
		default:
			return pkgAuth.Identity{}, pkgAuth.ErrInvalidToken
		}
	}}
}

func serve(t *testing.T, engine http.Handler, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouterPublicCatalog(t *testing.T) {
	engine := Setup(tokenAwareStub(), testLogger())

	if w := serve(t, engine, http.MethodGet, "/api/products", "", nil); w.Code != http.StatusOK {
		t.Fatalf("catalog must be public, got %d", w.Code)
	}
	if w := serve(t, engine, http.MethodGet, "/api/products/1", "", nil); w.Code != http.StatusOK {
		t.Fatalf("product page must be public, got %d", w.Code)
	}
}

func TestRouterOrdersRequireAuth(t *testing.T) {
	engine := Setup(tokenAwareStub(), testLogger())

	if w := serve(t, engine, http.MethodGet, "/api/orders/my-orders", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w := serve(t, engine, http.MethodGet, "/api/orders/my-orders", "user", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", w.Code)
	}
}

func TestRouterAdminSurface(t *testing.T) {
	engine := Setup(tokenAwareStub(), testLogger())

	if w := serve(t, engine, http.MethodGet, "/api/orders", "user", nil); w.Code != http.StatusForbidden {
		t.Fatalf("plain user must not list all orders, got %d", w.Code)
	}
	if w := serve(t, engine, http.MethodGet, "/api/orders", "admin", nil); w.Code != http.StatusOK {
		t.Fatalf("admin listing failed, got %d", w.Code)
	}

	body := strings.NewReader(`{"name":"Desk Lamp","price":20,"category":"lamps","stock":5}`)
	if w := serve(t, engine, http.MethodPost, "/api/products", "user", body); w.Code != http.StatusForbidden {
		t.Fatalf("plain user must not create products, got %d", w.Code)
	}
}

func TestRouterWebhookSkipsAuth(t *testing.T) {
	engine := Setup(tokenAwareStub(), testLogger())

	w := serve(t, engine, http.MethodPost, "/api/payments/webhook", "", strings.NewReader(`{"id":"evt_1"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("webhook must bypass auth (signature is its gate), got %d", w.Code)
	}
}

func TestRouterAuthEndpoints(t *testing.T) {
	engine := Setup(tokenAwareStub(), testLogger())

	body := strings.NewReader(`{"name":"Ada","email":"ada@example.com","password":"s3cret1"}`)
	if w := serve(t, engine, http.MethodPost, "/api/auth/register", "", body); w.Code != http.StatusCreated {
		t.Fatalf("register failed, got %d", w.Code)
	}

	body = strings.NewReader(`{"email":"ada@example.com","password":"s3cret1"}`)
	if w := serve(t, engine, http.MethodPost, "/api/auth/login", "", body); w.Code != http.StatusOK {
		t.Fatalf("login failed, got %d", w.Code)
	}
}

func TestRouterProfileSurface(t *testing.T) {
	engine := Setup(tokenAwareStub(), testLogger())

	if w := serve(t, engine, http.MethodGet, "/api/users/profile", "user", nil); w.Code != http.StatusOK {
		t.Fatalf("profile read failed, got %d", w.Code)
	}
	if w := serve(t, engine, http.MethodGet, "/api/users/profile", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("profile must require auth, got %d", w.Code)
	}
}
