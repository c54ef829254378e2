package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	pkgauth "github.com/emberworks/storefront-backend/pkg/auth"
	"github.com/emberworks/storefront-backend/pkg/config"
	"github.com/emberworks/storefront-backend/pkg/enums"
	"github.com/emberworks/storefront-backend/pkg/logger"
	"github.com/emberworks/storefront-backend/pkg/types"
	"github.com/google/uuid"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev
	cfg.App.ClientURL = "https://shop.example.com"
	cfg.JWT = config.JWTConfig{Secret: "secret", Issuer: "storefront", ExpirationMinutes: 30}

	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error")})
	return NewRouter(cfg, logg, nil, nil, prometheus.NewRegistry(), Services{})
}

func TestRouterHealthLive(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func TestRouterProtectedRoutesRequireAuth(t *testing.T) {
	router := testRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/cart/"},
		{http.MethodPost, "/api/v1/checkout/session"},
		{http.MethodGet, "/api/v1/orders/"},
		{http.MethodGet, "/api/v1/admin/analytics/summary"},
	}
	for _, tc := range paths {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestRouterAdminRoutesRejectCustomers(t *testing.T) {
	router := testRouter(t)

	cfg := config.JWTConfig{Secret: "secret", Issuer: "storefront", ExpirationMinutes: 30}
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleCustomer,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/analytics/summary", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRouterExposesMetrics(t *testing.T) {
	router := testRouter(t)

	// generate one observed request first
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "http_request") {
		t.Fatalf("expected request metrics in exposition, got:\n%s", w.Body.String())
	}
}
