package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/promarket/marketplace-api/internal/infrastructure/config"
)

func signRoleToken(t *testing.T, secret, userID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// NewRouter is built once: the prometheus middleware registers collectors in
// the default registry, and a second call would collide.
func TestNewRouter_RouteRegistration(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:        "router-test-secret",
		TokenTTL:         time.Hour,
		CommissionRate:   0.13,
		ProfitMarginRate: 0.75,
		PaymentWorkers:   1,
		StatsCacheTTL:    time.Minute,
	}

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("mongo client: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	t.Cleanup(func() { _ = rdb.Close() })

	e, _ := NewRouter(cfg, client.Database("marketplace_router_test"), rdb, zerolog.Nop())

	registered := make(map[string]bool)
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	want := []string{
		"POST /v1/auth/register",
		"POST /v1/auth/login",
		"GET /v1/marketplace/pros",
		"GET /v1/me",
		"GET /v1/pro/dashboard-stats",
		"GET /v1/pro/reporting-stats",
		"GET /v1/admin/stats",
		"GET /v1/admin/transactions",
		"GET /v1/admin/users",
		"GET /v1/projects",
		"GET /v1/invoices",
		"POST /v1/payments/events",
	}
	for _, route := range want {
		if !registered[route] {
			t.Fatalf("route %s not registered", route)
		}
	}

	// Both checks resolve the route and stop in middleware, before any storage
	// access, so no mongo or redis server is needed.
	t.Run("admin transactions requires a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/transactions", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without credentials, got %d", rec.Code)
		}
	})

	t.Run("admin transactions rejects non-admin roles", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/transactions", nil)
		req.Header.Set("Authorization", "Bearer "+signRoleToken(t, cfg.JWTSecret, "client_1", "client"))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for client role, got %d", rec.Code)
		}
	})
}
