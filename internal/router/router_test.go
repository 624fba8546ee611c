package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vendorhub/payout/internal/config"
	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRouterTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		Payout: config.PayoutConfig{ReturnPeriodDays: 30, HolidayLookaheadDays: 30, Currency: "INR"},
	}
	return SetupRouter(cfg, provider.NewContainer(cfg))
}

func TestSetupRouterRegistersAdminRoutes(t *testing.T) {
	r := setupRouterTest(t)

	registered := make(map[string]struct{})
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = struct{}{}
	}
	want := []string{
		"POST /api/v1/admin/payouts/calculate",
		"POST /api/v1/admin/payouts",
		"GET /api/v1/admin/payouts",
		"GET /api/v1/admin/payouts/export",
		"GET /api/v1/admin/payouts/tds-summary",
		"GET /api/v1/admin/payouts/revenue-summary",
		"GET /api/v1/admin/payouts/:id",
		"POST /api/v1/admin/payouts/:id/process",
		"POST /api/v1/admin/payouts/:id/complete",
		"POST /api/v1/admin/payouts/:id/fail",
		"GET /api/v1/admin/vendors/:id/wallet",
		"GET /api/v1/admin/vendors/:id/wallet/transactions",
		"GET /api/v1/admin/vendors/:id/wallet/reconcile",
		"DELETE /api/v1/admin/bank-holidays/:date",
		"GET /api/v1/admin/bank-holidays/next-working-day",
		"PUT /api/v1/admin/settings/payout-policy",
		"GET /health",
	}
	for _, key := range want {
		if _, ok := registered[key]; !ok {
			t.Fatalf("route %s not registered", key)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := setupRouterTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health body %s", w.Body.String())
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("health response should carry a request id")
	}
}

func TestNextWorkingDayRouteSkipsWeekend(t *testing.T) {
	r := setupRouterTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bank-holidays/next-working-day?date=2024-03-16", nil)
	r.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "2024-03-18") {
		t.Fatalf("saturday should roll to monday, got %s", w.Body.String())
	}
}
