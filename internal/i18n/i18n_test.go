package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResolveLocaleFromHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Accept-Language", "fr-FR, zh-CN;q=0.8")

	if got := ResolveLocale(c); got != LocaleZhCN {
		t.Fatalf("want %s got %s", LocaleZhCN, got)
	}
}

func TestResolveLocaleQueryWins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	c.Request.Header.Set("Accept-Language", "zh-CN")

	if got := ResolveLocale(c); got != LocaleEnUS {
		t.Fatalf("want %s got %s", LocaleEnUS, got)
	}
}

func TestTFallback(t *testing.T) {
	if got := T("de-DE", "error.payout_not_found"); got != "Payout not found" {
		t.Fatalf("unexpected fallback message: %s", got)
	}
	if got := T(LocaleEnUS, "error.unknown_key"); got != "error.unknown_key" {
		t.Fatalf("unknown key should echo, got %s", got)
	}
	if got := Sprintf(LocaleEnUS, "error.payout_status_invalid", "pending"); got != "Payout is not in pending status" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}
