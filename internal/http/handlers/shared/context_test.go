package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestContextOperatorID(t *testing.T) {
	c, _ := newTestContext("/")
	if id, ok := ContextOperatorID(c, "admin_id"); !ok || id != 0 {
		t.Fatalf("missing operator should be 0, got %d ok=%v", id, ok)
	}

	c.Set("admin_id", uint(9))
	if id, ok := ContextOperatorID(c, "admin_id"); !ok || id != 9 {
		t.Fatalf("want 9 got %d ok=%v", id, ok)
	}

	c.Set("admin_id", -1)
	if _, ok := ContextOperatorID(c, "admin_id"); ok {
		t.Fatalf("negative operator should be rejected")
	}

	bad, w := newTestContext("/")
	bad.Set("admin_id", "nine")
	if _, ok := ContextOperatorID(bad, "admin_id"); ok {
		t.Fatalf("string operator should be rejected")
	}
	if w.Code != http.StatusOK || len(w.Body.Bytes()) == 0 {
		t.Fatalf("rejection should write the json envelope")
	}
}

func TestParseQueryUint(t *testing.T) {
	cases := []struct {
		target string
		want   uint
		ok     bool
	}{
		{target: "/?vendor_id=", want: 0, ok: true},
		{target: "/?vendor_id=12", want: 12, ok: true},
		{target: "/?vendor_id=0", ok: false},
		{target: "/?vendor_id=abc", ok: false},
	}
	for _, tc := range cases {
		c, _ := newTestContext(tc.target)
		got, ok := ParseQueryUint(c, "vendor_id")
		if ok != tc.ok || got != tc.want {
			t.Fatalf("%s: want %d/%v got %d/%v", tc.target, tc.want, tc.ok, got, ok)
		}
	}
}
