package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalizePagination(t *testing.T) {
	cases := []struct {
		pageNo, perPage   int
		wantPage, wantPer int
	}{
		{0, 0, 1, 10},
		{-3, 5, 1, 5},
		{4, 500, 4, 100},
		{2, 100, 2, 100},
	}
	for _, tc := range cases {
		page, per := NormalizePagination(tc.pageNo, tc.perPage, 10, 100)
		if page != tc.wantPage || per != tc.wantPer {
			t.Fatalf("NormalizePagination(%d,%d) = %d,%d want %d,%d", tc.pageNo, tc.perPage, page, per, tc.wantPage, tc.wantPer)
		}
	}
}

func TestParseHelpers(t *testing.T) {
	if got := ParseIntOr("", 7); got != 7 {
		t.Fatalf("empty want fallback, got %d", got)
	}
	if got := ParseIntOr("12", 7); got != 12 {
		t.Fatalf("want 12, got %d", got)
	}
	if got := ParseIntOr("99999999999999999999999", 7); got != 7 {
		t.Fatalf("overflow want fallback, got %d", got)
	}
	if got := ParseID("42"); got != 42 {
		t.Fatalf("want 42, got %d", got)
	}
	if got := ParseID("99999999999999999999999"); got != 0 {
		t.Fatalf("overflow want 0, got %d", got)
	}
}

func TestRespondErrorWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("request_id", "req-9")

	RespondError(c, http.StatusInternalServerError, "Internal server error", errors.New("db down"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500 got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body["msg"] != "Internal server error" || body["success"] != false || body["requestId"] != "req-9" {
		t.Fatalf("unexpected body: %v", body)
	}
}
