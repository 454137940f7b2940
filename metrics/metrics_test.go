package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCollector_RecordsAndExposes(t *testing.T) {
	c := NewCollector()
	c.RecordRequest(http.MethodGet, "/rentals", 200, 15*time.Millisecond)
	c.RecordRequest(http.MethodPost, "/rentals", 400, 2*time.Millisecond)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	c.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("metrics endpoint status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `boardcamp_http_requests_total{method="GET",route="/rentals",status="200"} 1`) {
		t.Fatalf("missing GET counter in:\n%s", body)
	}
	if !strings.Contains(body, `boardcamp_http_requests_total{method="POST",route="/rentals",status="400"} 1`) {
		t.Fatalf("missing POST counter in:\n%s", body)
	}
}
