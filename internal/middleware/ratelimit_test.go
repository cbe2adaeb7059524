package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/caseflow/caseflow/pkg/response"
)

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	router := protectedRouter(RateLimit(1, 3))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("request %d: expected status %d, got %d", i, http.StatusOK, w.Code)
		}
	}
}

func TestRateLimiter_BlocksOverBurst(t *testing.T) {
	router := protectedRouter(RateLimit(1, 2))

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		router.ServeHTTP(last, req)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Errorf("third request: expected status %d, got %d", http.StatusTooManyRequests, last.Code)
	}

	// The rejection uses the standard response envelope.
	var body response.Response
	if err := json.Unmarshal(last.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal 429 body: %v", err)
	}
	if body.Code != 429 || body.Message == "" {
		t.Errorf("429 envelope = %+v, want code 429 with message", body)
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	router := protectedRouter(RateLimit(1, 1))

	first := httptest.NewRecorder()
	req1, _ := http.NewRequest("GET", "/protected", nil)
	req1.RemoteAddr = "10.0.0.3:1234"
	router.ServeHTTP(first, req1)

	second := httptest.NewRecorder()
	req2, _ := http.NewRequest("GET", "/protected", nil)
	req2.RemoteAddr = "10.0.0.4:1234"
	router.ServeHTTP(second, req2)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Errorf("distinct IPs must not share a bucket: got %d and %d", first.Code, second.Code)
	}
}
