package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"seller-report/internal/config"
	"seller-report/internal/observability"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(mark("first"), mark("second"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"first", "second", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
		}
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = observability.GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("generated request id %q is not a uuid: %v", seen, err)
	}
	if w.Header().Get("X-Request-ID") != seen {
		t.Error("response header should echo the request id")
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "upstream-id")
	h.ServeHTTP(httptest.NewRecorder(), r)
	if seen != "upstream-id" {
		t.Errorf("request id = %q, want upstream-id", seen)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := config.SecurityConfig{EnableRateLimit: true, RateLimitRPS: 1, RateLimitBurst: 2}
	h := RateLimit(NewRateLimiter(cfg), quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(config.SecurityConfig{EnableRateLimit: false, RateLimitRPS: 1, RateLimitBurst: 1})
	for range 5 {
		if !rl.Allow("10.0.0.1") {
			t.Fatal("disabled limiter should allow every request")
		}
	}
	if rl.Tracked() != 0 {
		t.Error("disabled limiter should not track clients")
	}
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(config.SecurityConfig{EnableRateLimit: true, RateLimitRPS: 10, RateLimitBurst: 10})
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")
	if rl.Tracked() != 2 {
		t.Fatalf("Tracked() = %d, want 2", rl.Tracked())
	}

	now = now.Add(2 * limiterIdleTTL)
	rl.Allow("10.0.0.3")
	if rl.Tracked() != 1 {
		t.Errorf("Tracked() = %d, want 1 after idle clients expire", rl.Tracked())
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"code":"INTERNAL_ERROR"`) {
		t.Errorf("panic should be reported as an internal error envelope, got %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Error("panic value must not leak to the client")
	}
}

func TestCORS(t *testing.T) {
	cfg := config.SecurityConfig{AllowedOrigins: []string{"http://localhost:8080"}}
	h := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	r := httptest.NewRequest(http.MethodOptions, "/api/reports", nil)
	r.Header.Set("Origin", "http://localhost:8080")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:8080" {
		t.Error("allowed origin should be echoed")
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin should not be allowed")
	}
}

func TestTrustedProxy(t *testing.T) {
	var forwarded string
	h := TrustedProxy(config.SecurityConfig{TrustedProxies: []string{"127.0.0.1"}})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded = r.Header.Get("X-Forwarded-For")
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.168.1.5:5555"
	r.Header.Set("X-Forwarded-For", "1.2.3.4")
	h.ServeHTTP(httptest.NewRecorder(), r)
	if forwarded != "" {
		t.Error("forwarded headers from untrusted peers should be dropped")
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "127.0.0.1:5555"
	r.Header.Set("X-Forwarded-For", "1.2.3.4")
	h.ServeHTTP(httptest.NewRecorder(), r)
	if forwarded != "1.2.3.4" {
		t.Error("forwarded headers from trusted proxies should be kept")
	}
}

func TestCORS_Wildcard(t *testing.T) {
	h := CORS(config.SecurityConfig{AllowedOrigins: []string{"*"}})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	r.Header.Set("Origin", "http://dashboard.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://dashboard.example" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the request origin", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	for _, kv := range securityHeaders {
		if got := w.Header().Get(kv[0]); got != kv[1] {
			t.Errorf("%s = %q, want %q", kv[0], got, kv[1])
		}
	}
}
