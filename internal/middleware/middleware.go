package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"seller-report/internal/config"
	"seller-report/internal/errors"
	"seller-report/internal/observability"
)

type Middleware func(http.Handler) http.Handler

func Chain(middlewares ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			h = middlewares[i](h)
		}
		return h
	}
}

func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set("X-Request-ID", requestID)
			ctx := observability.WithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			reqLogger := observability.RequestLogger(r.Context(), logger)

			reqLogger.Info("request started",
				"method", r.Method,
				"url", r.URL.String(),
				"user_agent", r.UserAgent(),
				"remote_addr", r.RemoteAddr,
			)

			next.ServeHTTP(wrapped, r)

			reqLogger.Info("request completed",
				"method", r.Method,
				"url", r.URL.String(),
				"status", wrapped.statusCode,
				"duration", time.Since(start),
			)
		})
	}
}

func Tracing(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := observability.StartSpan(r.Context(), fmt.Sprintf("%s %s", r.Method, r.URL.Path))
			defer span.FinishAndLog(logger)

			span.SetTag("http.method", r.Method)
			span.SetTag("http.url", r.URL.String())
			span.SetTag("http.user_agent", r.UserAgent())
			if id := observability.GetRequestID(ctx); id != "" {
				span.SetTag("request_id", id)
			}

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r.WithContext(ctx))

			span.SetTag("http.status_code", strconv.Itoa(wrapped.statusCode))

			if wrapped.statusCode >= 400 {
				span.SetError(fmt.Errorf("HTTP %d", wrapped.statusCode))
			}
		})
	}
}

// CORS echoes allowed origins and answers preflight requests directly.
func CORS(cfg config.SecurityConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if origin := r.Header.Get("Origin"); slices.Contains(cfg.AllowedOrigins, "*") || slices.Contains(cfg.AllowedOrigins, origin) {
				h.Set("Access-Control-Allow-Origin", origin)
			}
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			h.Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline' 'unsafe-eval' https://cdn.jsdelivr.net; style-src 'self' 'unsafe-inline'; connect-src 'self'"},
}

func SecurityHeaders() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, kv := range securityHeaders {
				w.Header().Set(kv[0], kv[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}

const limiterIdleTTL = time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP. Buckets idle for
// longer than limiterIdleTTL are dropped on the next sweep.
type RateLimiter struct {
	clients   map[string]*clientLimiter
	config    config.SecurityConfig
	lastSweep time.Time
	now       func() time.Time
	mu        sync.Mutex
}

func NewRateLimiter(config config.SecurityConfig) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		config:  config,
		now:     time.Now,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= limiterIdleTTL {
		for key, c := range rl.clients {
			if now.Sub(c.lastSeen) >= limiterIdleTTL {
				delete(rl.clients, key)
			}
		}
		rl.lastSweep = now
	}

	c, ok := rl.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(rl.config.RateLimitRPS), rl.config.RateLimitBurst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter
}

// Tracked returns how many client buckets are currently held.
func (rl *RateLimiter) Tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) Allow(ip string) bool {
	if !rl.config.EnableRateLimit {
		return true
	}

	limiter := rl.getLimiter(ip)
	return limiter.Allow()
}

func RateLimit(limiter *RateLimiter, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)

			if !limiter.Allow(ip) {
				logger.Warn("rate limit exceeded", "ip", ip)
				errors.WriteError(w, logger, errors.RateLimit("too many requests"), observability.GetRequestID(r.Context()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

var forwardedHeaders = []string{"X-Forwarded-For", "X-Real-IP", "X-Forwarded-Proto"}

// TrustedProxy strips forwarding headers unless the peer is a trusted proxy.
func TrustedProxy(cfg config.SecurityConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if host, _, _ := net.SplitHostPort(r.RemoteAddr); !slices.Contains(cfg.TrustedProxies, host) {
				for _, h := range forwardedHeaders {
					r.Header.Del(h)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				requestID := observability.GetRequestID(r.Context())
				logger.Error("panic recovered",
					"panic", rec,
					"request_id", requestID,
					"method", r.Method,
					"url", r.URL.String(),
				)
				errors.WriteError(w, logger, fmt.Errorf("panic: %v", rec), requestID)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

// Flush implements http.Flusher if the underlying ResponseWriter does
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}
