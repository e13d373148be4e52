package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"seller-report/internal/config"
	"seller-report/internal/services"
)

const testDataset = `{
  "sellers": [
    {"id": "seller_1", "first_name": "Alexey", "last_name": "Petrov"},
    {"id": "seller_2", "first_name": "Ivan", "last_name": "Sidorov"}
  ],
  "products": [
    {"sku": "SKU_001", "purchase_price": 10, "sale_price": 20},
    {"sku": "SKU_002", "purchase_price": 50, "sale_price": 80}
  ],
  "purchase_records": [
    {"seller_id": "seller_2", "total_amount": 800, "items": [{"sku": "SKU_002", "quantity": 10, "sale_price": 80, "discount": 0}]},
    {"seller_id": "seller_1", "total_amount": 100, "items": [{"sku": "SKU_001", "quantity": 5, "sale_price": 20, "discount": 50}]}
  ]
}`

func testConfig() *config.Config {
	return &config.Config{
		Report: config.ReportConfig{TopProducts: 10, Workers: 2, MaxBodyBytes: 1 << 20},
		Security: config.SecurityConfig{
			EnableRateLimit: true,
			RateLimitRPS:    100,
			RateLimitBurst:  100,
			AllowedOrigins:  []string{"http://localhost:8080"},
			TrustedProxies:  []string{"127.0.0.1"},
		},
	}
}

func newTestHandler() http.Handler {
	cfg := testConfig()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	report := services.NewSalesReport(reportOptions(cfg.Report), logger)
	return newHandler(cfg, report, logger)
}

func TestReportOptions(t *testing.T) {
	opts := reportOptions(config.ReportConfig{TopProducts: 5, Workers: 3})
	if opts.TopProducts != 5 || opts.Workers != 3 {
		t.Errorf("unexpected options %+v", opts)
	}
	if opts.CalculateRevenue == nil || opts.CalculateBonus == nil {
		t.Error("default strategies should be wired")
	}
}

// Integration test over the full middleware chain
func TestHandler_GenerateAndQuery(t *testing.T) {
	h := newTestHandler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(testDataset)))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/reports status = %d: %s", w.Code, w.Body.String())
	}
	if _, err := uuid.Parse(w.Header().Get("X-Request-ID")); err != nil {
		t.Errorf("response should carry a generated request id: %v", err)
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers should be applied")
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/report", nil))

	var resp struct {
		Data []struct {
			SellerID string `json:"seller_id"`
			Profit   string `json:"profit"`
			Bonus    string `json:"bonus"`
		} `json:"data"`
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || len(resp.Data) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Data[0].SellerID != "seller_2" || resp.Data[0].Profit != "300" || resp.Data[0].Bonus != "45" {
		t.Errorf("unexpected leader %+v", resp.Data[0])
	}
	if resp.Data[1].SellerID != "seller_1" || resp.Data[1].Profit != "0" || resp.Data[1].Bonus != "0" {
		t.Errorf("unexpected runner-up %+v", resp.Data[1])
	}
}

func TestHandler_Dashboard(t *testing.T) {
	h := newTestHandler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("content-type = %q, want text/html", ct)
	}
	if !strings.Contains(w.Body.String(), dashboardTitle) {
		t.Error("dashboard should render its title")
	}
}

func TestHandler_ReportNotReady(t *testing.T) {
	h := newTestHandler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/report", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}
