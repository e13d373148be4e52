package services

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"seller-report/internal/models"
)

type generatedReport struct {
	Rows        []models.ReportRow
	Summary     AggregateSummary
	GeneratedAt time.Time
}

// SalesReport keeps the most recently generated report for concurrent readers.
type SalesReport struct {
	mu          sync.RWMutex
	current     *generatedReport
	opts        Options
	generations atomic.Int64
	logger      *slog.Logger
}

func NewSalesReport(opts Options, logger *slog.Logger) *SalesReport {
	if logger == nil {
		logger = slog.Default()
	}
	return &SalesReport{
		opts:   opts,
		logger: logger,
	}
}

// Generate runs the pipeline over data and replaces the stored report. The
// stored report is left untouched when generation fails.
func (s *SalesReport) Generate(ctx context.Context, data models.Dataset) (*Report, error) {
	start := time.Now()

	report, err := Analyze(ctx, data, s.opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = &generatedReport{
		Rows:        report.Rows,
		Summary:     report.Summary,
		GeneratedAt: time.Now(),
	}
	s.mu.Unlock()
	s.generations.Add(1)

	s.logger.Info("sales report generated",
		"sellers", len(report.Rows),
		"records", report.Summary.Records,
		"duration", time.Since(start),
	)
	if report.Summary.SkippedRecords > 0 || report.Summary.SkippedItems > 0 {
		s.logger.Warn("purchase data references unknown sellers or products",
			"skipped_records", report.Summary.SkippedRecords,
			"skipped_items", report.Summary.SkippedItems,
		)
	}

	return report, nil
}

// Ready reports whether a report has been generated yet.
func (s *SalesReport) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Rows returns the ranked rows of the current report, or nil before the
// first successful Generate. The slice is shared and must not be modified.
func (s *SalesReport) Rows() []models.ReportRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	return s.current.Rows
}

// TopSellers returns the first limit ranked rows; a non-positive limit
// returns them all.
func (s *SalesReport) TopSellers(limit int) []models.ReportRow {
	rows := s.Rows()
	if limit <= 0 || len(rows) <= limit {
		return rows
	}
	return rows[:limit]
}

// Seller returns the row for the seller with the given id.
func (s *SalesReport) Seller(id string) (models.ReportRow, bool) {
	for _, row := range s.Rows() {
		if row.SellerID == id {
			return row, true
		}
	}
	return models.ReportRow{}, false
}

// Stats returns generation counters and, once a report exists, its
// record and skip counts.
func (s *SalesReport) Stats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"generations": s.generations.Load(),
		"ready":       s.current != nil,
	}
	if s.current != nil {
		stats["sellers"] = len(s.current.Rows)
		stats["records"] = s.current.Summary.Records
		stats["matched_records"] = s.current.Summary.MatchedRecords
		stats["skipped_records"] = s.current.Summary.SkippedRecords
		stats["skipped_items"] = s.current.Summary.SkippedItems
		stats["generated_at"] = s.current.GeneratedAt
	}
	return stats
}
