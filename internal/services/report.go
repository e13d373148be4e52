package services

import (
	"context"
	"errors"
	"fmt"

	"seller-report/internal/models"
)

// ErrInvalidInput matches every *InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError aborts report generation before any accumulation.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(field, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: reason}
}

// Options wires the calculation strategies into the pipeline.
type Options struct {
	CalculateRevenue RevenueFunc
	CalculateBonus   BonusFunc
	// TopProducts caps each row's product list; zero means DefaultTopProducts.
	TopProducts int
	// Workers above one shards aggregation by seller.
	Workers int
}

// DefaultOptions uses SimpleRevenue and BonusByProfit.
func DefaultOptions() Options {
	return Options{
		CalculateRevenue: SimpleRevenue,
		CalculateBonus:   BonusByProfit,
		TopProducts:      DefaultTopProducts,
		Workers:          1,
	}
}

// Report is the outcome of one pipeline run.
type Report struct {
	Rows    []models.ReportRow
	Summary AggregateSummary
}

// Analyze runs index, aggregate and rank over data. All input is validated up
// front so an invalid dataset or strategy never produces partial results.
func Analyze(ctx context.Context, data models.Dataset, opts Options) (*Report, error) {
	if err := validate(data, opts); err != nil {
		return nil, err
	}

	idx, err := NewIndex(data.Sellers, data.Products)
	if err != nil {
		return nil, err
	}

	summary, err := idx.AggregateParallel(ctx, data.PurchaseRecords, opts.CalculateRevenue, opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("aggregate purchase records: %w", err)
	}

	rows, err := Rank(idx.Stats(), opts.CalculateBonus, opts.TopProducts)
	if err != nil {
		return nil, err
	}

	return &Report{Rows: rows, Summary: summary}, nil
}

func validate(data models.Dataset, opts Options) error {
	switch {
	case len(data.Sellers) == 0:
		return invalidInput("sellers", "must be a non-empty list")
	case len(data.Products) == 0:
		return invalidInput("products", "must be a non-empty list")
	case len(data.PurchaseRecords) == 0:
		return invalidInput("purchase_records", "must be a non-empty list")
	case opts.CalculateRevenue == nil:
		return invalidInput("calculate_revenue", "must be a function")
	case opts.CalculateBonus == nil:
		return invalidInput("calculate_bonus", "must be a function")
	}
	return nil
}
