package services

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"seller-report/internal/models"
)

// AggregateSummary counts what happened to the purchase records. Skips are
// expected data-quality conditions, not failures.
type AggregateSummary struct {
	Records        int `json:"records"`
	MatchedRecords int `json:"matched_records"`
	SkippedRecords int `json:"skipped_records"`
	SkippedItems   int `json:"skipped_items"`
}

func (s *AggregateSummary) merge(other AggregateSummary) {
	s.MatchedRecords += other.MatchedRecords
	s.SkippedRecords += other.SkippedRecords
	s.SkippedItems += other.SkippedItems
}

func validateAggregateInput(records []models.PurchaseRecord, revenue RevenueFunc) error {
	if len(records) == 0 {
		return invalidInput("purchase_records", "must be a non-empty list")
	}
	if revenue == nil {
		return invalidInput("calculate_revenue", "must be a function")
	}
	return nil
}

// Aggregate consumes purchase records in order and accumulates revenue, profit,
// receipt counts and per-sku quantities into the indexed sellers. Records for
// unknown sellers and items for unknown skus are skipped; a receipt counts
// toward sales even when none of its items match a product.
func (idx *Index) Aggregate(records []models.PurchaseRecord, revenue RevenueFunc) (AggregateSummary, error) {
	if err := validateAggregateInput(records, revenue); err != nil {
		return AggregateSummary{}, err
	}

	summary := AggregateSummary{Records: len(records)}
	for i := range records {
		idx.apply(&records[i], revenue, &summary)
	}
	return summary, nil
}

// AggregateParallel gives the same result as Aggregate but spreads sellers over
// at most workers goroutines. Each seller belongs to exactly one shard and its
// records are applied in input order, so accumulators are never shared.
// On error the index is left partially aggregated and must be discarded.
func (idx *Index) AggregateParallel(ctx context.Context, records []models.PurchaseRecord, revenue RevenueFunc, workers int) (AggregateSummary, error) {
	if err := validateAggregateInput(records, revenue); err != nil {
		return AggregateSummary{}, err
	}

	if workers > len(idx.order) {
		workers = len(idx.order)
	}
	if workers <= 1 {
		return idx.Aggregate(records, revenue)
	}

	summary := AggregateSummary{Records: len(records)}
	shards := make([][]int, workers)
	for i := range records {
		seller, ok := idx.sellers[records[i].SellerID]
		if !ok {
			summary.SkippedRecords++
			continue
		}
		w := seller.shard % workers
		shards[w] = append(shards[w], i)
	}

	partial := make([]AggregateSummary, workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for w, positions := range shards {
		g.Go(func() error {
			for _, i := range positions {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				idx.apply(&records[i], revenue, &partial[w])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return AggregateSummary{}, err
	}

	for _, p := range partial {
		summary.merge(p)
	}
	return summary, nil
}

func (idx *Index) apply(record *models.PurchaseRecord, revenue RevenueFunc, summary *AggregateSummary) {
	seller, ok := idx.sellers[record.SellerID]
	if !ok {
		summary.SkippedRecords++
		return
	}

	summary.MatchedRecords++
	seller.SalesCount++

	for _, item := range record.Items {
		product, ok := idx.products[item.SKU]
		if !ok {
			summary.SkippedItems++
			continue
		}

		itemRevenue := revenue(item, product)
		cost := product.PurchasePrice.Mul(decimal.NewFromInt(int64(item.Quantity)))

		seller.Revenue = seller.Revenue.Add(itemRevenue)
		seller.Profit = seller.Profit.Add(itemRevenue.Sub(cost))
		seller.addSold(item.SKU, item.Quantity)
	}
}
