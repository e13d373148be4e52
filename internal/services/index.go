package services

import (
	"github.com/shopspring/decimal"

	"seller-report/internal/models"
)

// SellerStats accumulates one seller's figures while purchase records are
// consumed. It is only mutated by the aggregation step.
type SellerStats struct {
	ID         string
	Name       string
	Revenue    decimal.Decimal
	Profit     decimal.Decimal
	SalesCount int

	shard   int
	sold    []models.ProductQuantity
	soldPos map[string]int
}

func newSellerStats(s models.Seller, shard int) *SellerStats {
	return &SellerStats{
		ID:      s.ID,
		Name:    s.FirstName + " " + s.LastName,
		Revenue: decimal.Zero,
		Profit:  decimal.Zero,
		shard:   shard,
		soldPos: make(map[string]int),
	}
}

func (s *SellerStats) addSold(sku string, quantity int) {
	pos, ok := s.soldPos[sku]
	if !ok {
		pos = len(s.sold)
		s.soldPos[sku] = pos
		s.sold = append(s.sold, models.ProductQuantity{SKU: sku})
	}
	s.sold[pos].Quantity += quantity
}

// QuantitySold returns the cumulative quantity of sku sold by the seller.
func (s SellerStats) QuantitySold(sku string) int {
	if pos, ok := s.soldPos[sku]; ok {
		return s.sold[pos].Quantity
	}
	return 0
}

// ProductsSold returns a copy of the per-sku tallies in discovery order.
func (s SellerStats) ProductsSold() []models.ProductQuantity {
	out := make([]models.ProductQuantity, len(s.sold))
	copy(out, s.sold)
	return out
}

// Index holds the lookup tables the aggregation joins against.
type Index struct {
	sellers  map[string]*SellerStats
	products map[string]models.Product
	order    []*SellerStats
}

// NewIndex builds seller and product lookups. Every seller gets a
// zero-initialised accumulator; seller ids must be unique.
func NewIndex(sellers []models.Seller, products []models.Product) (*Index, error) {
	if len(sellers) == 0 {
		return nil, invalidInput("sellers", "must be a non-empty list")
	}
	if len(products) == 0 {
		return nil, invalidInput("products", "must be a non-empty list")
	}

	idx := &Index{
		sellers:  make(map[string]*SellerStats, len(sellers)),
		products: make(map[string]models.Product, len(products)),
		order:    make([]*SellerStats, 0, len(sellers)),
	}

	for i, s := range sellers {
		if _, dup := idx.sellers[s.ID]; dup {
			return nil, invalidInput("sellers", "duplicate seller id "+s.ID)
		}
		stats := newSellerStats(s, i)
		idx.sellers[s.ID] = stats
		idx.order = append(idx.order, stats)
	}

	for _, p := range products {
		idx.products[p.SKU] = p
	}

	return idx, nil
}

// Seller returns the accumulator for id, or false when id was not indexed.
func (idx *Index) Seller(id string) (*SellerStats, bool) {
	s, ok := idx.sellers[id]
	return s, ok
}

// Stats returns the accumulators in seller input order.
func (idx *Index) Stats() []*SellerStats {
	out := make([]*SellerStats, len(idx.order))
	copy(out, idx.order)
	return out
}
