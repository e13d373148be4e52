package services

import (
	"cmp"
	"slices"

	"seller-report/internal/models"
)

const (
	// DefaultTopProducts is how many products a report row lists per seller.
	DefaultTopProducts = 10

	moneyPlaces = 2
)

// Rank orders sellers by profit, highest first, and turns each into a report
// row. Sellers with equal profit keep their relative order. Money is rounded
// to cents half away from zero only here.
func Rank(stats []*SellerStats, bonus BonusFunc, topN int) ([]models.ReportRow, error) {
	if bonus == nil {
		return nil, invalidInput("calculate_bonus", "must be a function")
	}
	if topN <= 0 {
		topN = DefaultTopProducts
	}

	ranked := slices.Clone(stats)
	slices.SortStableFunc(ranked, func(a, b *SellerStats) int {
		return b.Profit.Cmp(a.Profit)
	})

	total := len(ranked)
	rows := make([]models.ReportRow, 0, total)
	for i, s := range ranked {
		b := bonus(i, total, *s)
		rows = append(rows, models.ReportRow{
			SellerID:    s.ID,
			Name:        s.Name,
			Revenue:     s.Revenue.Round(moneyPlaces),
			Profit:      s.Profit.Round(moneyPlaces),
			SalesCount:  s.SalesCount,
			TopProducts: topProducts(s.sold, topN),
			Bonus:       b.Round(moneyPlaces),
		})
	}
	return rows, nil
}

func topProducts(sold []models.ProductQuantity, limit int) []models.ProductQuantity {
	result := slices.Clone(sold)
	if result == nil {
		result = []models.ProductQuantity{}
	}
	slices.SortStableFunc(result, func(a, b models.ProductQuantity) int {
		return cmp.Compare(b.Quantity, a.Quantity)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}
