package services

import (
	"github.com/shopspring/decimal"

	"seller-report/internal/models"
)

// RevenueFunc computes the revenue of a single line item. It must be pure.
type RevenueFunc func(item models.LineItem, product models.Product) decimal.Decimal

// BonusFunc computes a seller's bonus from its 0-based rank among total sellers.
type BonusFunc func(index, total int, seller SellerStats) decimal.Decimal

var (
	hundred = decimal.NewFromInt(100)

	rateFirst = decimal.RequireFromString("0.15")
	rateTop3  = decimal.RequireFromString("0.10")
	rateOther = decimal.RequireFromString("0.05")
)

// SimpleRevenue is sale_price * quantity * (1 - discount/100).
func SimpleRevenue(item models.LineItem, _ models.Product) decimal.Decimal {
	coef := decimal.NewFromInt(1).Sub(item.Discount.Div(hundred))
	return item.SalePrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Mul(coef)
}

// BonusByProfit pays 15% of profit to the leader, 10% to ranks 1-2, nothing to
// the last seller and 5% to everyone else. Rules are checked in that order, so
// a lone seller is paid as the leader.
func BonusByProfit(index, total int, seller SellerStats) decimal.Decimal {
	switch {
	case index == 0:
		return seller.Profit.Mul(rateFirst)
	case index == 1 || index == 2:
		return seller.Profit.Mul(rateTop3)
	case index == total-1:
		return decimal.Zero
	default:
		return seller.Profit.Mul(rateOther)
	}
}
