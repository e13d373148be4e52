package models

import "github.com/shopspring/decimal"

type Seller struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	StartDate string `json:"start_date,omitempty"`
	Position  string `json:"position,omitempty"`
}

type Product struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name,omitempty"`
	Category      string          `json:"category,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
}

// LineItem is one product line of a receipt. Discount is a percentage.
type LineItem struct {
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Discount  decimal.Decimal `json:"discount"`
}

type PurchaseRecord struct {
	ReceiptID     string          `json:"receipt_id,omitempty"`
	Date          string          `json:"date,omitempty"`
	SellerID      string          `json:"seller_id"`
	CustomerID    string          `json:"customer_id,omitempty"`
	Items         []LineItem      `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
}

type Dataset struct {
	Sellers         []Seller         `json:"sellers" validate:"required,min=1"`
	Products        []Product        `json:"products" validate:"required,min=1"`
	PurchaseRecords []PurchaseRecord `json:"purchase_records" validate:"required,min=1"`
}

type ProductQuantity struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type ReportRow struct {
	SellerID    string            `json:"seller_id"`
	Name        string            `json:"name"`
	Revenue     decimal.Decimal   `json:"revenue"`
	Profit      decimal.Decimal   `json:"profit"`
	SalesCount  int               `json:"sales_count"`
	TopProducts []ProductQuantity `json:"top_products"`
	Bonus       decimal.Decimal   `json:"bonus"`
}
