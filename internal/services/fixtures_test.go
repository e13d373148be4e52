package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"seller-report/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seller(id, first, last string) models.Seller {
	return models.Seller{ID: id, FirstName: first, LastName: last}
}

func product(sku, purchase, sale string) models.Product {
	return models.Product{SKU: sku, PurchasePrice: dec(purchase), SalePrice: dec(sale)}
}

func item(sku string, quantity int, salePrice, discount string) models.LineItem {
	return models.LineItem{SKU: sku, Quantity: quantity, SalePrice: dec(salePrice), Discount: dec(discount)}
}

func receipt(sellerID string, items ...models.LineItem) models.PurchaseRecord {
	return models.PurchaseRecord{SellerID: sellerID, Items: items}
}

// rowKeys flattens rows into comparable strings so equality does not depend on
// the internal representation of decimal values.
func rowKeys(rows []models.ReportRow) []string {
	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, fmt.Sprintf("%s|%s|%s|%s|%d|%v|%s",
			r.SellerID, r.Name, r.Revenue.StringFixed(2), r.Profit.StringFixed(2),
			r.SalesCount, r.TopProducts, r.Bonus.StringFixed(2)))
	}
	return keys
}

func sampleDataset() models.Dataset {
	return models.Dataset{
		Sellers: []models.Seller{
			seller("seller_1", "Alexey", "Petrov"),
			seller("seller_2", "Ivan", "Sidorov"),
			seller("seller_3", "Maria", "Ivanova"),
			seller("seller_4", "Olga", "Smirnova"),
			seller("seller_5", "Pavel", "Kuznetsov"),
		},
		Products: []models.Product{
			product("SKU_001", "10", "20"),
			product("SKU_002", "50", "80"),
			product("SKU_003", "5", "6"),
		},
		PurchaseRecords: []models.PurchaseRecord{
			receipt("seller_1", item("SKU_002", 10, "80", "0")),
			receipt("seller_2", item("SKU_001", 5, "20", "0"), item("SKU_003", 2, "6", "0")),
			receipt("seller_3", item("SKU_002", 4, "80", "10")),
			receipt("seller_4", item("SKU_003", 1, "6", "0")),
			receipt("seller_1", item("SKU_001", 3, "20", "5")),
			receipt("seller_2", item("SKU_UNKNOWN", 7, "99", "0")),
			receipt("seller_404", item("SKU_001", 100, "20", "0")),
		},
	}
}
