package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_DecodesNumericAndQuotedMoney(t *testing.T) {
	raw := `{
		"sellers": [{"id": "s1", "first_name": "Anna", "last_name": "K"}],
		"products": [{"sku": "P1", "purchase_price": 10.1, "sale_price": "20.20"}],
		"purchase_records": [{"seller_id": "s1", "total_amount": 0.3,
			"items": [{"sku": "P1", "quantity": 2, "sale_price": 20.2, "discount": 5}]}]
	}`

	var data Dataset
	require.NoError(t, json.Unmarshal([]byte(raw), &data))

	assert.Equal(t, "10.1", data.Products[0].PurchasePrice.String())
	assert.Equal(t, "20.2", data.Products[0].SalePrice.String())
	assert.Equal(t, "5", data.PurchaseRecords[0].Items[0].Discount.String())
	assert.Equal(t, 2, data.PurchaseRecords[0].Items[0].Quantity)
}

// Money leaves the service as exact decimal strings.
func TestReportRow_MoneyIsEmittedAsExactStrings(t *testing.T) {
	row := ReportRow{
		SellerID:    "s1",
		Revenue:     decimal.RequireFromString("0.1").Add(decimal.RequireFromString("0.2")),
		Profit:      decimal.RequireFromString("1234567890.12"),
		Bonus:       decimal.Zero,
		TopProducts: []ProductQuantity{},
	}

	out, err := json.Marshal(row)
	require.NoError(t, err)

	for _, want := range []string{`"revenue":"0.3"`, `"profit":"1234567890.12"`, `"bonus":"0"`, `"top_products":[]`} {
		assert.True(t, strings.Contains(string(out), want), "%s should contain %s", out, want)
	}
}
