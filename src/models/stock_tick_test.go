package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"stocks-api/src/helpers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func dec(s string) *decimal.Decimal {
	return ptr(decimal.RequireFromString(s))
}

func validNewStockTick() NewStockTick {
	return NewStockTick{
		IssuerCode:           ptr("ABCD"),
		Date:                 ptr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		LastTransactionPrice: dec("100.5"),
		MaxPrice:             dec("101"),
		MinPrice:             dec("99.5"),
		AveragePrice:         dec("100.2"),
		PercentChange:        ptr("0.25%"),
		Quantity:             dec("1000"),
		TradingVolumeDinars:  dec("100500"),
		TotalVolumeDinars:    dec("2000000"),
	}
}

func TestNewStockTickValidate(t *testing.T) {
	t.Run("complete record passes", func(t *testing.T) {
		require.NoError(t, validNewStockTick().Validate())
	})

	t.Run("zero values are present values", func(t *testing.T) {
		in := validNewStockTick()
		in.Quantity = dec("0")
		in.MinPrice = dec("0")
		require.NoError(t, in.Validate())
	})

	t.Run("missing fields are all named", func(t *testing.T) {
		in := validNewStockTick()
		in.IssuerCode = nil
		in.PercentChange = nil
		in.TotalVolumeDinars = nil

		err := in.Validate()
		require.Error(t, err)

		var verr *helpers.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"issuer_code", "percent_change", "total_volume_dinars"}, verr.Fields)
		assert.Contains(t, err.Error(), "issuer_code")
		assert.Contains(t, err.Error(), "total_volume_dinars")
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		in := validNewStockTick()
		in.IssuerCode = ptr("   ")

		var verr *helpers.ValidationError
		require.True(t, errors.As(in.Validate(), &verr))
		assert.Equal(t, []string{"issuer_code"}, verr.Fields)
	})

	t.Run("empty record names every field", func(t *testing.T) {
		var verr *helpers.ValidationError
		require.True(t, errors.As(NewStockTick{}.Validate(), &verr))
		assert.Len(t, verr.Fields, 10)
	})
}

func TestStockTickJSON(t *testing.T) {
	at := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	tick := validNewStockTick().StockTick("id-1", at)

	data, err := json.Marshal(tick)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "id-1", got["_id"])
	assert.Equal(t, "ABCD", got["issuer_code"])
	assert.Equal(t, "2024-01-01T00:00:00Z", got["date"])
	assert.Equal(t, 100.5, got["last_transaction_price"])
	assert.Equal(t, 101.0, got["max_price"])
	assert.Equal(t, "0.25%", got["percent_change"])
	assert.Equal(t, 2000000.0, got["total_volume_dinars"])
	assert.Equal(t, "2024-02-03T04:05:06Z", got["created_at"])
	assert.Equal(t, "2024-02-03T04:05:06Z", got["updated_at"])
	assert.Len(t, got, 13)
}

func TestNewStockTickUnmarshalJSON(t *testing.T) {
	const doc = `{
		"issuer_code": "ABCD",
		"date": "2024-01-01",
		"last_transaction_price": 100.5,
		"max_price": 101,
		"min_price": 99.5,
		"average_price": 100.2,
		"percent_change": "0.25%",
		"quantity": 1000,
		"trading_volume_dinars": 100500,
		"total_volume_dinars": 2000000
	}`

	t.Run("date-only document decodes and validates", func(t *testing.T) {
		var n NewStockTick
		require.NoError(t, json.Unmarshal([]byte(doc), &n))
		require.NoError(t, n.Validate())

		want := validNewStockTick()
		assert.Equal(t, "ABCD", *n.IssuerCode)
		assert.True(t, want.Date.Equal(*n.Date))
		assert.True(t, want.LastTransactionPrice.Equal(*n.LastTransactionPrice))
		assert.True(t, want.TotalVolumeDinars.Equal(*n.TotalVolumeDinars))
		assert.Equal(t, "0.25%", *n.PercentChange)
	})

	t.Run("rfc3339 date and numeric strings", func(t *testing.T) {
		var n NewStockTick
		require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-03-15T10:30:00+02:00","max_price":"101.25"}`), &n))
		assert.True(t, time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC).Equal(*n.Date))
		assert.Equal(t, time.UTC, n.Date.Location())
		assert.True(t, decimal.RequireFromString("101.25").Equal(*n.MaxPrice))
	})

	t.Run("absent and null fields are left for Validate", func(t *testing.T) {
		var n NewStockTick
		require.NoError(t, json.Unmarshal([]byte(`{"issuer_code":"ABCD","quantity":null}`), &n))
		assert.Nil(t, n.Quantity)

		var verr *helpers.ValidationError
		require.True(t, errors.As(n.Validate(), &verr))
		assert.Contains(t, verr.Fields, "quantity")
		assert.NotContains(t, verr.Fields, "issuer_code")
	})

	mistyped := []struct {
		name   string
		doc    string
		fields []string
	}{
		{"non-numeric price", `{"last_transaction_price":"abc"}`, []string{"last_transaction_price"}},
		{"numeric issuer code", `{"issuer_code":5}`, []string{"issuer_code"}},
		{"unparseable date", `{"date":"01/02/2024"}`, []string{"date"}},
		{"date as number", `{"date":20240101}`, []string{"date"}},
		{"several fields in field order", `{"total_volume_dinars":true,"issuer_code":[],"percent_change":1}`,
			[]string{"issuer_code", "percent_change", "total_volume_dinars"}},
	}
	for _, tt := range mistyped {
		t.Run(tt.name, func(t *testing.T) {
			var n NewStockTick
			err := json.Unmarshal([]byte(tt.doc), &n)

			var verr *helpers.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}

	t.Run("non-object document", func(t *testing.T) {
		var n NewStockTick
		err := json.Unmarshal([]byte(`[1,2,3]`), &n)
		require.Error(t, err)

		var verr *helpers.ValidationError
		assert.False(t, errors.As(err, &verr))
	})
}
