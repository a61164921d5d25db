package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"stocks-api/src/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices and volumes are emitted as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// StockTick is one reported trading observation for one issuer on one date.
type StockTick struct {
	ID                   string          `json:"_id"`
	IssuerCode           string          `json:"issuer_code"`
	Date                 time.Time       `json:"date"`
	LastTransactionPrice decimal.Decimal `json:"last_transaction_price"`
	MaxPrice             decimal.Decimal `json:"max_price"`
	MinPrice             decimal.Decimal `json:"min_price"`
	AveragePrice         decimal.Decimal `json:"average_price"`
	PercentChange        string          `json:"percent_change"` // Verbatim upstream text, e.g. "0.25%"
	Quantity             decimal.Decimal `json:"quantity"`
	TradingVolumeDinars  decimal.Decimal `json:"trading_volume_dinars"`
	TotalVolumeDinars    decimal.Decimal `json:"total_volume_dinars"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// -----------------------------------------------------------------------------

// NewStockTick is the write-side shape of a StockTick. Pointers distinguish a
// missing field from a zero value.
type NewStockTick struct {
	IssuerCode           *string          `json:"issuer_code" validate:"required,notblank"`
	Date                 *time.Time       `json:"date" validate:"required"`
	LastTransactionPrice *decimal.Decimal `json:"last_transaction_price" validate:"required"`
	MaxPrice             *decimal.Decimal `json:"max_price" validate:"required"`
	MinPrice             *decimal.Decimal `json:"min_price" validate:"required"`
	AveragePrice         *decimal.Decimal `json:"average_price" validate:"required"`
	PercentChange        *string          `json:"percent_change" validate:"required,notblank"`
	Quantity             *decimal.Decimal `json:"quantity" validate:"required"`
	TradingVolumeDinars  *decimal.Decimal `json:"trading_volume_dinars" validate:"required"`
	TotalVolumeDinars    *decimal.Decimal `json:"total_volume_dinars" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// -----------------------------------------------------------------------------

// UnmarshalJSON decodes a write document. Absent or null fields stay nil and
// are reported by Validate. Fields present with the wrong JSON type come back
// as a *helpers.ValidationError naming them. The date accepts YYYY-MM-DD or
// RFC 3339, and numeric fields accept JSON numbers or numeric strings.
func (n *NewStockTick) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var bad []string
	field := func(name string) json.RawMessage {
		v, ok := raw[name]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return nil
		}
		return v
	}
	text := func(name string) *string {
		v := field(name)
		if v == nil {
			return nil
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			bad = append(bad, name)
			return nil
		}
		return &s
	}
	date := func(name string) *time.Time {
		v := field(name)
		if v == nil {
			return nil
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			bad = append(bad, name)
			return nil
		}
		t, err := parseTickDate(s)
		if err != nil {
			bad = append(bad, name)
			return nil
		}
		return &t
	}
	number := func(name string) *decimal.Decimal {
		v := field(name)
		if v == nil {
			return nil
		}
		var d decimal.Decimal
		if err := d.UnmarshalJSON(v); err != nil {
			bad = append(bad, name)
			return nil
		}
		return &d
	}

	decoded := NewStockTick{
		IssuerCode:           text("issuer_code"),
		Date:                 date("date"),
		LastTransactionPrice: number("last_transaction_price"),
		MaxPrice:             number("max_price"),
		MinPrice:             number("min_price"),
		AveragePrice:         number("average_price"),
		PercentChange:        text("percent_change"),
		Quantity:             number("quantity"),
		TradingVolumeDinars:  number("trading_volume_dinars"),
		TotalVolumeDinars:    number("total_volume_dinars"),
	}
	if len(bad) > 0 {
		return helpers.NewValidationError(bad)
	}
	*n = decoded
	return nil
}

// parseTickDate accepts a calendar date (2024-01-01) or an RFC 3339
// timestamp and returns it in UTC.
func parseTickDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// -----------------------------------------------------------------------------

// Validate checks that every field is present. The returned
// *helpers.ValidationError names all offending fields.
func (n NewStockTick) Validate() error {
	err := validate.Struct(n)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return helpers.NewValidationError(fields)
}

// -----------------------------------------------------------------------------

// StockTick materializes a validated NewStockTick. Call Validate first;
// missing fields panic here.
func (n NewStockTick) StockTick(id string, at time.Time) StockTick {
	return StockTick{
		ID:                   id,
		IssuerCode:           *n.IssuerCode,
		Date:                 n.Date.UTC(),
		LastTransactionPrice: *n.LastTransactionPrice,
		MaxPrice:             *n.MaxPrice,
		MinPrice:             *n.MinPrice,
		AveragePrice:         *n.AveragePrice,
		PercentChange:        *n.PercentChange,
		Quantity:             *n.Quantity,
		TradingVolumeDinars:  *n.TradingVolumeDinars,
		TotalVolumeDinars:    *n.TotalVolumeDinars,
		CreatedAt:            at,
		UpdatedAt:            at,
	}
}
