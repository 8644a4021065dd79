package reconcile

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a rupee amount as it travels over the wire. Operator-entered
// fields arrive as JSON numbers, quoted numbers, empty strings, or null;
// anything non-numeric coerces to zero instead of failing the request. A
// literal zero and "not a number" are therefore indistinguishable, which is
// accepted for this domain.
type Amount struct {
	d decimal.Decimal
}

// NewAmount builds an Amount from an int64 rupee value.
func NewAmount(v int64) Amount {
	return Amount{d: decimal.NewFromInt(v)}
}

// AmountFromDecimal wraps an exact decimal value.
func AmountFromDecimal(d decimal.Decimal) Amount {
	return Amount{d: d}
}

// ParseAmount applies the coercion rule to a string: blank or non-numeric
// input yields zero.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return Amount{d: d}
}

func (a Amount) Decimal() decimal.Decimal { return a.d }

func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }
func (a Amount) Sub(b Amount) Amount { return Amount{d: a.d.Sub(b.d)} }

// Cmp returns -1, 0, or 1 comparing a to b.
func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }

func (a Amount) IsZero() bool     { return a.d.IsZero() }
func (a Amount) IsNegative() bool { return a.d.IsNegative() }

// Equal reports exact numeric equality.
func (a Amount) Equal(b Amount) bool { return a.d.Equal(b.d) }

func (a Amount) String() string { return a.d.String() }

// Float64 is for aggregation display only; persisted values stay decimal.
func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

var jsonNull = []byte("null")

// MarshalJSON renders the amount as a bare JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.String()), nil
}

// UnmarshalJSON implements the coercion rule: numbers and quoted numbers
// parse normally; null, empty strings, and malformed input become zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		a.d = decimal.Decimal{}
		return nil
	}
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			a.d = decimal.Decimal{}
			return nil
		}
		*a = ParseAmount(unquoted)
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		a.d = decimal.Decimal{}
		return nil
	}
	a.d = d
	return nil
}

// Value implements driver.Valuer; amounts are stored as numeric text.
func (a Amount) Value() (driver.Value, error) {
	return a.d.String(), nil
}

// Scan implements sql.Scanner for numeric columns.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		a.d = decimal.Decimal{}
		return nil
	case []byte:
		*a = ParseAmount(string(v))
		return nil
	case string:
		*a = ParseAmount(v)
		return nil
	case int64:
		a.d = decimal.NewFromInt(v)
		return nil
	case float64:
		a.d = decimal.NewFromFloat(v)
		return nil
	default:
		return fmt.Errorf("reconcile: cannot scan %T into Amount", src)
	}
}
