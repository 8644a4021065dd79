package reconcile

import (
	"bytes"
	"strconv"
	"strings"
)

// Canonical face-value sets for Indian currency as counted at the till.
// The form rows are generated from these, in this order.
var (
	NoteDenominations = []int64{500, 200, 100, 50, 20, 10}
	CoinDenominations = []int64{10, 5, 2, 1}
)

// Count is a denomination count as entered by the operator. Like Amount it
// coerces blank or malformed input to zero on decode.
type Count int64

// UnmarshalJSON accepts numbers, quoted numbers, empty strings, and null;
// anything else becomes zero.
func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		*c = 0
		return nil
	}
	s := string(data)
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			*c = 0
			return nil
		}
		s = unquoted
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*c = Count(n)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*c = Count(int64(f))
		return nil
	}
	*c = 0
	return nil
}

// DenominationEntry is one (face value, count) row of the till count.
type DenominationEntry struct {
	Denomination int64 `json:"denomination"`
	Count        Count `json:"count"`
}

// DefaultEntries returns a zero-count row per canonical face value.
func DefaultEntries(faces []int64) []DenominationEntry {
	entries := make([]DenominationEntry, len(faces))
	for i, f := range faces {
		entries[i] = DenominationEntry{Denomination: f}
	}
	return entries
}

// Subtotal computes Σ(face value × count). Negative counts contribute
// nothing; the total is never negative.
func Subtotal(entries []DenominationEntry) Amount {
	total := Amount{}
	for _, e := range entries {
		count := int64(e.Count)
		if count < 0 {
			count = 0
		}
		total = total.Add(NewAmount(e.Denomination * count))
	}
	return total
}

// MergeWithDefaults projects a persisted entry list onto the canonical face
// value set: the result has exactly one row per canonical face value, in
// canonical order, taking the saved count where a face value matches and zero
// otherwise. Unknown face values in the saved list are dropped. This keeps
// row order stable no matter how partial or reordered the stored record is.
func MergeWithDefaults(saved []DenominationEntry, faces []int64) []DenominationEntry {
	counts := make(map[int64]Count, len(saved))
	for _, e := range saved {
		counts[e.Denomination] = e.Count
	}
	merged := make([]DenominationEntry, len(faces))
	for i, f := range faces {
		merged[i] = DenominationEntry{Denomination: f, Count: counts[f]}
	}
	return merged
}
