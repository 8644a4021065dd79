package reconcile_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manasa.shop/internal/reconcile"
)

func entry(face, count int64) reconcile.DenominationEntry {
	return reconcile.DenominationEntry{Denomination: face, Count: reconcile.Count(count)}
}

func TestSubtotal(t *testing.T) {
	tests := []struct {
		name    string
		entries []reconcile.DenominationEntry
		want    int64
	}{
		{
			name:    "notes and coins",
			entries: []reconcile.DenominationEntry{entry(500, 2), entry(100, 1)},
			want:    1100,
		},
		{
			name:    "empty list",
			entries: nil,
			want:    0,
		},
		{
			name:    "negative counts contribute nothing",
			entries: []reconcile.DenominationEntry{entry(500, -3), entry(10, 4)},
			want:    40,
		},
		{
			name:    "zero counts",
			entries: reconcile.DefaultEntries(reconcile.NoteDenominations),
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reconcile.Subtotal(tt.entries)
			assert.True(t, got.Equal(reconcile.NewAmount(tt.want)), "got %s want %d", got, tt.want)
		})
	}
}

func TestSubtotalOrderInvariant(t *testing.T) {
	a := []reconcile.DenominationEntry{entry(500, 2), entry(100, 1), entry(5, 7)}
	b := []reconcile.DenominationEntry{entry(5, 7), entry(500, 2), entry(100, 1)}
	assert.True(t, reconcile.Subtotal(a).Equal(reconcile.Subtotal(b)))

	// Appending a zero-count entry of a new face value changes nothing.
	c := append(append([]reconcile.DenominationEntry{}, a...), entry(2000, 0))
	assert.True(t, reconcile.Subtotal(a).Equal(reconcile.Subtotal(c)))
}

func TestMergeWithDefaults(t *testing.T) {
	faces := []int64{500, 200, 100, 50, 20, 10}
	saved := []reconcile.DenominationEntry{entry(100, 3)}

	merged := reconcile.MergeWithDefaults(saved, faces)
	require.Len(t, merged, len(faces))
	want := []reconcile.DenominationEntry{
		entry(500, 0), entry(200, 0), entry(100, 3), entry(50, 0), entry(20, 0), entry(10, 0),
	}
	assert.Equal(t, want, merged)
}

func TestMergeWithDefaultsDropsUnknownFaces(t *testing.T) {
	faces := []int64{10, 5, 2, 1}
	saved := []reconcile.DenominationEntry{
		entry(2000, 9), // not a coin face value, dropped
		entry(5, 4),
		entry(1, 12),
	}
	merged := reconcile.MergeWithDefaults(saved, faces)
	want := []reconcile.DenominationEntry{entry(10, 0), entry(5, 4), entry(2, 0), entry(1, 12)}
	assert.Equal(t, want, merged)
}

func TestMergeWithDefaultsIdempotent(t *testing.T) {
	faces := reconcile.NoteDenominations
	saved := []reconcile.DenominationEntry{entry(50, 6), entry(500, 2)}
	once := reconcile.MergeWithDefaults(saved, faces)
	twice := reconcile.MergeWithDefaults(once, faces)
	assert.Equal(t, once, twice)
}

func TestCountDecodeCoercion(t *testing.T) {
	var got struct {
		Count reconcile.Count `json:"count"`
	}
	cases := map[string]int64{
		`{"count": 7}`:      7,
		`{"count": "12"}`:   12,
		`{"count": ""}`:     0,
		`{"count": null}`:   0,
		`{"count": "abc"}`:  0,
		`{"count": 3.0}`:    3,
	}
	for raw, want := range cases {
		require.NoError(t, json.Unmarshal([]byte(raw), &got), raw)
		assert.Equal(t, reconcile.Count(want), got.Count, raw)
	}
}
