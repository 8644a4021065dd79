package reconcile_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manasa.shop/internal/reconcile"
)

func TestAmountDecodeCoercion(t *testing.T) {
	var got struct {
		Amount reconcile.Amount `json:"amount"`
	}
	cases := map[string]string{
		`{"amount": 250}`:      "250",
		`{"amount": 99.5}`:     "99.5",
		`{"amount": "5"}`:      "5",
		`{"amount": ""}`:       "0",
		`{"amount": null}`:     "0",
		`{"amount": "paid"}`:   "0",
		`{"amount": "  42  "}`: "42",
	}
	for raw, want := range cases {
		require.NoError(t, json.Unmarshal([]byte(raw), &got), raw)
		assert.Equal(t, want, got.Amount.String(), raw)
	}
}

func TestAmountEncodeAsNumber(t *testing.T) {
	data, err := json.Marshal(map[string]any{"amount": reconcile.ParseAmount("150.25")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":150.25}`, string(data))
}

func TestAmountScan(t *testing.T) {
	var a reconcile.Amount
	require.NoError(t, a.Scan([]byte("1234.50")))
	assert.Equal(t, "1234.5", a.String())

	require.NoError(t, a.Scan(nil))
	assert.True(t, a.IsZero())

	require.NoError(t, a.Scan(int64(-20)))
	assert.True(t, a.IsNegative())

	assert.Error(t, a.Scan(struct{}{}))
}

func TestSourcesTotalCoercion(t *testing.T) {
	var payload struct {
		Companies []reconcile.PaymentSource `json:"companies"`
	}
	raw := `{"companies":[{"name":"a","amount":""},{"name":"b","amount":"5"},{"name":"c","amount":null}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	total := reconcile.SourcesTotal(payload.Companies)
	assert.True(t, total.Equal(reconcile.NewAmount(5)), "got %s", total)
}

func TestAppendRemoveSource(t *testing.T) {
	list := []reconcile.PaymentSource{{Name: "alpha", Amount: reconcile.NewAmount(10)}}

	list = reconcile.AppendSource(list)
	require.Len(t, list, 2)
	assert.Equal(t, reconcile.PaymentSource{}, list[1])

	list = reconcile.RemoveSource(list, 0)
	require.Len(t, list, 1)
	assert.Equal(t, "", list[0].Name)

	// out-of-range removals are no-ops
	assert.Len(t, reconcile.RemoveSource(list, 5), 1)
	assert.Len(t, reconcile.RemoveSource(list, -1), 1)
}
