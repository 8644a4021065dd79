package stock

import (
	"errors"
	"time"

	"manasa.shop/internal/reconcile"
)

var (
	ErrNotFound     = errors.New("stock: record not found")
	ErrInvalidInput = errors.New("stock: invalid input")
)

// Distributor is one supplier payment line on a daily stock entry.
type Distributor struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	TotalPaid reconcile.Amount `json:"totalPaid"`
}

// Entry is the stock purchase record for one date. TotalStockExpenses is
// recomputed on every mutation and stored with the record.
type Entry struct {
	ID                 string           `json:"id"`
	Date               string           `json:"date"`
	Distributors       []Distributor    `json:"distributors"`
	TotalStockExpenses reconcile.Amount `json:"totalStockExpenses"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// RemainingAmount settles a stock entry against operator-entered cash on
// hand: Remaining = AmountHave - the entry's stock expenses, and FinalTotal =
// Remaining + Paytm + Σ company advances.
type RemainingAmount struct {
	ID           string                    `json:"id"`
	StockEntryID string                    `json:"stockEntryId"`
	Date         string                    `json:"date"`
	AmountHave   reconcile.Amount          `json:"amountHave"`
	Paytm        reconcile.Amount          `json:"paytm"`
	Companies    []reconcile.PaymentSource `json:"companies"`
	Remaining    reconcile.Amount          `json:"remaining"`
	FinalTotal   reconcile.Amount          `json:"finalTotal"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
}

func (e *Entry) lines() []reconcile.DistributorLine {
	lines := make([]reconcile.DistributorLine, len(e.Distributors))
	for i, d := range e.Distributors {
		lines[i] = reconcile.DistributorLine{Name: d.Name, TotalPaid: d.TotalPaid}
	}
	return lines
}
