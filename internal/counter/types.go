package counter

import (
	"errors"
	"time"

	"manasa.shop/internal/reconcile"
)

var (
	ErrNotFound     = errors.New("counter: record not found")
	ErrInvalidInput = errors.New("counter: invalid input")
)

// DateLayout is the calendar-date key for all daily records.
const DateLayout = "2006-01-02"

// InitialCash is the opening balance carried into a date's reconciliation.
type InitialCash struct {
	ID        string           `json:"id"`
	Date      string           `json:"date"`
	Amount    reconcile.Amount `json:"amount"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// RemainingCash is the full end-of-day reconciliation record for one date.
// The embedded fixed sources flatten onto the wire (card, paytm, additional,
// otherPayments). Totals are recomputed on every save and stored with the
// record, so a fetch reproduces exactly what was shown at save time.
type RemainingCash struct {
	ID        string                        `json:"id"`
	Date      string                        `json:"date"`
	Notes     []reconcile.DenominationEntry `json:"notes"`
	Coins     []reconcile.DenominationEntry `json:"coins"`
	Companies []reconcile.PaymentSource     `json:"companies"`
	reconcile.FixedSources
	OpeningBalance        reconcile.Amount `json:"openingBalance"`
	PossibleOfflineAmount reconcile.Amount `json:"possibleOfflineAmount"`
	PossibleOnlineAmount  reconcile.Amount `json:"possibleOnlineAmount"`
	Remarks               string           `json:"remarks"`
	Totals                reconcile.Totals `json:"totals"`
	CreatedAt             time.Time        `json:"createdAt"`
	UpdatedAt             time.Time        `json:"updatedAt"`
}

// MonthlySummary aggregates a calendar month of remaining-cash records. Each
// record contributes gain = finalRemainingTotal - possibleOfflineAmount;
// positive gains sum into TotalProfit, negative ones (as absolute values) into
// TotalLoss.
type MonthlySummary struct {
	Month        int              `json:"month"`
	Year         int              `json:"year"`
	TotalProfit  reconcile.Amount `json:"totalProfit"`
	TotalLoss    reconcile.Amount `json:"totalLoss"`
	NetTotal     reconcile.Amount `json:"netTotal"`
	EntriesCount int              `json:"entriesCount"`
}

// RangeSummary sums the main takings channels across records in [From, To].
type RangeSummary struct {
	From                string           `json:"from"`
	To                  string           `json:"to"`
	CashTotal           reconcile.Amount `json:"cashTotal"`
	CardTotal           reconcile.Amount `json:"cardTotal"`
	PaytmTotal          reconcile.Amount `json:"paytmTotal"`
	PossibleOnlineTotal reconcile.Amount `json:"possibleOnlineTotal"`
	GrandTotal          reconcile.Amount `json:"grandTotal"`
	EntriesCount        int              `json:"entriesCount"`
}
