package reconcile

// FixedSources are the single-value payment categories on a daily record.
// Paytm is the digital-wallet line; OtherPayments is recorded but does not
// enter the remaining-cash formula.
type FixedSources struct {
	Card          Amount `json:"card"`
	Paytm         Amount `json:"paytm"`
	Additional    Amount `json:"additional"`
	OtherPayments Amount `json:"otherPayments"`
}

// Inputs is everything the calculator needs for one day's reconciliation.
type Inputs struct {
	Notes                 []DenominationEntry
	Coins                 []DenominationEntry
	Companies             []PaymentSource
	Fixed                 FixedSources
	OpeningBalance        Amount
	PossibleOfflineAmount Amount
	PossibleOnlineAmount  Amount
}

// Outcome classifies the day against the operator's expected offline sales.
type Outcome string

const (
	OutcomeProfit  Outcome = "profit"
	OutcomeLoss    Outcome = "loss"
	OutcomeNeutral Outcome = "neutral"
)

// Totals are the derived ledger values for one day. They are recomputed from
// Inputs on every save and stored alongside the record so a later fetch
// reproduces exactly what was shown at save time.
type Totals struct {
	CashTotal           Amount  `json:"cashTotal"`
	CompanyPaidTotal    Amount  `json:"companyPaidTotal"`
	CombinedCashTotal   Amount  `json:"combinedCashTotal"`
	FinalRemainingTotal Amount  `json:"finalRemainingTotal"`
	OverallSalesTotal   Amount  `json:"overallSalesTotal"`
	Difference          Amount  `json:"difference"`
	Outcome             Outcome `json:"outcome"`
}

// Compute derives the day's totals. Pure arithmetic over coerced values;
// it cannot fail.
func Compute(in Inputs) Totals {
	cash := Subtotal(in.Notes).Add(Subtotal(in.Coins))
	companyPaid := SourcesTotal(in.Companies)

	// Company-paid amounts are ADDED into the remaining total even though
	// they are cash already handed to distributors. Business-rule-dependent:
	// the shop reconciles them as accounted-for takings. Do not "fix"
	// without product confirmation; pinned by TestCompanyPaidAddsIntoRemaining.
	remaining := cash.
		Add(companyPaid).
		Add(in.Fixed.Paytm).
		Add(in.Fixed.Card).
		Add(in.Fixed.Additional).
		Sub(in.OpeningBalance)

	return Totals{
		CashTotal:           cash,
		CompanyPaidTotal:    companyPaid,
		CombinedCashTotal:   cash.Add(companyPaid),
		FinalRemainingTotal: remaining,
		OverallSalesTotal:   in.PossibleOfflineAmount.Add(in.PossibleOnlineAmount),
		Difference:          in.PossibleOfflineAmount.Sub(remaining),
		Outcome:             Classify(remaining, in.PossibleOfflineAmount),
	}
}

// Classify compares the reconciled remaining total against expected offline
// sales. Exactly equal is neutral, not profit.
func Classify(finalRemaining, possibleOffline Amount) Outcome {
	switch finalRemaining.Cmp(possibleOffline) {
	case -1:
		return OutcomeLoss
	case 1:
		return OutcomeProfit
	default:
		return OutcomeNeutral
	}
}
