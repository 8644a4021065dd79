package reconcile

// DistributorLine is one supplier payment on a daily stock entry.
type DistributorLine struct {
	Name      string `json:"name"`
	TotalPaid Amount `json:"totalPaid"`
}

// StockExpenseTotal sums the day's distributor payments.
func StockExpenseTotal(lines []DistributorLine) Amount {
	total := Amount{}
	for _, l := range lines {
		total = total.Add(l.TotalPaid)
	}
	return total
}

// RemainingAfterStock derives the cash left after stock purchases:
// operator-entered cash on hand minus the day's stock expenses.
func RemainingAfterStock(amountHave Amount, lines []DistributorLine) Amount {
	return amountHave.Sub(StockExpenseTotal(lines))
}

// StockFinalTotal is the settlement figure shown after a remaining-amount
// save: remaining cash plus the digital wallet balance plus named company
// advances.
func StockFinalTotal(remaining, paytm Amount, companies []PaymentSource) Amount {
	return remaining.Add(paytm).Add(SourcesTotal(companies))
}
