package reconcile

// PaymentSource is one named external payment line: a company that settled
// part of the day's takings, a distributor advance, and so on. Name may be
// blank before the operator fills the row in.
type PaymentSource struct {
	Name   string `json:"name"`
	Amount Amount `json:"amount"`
}

// SourcesTotal sums the coerced amounts of all entries.
func SourcesTotal(sources []PaymentSource) Amount {
	total := Amount{}
	for _, s := range sources {
		total = total.Add(s.Amount)
	}
	return total
}

// AppendSource adds a blank row to the end of the list. Names are not
// required to be unique.
func AppendSource(sources []PaymentSource) []PaymentSource {
	return append(sources, PaymentSource{})
}

// RemoveSource deletes the row at index i. Out-of-range indexes leave the
// list unchanged.
func RemoveSource(sources []PaymentSource, i int) []PaymentSource {
	if i < 0 || i >= len(sources) {
		return sources
	}
	return append(sources[:i:i], sources[i+1:]...)
}
