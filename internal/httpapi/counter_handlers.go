package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"manasa.shop/internal/counter"
	"manasa.shop/internal/obs"
	"manasa.shop/internal/reconcile"
)

type initialCountRequest struct {
	Date   string           `json:"date"`
	Amount reconcile.Amount `json:"amount"`
}

type remCashRequest struct {
	Date                  string                        `json:"date"`
	Notes                 []reconcile.DenominationEntry `json:"notes"`
	Coins                 []reconcile.DenominationEntry `json:"coins"`
	Companies             []reconcile.PaymentSource     `json:"companies"`
	Card                  reconcile.Amount              `json:"card"`
	Paytm                 reconcile.Amount              `json:"paytm"`
	Additional            reconcile.Amount              `json:"additional"`
	OtherPayments         reconcile.Amount              `json:"otherPayments"`
	OpeningBalance        reconcile.Amount              `json:"openingBalance"`
	PossibleOfflineAmount reconcile.Amount              `json:"possibleOfflineAmount"`
	PossibleOnlineAmount  reconcile.Amount              `json:"possibleOnlineAmount"`
	Remarks               string                        `json:"remarks"`
}

func (a *API) handleInitialCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req initialCountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := a.svc.Counter.SaveInitial(r.Context(), req.Date, req.Amount)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	obs.RecordSaved("initial_cash")
	a.audit(r.Context(), "counter.initial.save", map[string]any{
		"date": rec.Date, "amount": rec.Amount.String(),
	})
	respondMessage(w, http.StatusOK, "opening balance saved", rec)
}

func (a *API) handleGetInitial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	rec, err := a.svc.Counter.GetInitial(r.Context(), strings.TrimSpace(r.URL.Query().Get("date")))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, rec)
}

func (a *API) handleRemCash(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req remCashRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := a.svc.Counter.SaveRemaining(r.Context(), &counter.RemainingCash{
		Date:      req.Date,
		Notes:     req.Notes,
		Coins:     req.Coins,
		Companies: req.Companies,
		FixedSources: reconcile.FixedSources{
			Card:          req.Card,
			Paytm:         req.Paytm,
			Additional:    req.Additional,
			OtherPayments: req.OtherPayments,
		},
		OpeningBalance:        req.OpeningBalance,
		PossibleOfflineAmount: req.PossibleOfflineAmount,
		PossibleOnlineAmount:  req.PossibleOnlineAmount,
		Remarks:               req.Remarks,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	obs.RecordSaved("remaining_cash")
	a.audit(r.Context(), "counter.remcash.save", map[string]any{
		"date":    rec.Date,
		"outcome": string(rec.Totals.Outcome),
	})
	respondMessage(w, http.StatusOK, "remaining cash saved", rec)
}

func (a *API) handleGetRemainingCash(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	rec, err := a.svc.Counter.GetRemaining(r.Context(), strings.TrimSpace(r.URL.Query().Get("date")))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, rec)
}

func (a *API) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	month, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("month")))
	if err != nil {
		respondError(w, http.StatusBadRequest, "month must be an integer")
		return
	}
	year, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("year")))
	if err != nil {
		respondError(w, http.StatusBadRequest, "year must be an integer")
		return
	}
	summary, err := a.svc.Counter.MonthlySummary(r.Context(), month, year)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, summary)
}

func (a *API) handleDataByRange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	q := r.URL.Query()
	summary, err := a.svc.Counter.DataByRange(r.Context(),
		strings.TrimSpace(q.Get("from")), strings.TrimSpace(q.Get("to")))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, summary)
}
