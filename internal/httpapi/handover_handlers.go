package httpapi

import (
	"net/http"
	"strings"

	"manasa.shop/internal/handover"
)

type createHandoverRequest struct {
	RawSpeech      string `json:"rawSpeech"`
	AmountGiven    int64  `json:"amountGiven"`
	ChangeReturned int64  `json:"changeReturned"`
	NetAmount      int64  `json:"netAmount"`
	GivenTo        string `json:"givenTo"`
	Reason         string `json:"reason"`
}

func (a *API) handleCreateHandover(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req createHandoverRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := a.svc.Handover.Create(r.Context(), handover.Parsed{
		RawSpeech:      req.RawSpeech,
		AmountGiven:    req.AmountGiven,
		ChangeReturned: req.ChangeReturned,
		NetAmount:      req.NetAmount,
		GivenTo:        req.GivenTo,
		Reason:         req.Reason,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	a.audit(r.Context(), "handover.create", map[string]any{
		"given_to": rec.GivenTo, "net_amount": rec.NetAmount,
	})
	respondMessage(w, http.StatusCreated, "handover saved", rec)
}

func (a *API) handleGetHandover(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	list, err := a.svc.Handover.List(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, list)
}

func (a *API) handleDeleteHand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, http.MethodDelete)
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/speech/deleteHand/"), "/")
	if id == "" || strings.Contains(id, "/") {
		respondError(w, http.StatusNotFound, "resource not found")
		return
	}
	if err := a.svc.Handover.Delete(r.Context(), id); err != nil {
		handleDomainError(w, err)
		return
	}
	a.audit(r.Context(), "handover.delete", map[string]any{"id": id})
	respondMessage(w, http.StatusOK, "handover deleted", nil)
}
