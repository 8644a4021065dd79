package httpapi

import (
	"net/http"
	"strings"
)

type createDistRequest struct {
	Name string `json:"name"`
}

type createDistResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	IsNew bool   `json:"isNew"`
}

func (a *API) handleCreateDist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req createDistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, isNew, err := a.svc.Dist.Create(r.Context(), req.Name)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if isNew {
		a.audit(r.Context(), "dist.create", map[string]any{"name": d.Name})
	}
	respondData(w, http.StatusCreated, createDistResponse{ID: d.ID, Name: d.Name, IsNew: isNew})
}

func (a *API) handleSearchDist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	names, err := a.svc.Dist.Search(r.Context(), strings.TrimSpace(r.URL.Query().Get("query")))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, names)
}
