package httpapi

import (
	"net/http"
	"strings"

	"manasa.shop/internal/obs"
	"manasa.shop/internal/reconcile"
	"manasa.shop/internal/stock"
)

type stockEntryRequest struct {
	Date         string                   `json:"date"`
	Distributors []stock.DistributorInput `json:"distributors"`
}

type updateDistRequest struct {
	Name      string           `json:"name"`
	TotalPaid reconcile.Amount `json:"totalPaid"`
}

type remAmountRequest struct {
	StockEntryID string                    `json:"stockEntryId"`
	AmountHave   reconcile.Amount          `json:"amountHave"`
	Paytm        reconcile.Amount          `json:"paytm"`
	Companies    []reconcile.PaymentSource `json:"companies"`
}

func (a *API) handleStockEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req stockEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := a.svc.Stock.CreateEntry(r.Context(), req.Date, req.Distributors)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	obs.RecordSaved("stock_entry")
	a.audit(r.Context(), "stock.entry.create", map[string]any{
		"date":  e.Date,
		"lines": len(e.Distributors),
	})
	respondMessage(w, http.StatusCreated, "stock entry saved", e)
}

func (a *API) handleAllStocks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	list, err := a.svc.Stock.List(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, list)
}

func (a *API) handleUpdateStock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, http.MethodPut)
		return
	}
	stockID, distID, ok := splitTwoIDs(r.URL.Path, "/api/v1/stock/updateStock/")
	if !ok {
		respondError(w, http.StatusNotFound, "resource not found")
		return
	}
	var req updateDistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := a.svc.Stock.UpdateDistributor(r.Context(), stockID, distID, stock.DistributorInput{
		Name:      req.Name,
		TotalPaid: req.TotalPaid,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	a.audit(r.Context(), "stock.dist.update", map[string]any{
		"stock_id": stockID, "dist_id": distID,
	})
	respondMessage(w, http.StatusOK, "distributor updated", e)
}

func (a *API) handleDeleteDist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, http.MethodDelete)
		return
	}
	stockID, distID, ok := splitTwoIDs(r.URL.Path, "/api/v1/stock/deleteDist/")
	if !ok {
		respondError(w, http.StatusNotFound, "resource not found")
		return
	}
	e, err := a.svc.Stock.DeleteDistributor(r.Context(), stockID, distID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	a.audit(r.Context(), "stock.dist.delete", map[string]any{
		"stock_id": stockID, "dist_id": distID, "record_removed": e == nil,
	})
	if e == nil {
		respondMessage(w, http.StatusOK, "stock entry removed", nil)
		return
	}
	respondMessage(w, http.StatusOK, "distributor removed", e)
}

func (a *API) handleRemAmount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req remAmountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.StockEntryID) == "" {
		respondError(w, http.StatusBadRequest, "stockEntryId is required")
		return
	}
	rec, err := a.svc.Stock.SaveRemaining(r.Context(), req.StockEntryID, req.AmountHave, req.Paytm, req.Companies)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	obs.RecordSaved("stock_remaining")
	a.audit(r.Context(), "stock.remaining.save", map[string]any{
		"stock_id": rec.StockEntryID, "final_total": rec.FinalTotal.String(),
	})
	respondMessage(w, http.StatusOK, "remaining amount saved", rec)
}

func (a *API) handleGetRemAmount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/stock/getRemAmount/"), "/")
	if id == "" || strings.Contains(id, "/") {
		respondError(w, http.StatusNotFound, "resource not found")
		return
	}
	rec, err := a.svc.Stock.GetRemaining(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, rec)
}

// splitTwoIDs parses "/<prefix>/<a>/<b>" routes.
func splitTwoIDs(path, prefix string) (first, second string, ok bool) {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
