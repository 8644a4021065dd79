package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"manasa.shop/internal/admin"
	"manasa.shop/internal/counter"
	"manasa.shop/internal/dist"
	"manasa.shop/internal/handover"
	"manasa.shop/internal/stock"
)

// envelope is the wire format for every endpoint: {success, message?, data?}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func respondData(w http.ResponseWriter, code int, data any) {
	writeJSON(w, code, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, code int, msg string, data any) {
	writeJSON(w, code, envelope{Success: true, Message: msg, Data: data})
}

func respondError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, envelope{Success: false, Message: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

// handleDomainError maps domain sentinels onto HTTP statuses. Messages are
// free text intended for direct display.
func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, counter.ErrInvalidInput),
		errors.Is(err, stock.ErrInvalidInput),
		errors.Is(err, dist.ErrInvalidInput),
		errors.Is(err, handover.ErrInvalidInput),
		errors.Is(err, admin.ErrInvalidInput),
		errors.Is(err, admin.ErrPasswordMismatch):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, counter.ErrNotFound),
		errors.Is(err, stock.ErrNotFound),
		errors.Is(err, dist.ErrNotFound),
		errors.Is(err, handover.ErrNotFound),
		errors.Is(err, admin.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, admin.ErrEmailTaken):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, admin.ErrUnauthorized),
		errors.Is(err, admin.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}
