package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tally/internal/core"
	"tally/internal/ledger"
)

// recordPayload is the create-request body shared by both kinds. A caller
// supplied icon is deliberately absent: icons are derived server-side.
type recordPayload struct {
	Title       string     `json:"title"`
	Amount      core.Money `json:"amount"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
}

type recordResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Amount      core.Money `json:"amount"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Icon        string     `json:"icon,omitempty"`
	Date        string     `json:"date"`
	CreatedAt   time.Time  `json:"created_at"`
}

type transactionResponse struct {
	Type     string     `json:"type"`
	Title    string     `json:"title"`
	Amount   core.Money `json:"amount"`
	Category string     `json:"category"`
	Date     string     `json:"date"`
	Icon     string     `json:"icon"`
}

type dashboardResponse struct {
	TotalIncome        core.Money            `json:"total_income"`
	TotalExpense       core.Money            `json:"total_expense"`
	Balance            core.Money            `json:"balance"`
	RecentTransactions []transactionResponse `json:"recent_transactions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toRecordResponse(r core.Record) recordResponse {
	return recordResponse{
		ID:          r.ID,
		Title:       r.Title,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Icon:        r.Icon,
		Date:        r.Date.String(),
		CreatedAt:   r.CreatedAt,
	}
}

func toRecordResponses(records []core.Record) []recordResponse {
	out := make([]recordResponse, len(records))
	for i, r := range records {
		out[i] = toRecordResponse(r)
	}
	return out
}

func toDashboardResponse(d ledger.Dashboard) dashboardResponse {
	feed := make([]transactionResponse, len(d.RecentTransactions))
	for i, t := range d.RecentTransactions {
		feed[i] = transactionResponse{
			Type:     t.Type.String(),
			Title:    t.Title,
			Amount:   t.Amount,
			Category: t.Category,
			Date:     t.Date.String(),
			Icon:     t.Icon,
		}
	}
	return dashboardResponse{
		TotalIncome:        d.Summary.TotalIncome,
		TotalExpense:       d.Summary.TotalExpense,
		Balance:            d.Summary.Balance,
		RecentTransactions: feed,
	}
}

// decodeRecordPayload reads and sanitizes a create-request body, returning
// a record ready for service-level validation.
func decodeRecordPayload(r *http.Request) (core.Record, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return core.Record{}, err
	}

	var payload recordPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return core.Record{}, err
	}

	rec := core.Record{
		Title:       sanitizeInput(payload.Title),
		Amount:      payload.Amount,
		Category:    sanitizeInput(payload.Category),
		Description: sanitizeInput(payload.Description),
	}

	if strings.TrimSpace(payload.Date) != "" {
		date, err := core.ParseDate(payload.Date)
		if err != nil {
			return core.Record{}, err
		}
		rec.Date = date
	}

	return rec, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto the API's status codes: validation
// failures are 422, unknown ids are 404, anything else is an internal error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case core.IsValidationError(err):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, ledger.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "record not found"})
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// writeDecodeError distinguishes malformed JSON (400) from well-formed but
// invalid values (422).
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if core.IsValidationError(err) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	slog.WarnContext(r.Context(), "Malformed request body", "error", err, "path", r.URL.Path)
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
}
