package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListExpense(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.ListExpense(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponses(records))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeRecordPayload(r)
	if err != nil {
		writeDecodeError(w, r, err)
		return
	}

	// Icon derivation happens in the service; anything the client sent for
	// it never reaches storage.
	created, err := s.service.AddExpense(r.Context(), rec)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRecordResponse(created))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.service.RemoveExpense(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
