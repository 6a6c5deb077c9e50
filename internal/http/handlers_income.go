package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListIncome(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.ListIncome(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponses(records))
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeRecordPayload(r)
	if err != nil {
		writeDecodeError(w, r, err)
		return
	}

	created, err := s.service.AddIncome(r.Context(), rec)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRecordResponse(created))
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.service.RemoveIncome(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
