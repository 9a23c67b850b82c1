package http

import (
	"net/http"
	"strconv"

	"github.com/acreflow/leadflow/pkg/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) addFollowUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Comment   string `json:"comment"`
		Timestamp string `json:"timestamp"`
	}
	if err := decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	lead, err := s.uc.FollowUp.AddFollowUp(r.Context(), leadID(r), actor(r), req.Comment, req.Timestamp)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, lead)
}

func (s *Server) listFollowUps(w http.ResponseWriter, r *http.Request) {
	includeHidden := r.URL.Query().Get("includeHidden") == "true"

	entries, err := s.uc.FollowUp.ListFollowUps(r.Context(), leadID(r), actor(r), includeHidden)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, entries)
}

func (s *Server) hideFollowUp(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		handleError(w, r, goerr.Wrap(usecase.ErrValidation, "follow-up index must be a number"))
		return
	}

	lead, err := s.uc.FollowUp.HideFollowUp(r.Context(), leadID(r), index, actor(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, lead)
}
