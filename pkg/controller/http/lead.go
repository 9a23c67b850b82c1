package http

import (
	"encoding/json"
	"net/http"

	"github.com/acreflow/leadflow/pkg/domain/types"
	"github.com/acreflow/leadflow/pkg/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

type leadRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Property string `json:"property"`
	Budget   string `json:"budget"`
	Status   string `json:"status"`
}

func (req *leadRequest) toInput() usecase.LeadInput {
	return usecase.LeadInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Location: req.Location,
		Property: req.Property,
		Budget:   req.Budget,
		Status:   types.LeadStatus(req.Status),
	}
}

func actor(r *http.Request) types.UserID {
	return types.UserID(r.Header.Get(actorHeader))
}

func leadID(r *http.Request) types.LeadID {
	return types.LeadID(chi.URLParam(r, "leadID"))
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(usecase.ErrValidation, "invalid request body")
	}
	return nil
}

func (s *Server) createLead(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if err := decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	lead, err := s.uc.Lead.CreateLead(r.Context(), actor(r), req.toInput())
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, lead)
}

func (s *Server) listLeads(w http.ResponseWriter, r *http.Request) {
	assignedTo := types.UserID(r.URL.Query().Get("assignedTo"))

	leads, err := s.uc.Lead.ListLeads(r.Context(), assignedTo)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, leads)
}

func (s *Server) getLead(w http.ResponseWriter, r *http.Request) {
	lead, err := s.uc.Lead.GetLead(r.Context(), leadID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, lead)
}

func (s *Server) updateLead(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if err := decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	lead, err := s.uc.Lead.UpdateLeadFields(r.Context(), leadID(r), actor(r), req.toInput())
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, lead)
}

func (s *Server) deleteLead(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Lead.DeleteLead(r.Context(), leadID(r), actor(r)); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) assignLead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target string `json:"target"`
	}
	if err := decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	lead, err := s.uc.Chain.Assign(r.Context(), leadID(r), actor(r), types.UserID(req.Target))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, lead)
}

func (s *Server) forwardLead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target string `json:"target"`
		Notes  string `json:"notes"`
	}
	if err := decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	lead, err := s.uc.Chain.Forward(r.Context(), leadID(r), actor(r), types.UserID(req.Target), req.Notes)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, lead)
}

func (s *Server) completeLead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	lead, err := s.uc.Chain.Complete(r.Context(), leadID(r), actor(r), req.Notes)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, lead)
}

func (s *Server) rejectLead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	lead, err := s.uc.Chain.Reject(r.Context(), leadID(r), actor(r), req.Reason)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, lead)
}

func (s *Server) setProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Progress string `json:"progress"`
	}
	if err := decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	lead, err := s.uc.Chain.SetWorkProgress(r.Context(), leadID(r), actor(r), types.WorkProgress(req.Progress))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, lead)
}
