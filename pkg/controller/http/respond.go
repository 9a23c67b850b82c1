package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/acreflow/leadflow/pkg/usecase"
	"github.com/acreflow/leadflow/pkg/utils/errutil"
	"github.com/acreflow/leadflow/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// actorHeader carries the acting user's directory ID. Session handling lives
// in front of this service; the header is the boundary contract.
const actorHeader = "X-Actor-ID"

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

// handleError maps the use case error taxonomy onto HTTP status codes. The
// goerr values (lead id, action, tail status) ride along in the log entry so
// operators can tell a lost race from a real misuse.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, usecase.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, usecase.ErrLeadNotFound), errors.Is(err, usecase.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidTransition), errors.Is(err, usecase.ErrNotCurrentOwner):
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}
	errutil.HandleHTTP(r.Context(), w, err, status)
}
