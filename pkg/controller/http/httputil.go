package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/atelier-lab/atelier/pkg/usecase"
	"github.com/atelier-lab/atelier/pkg/utils/errutil"
	"github.com/atelier-lab/atelier/pkg/utils/safe"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return goerr.Wrap(errBadRequest, "invalid JSON request body", goerr.V("cause", err.Error()))
	}
	return nil
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

// errBadRequest marks request-shape errors that map to HTTP 400
var errBadRequest = goerr.New("bad request")

// respondError maps domain errors to HTTP status codes and writes a JSON
// error body. A missing record and a storage failure are different outcomes:
// the former is a clean 404, the latter a logged 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = errutil.Handle(r.Context(), err, "request failed")
	}
	respondJSON(w, r, status, map[string]string{"error": errorMessage(err, status)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrRecordNotFound),
		errors.Is(err, usecase.ErrPropertyNotFound),
		errors.Is(err, model.ErrWorkspaceNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrConfirmationRequired):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, usecase.ErrTitleRequired),
		errors.Is(err, usecase.ErrNameRequired),
		errors.Is(err, usecase.ErrBodyRequired),
		errors.Is(err, model.ErrInvalidValueType),
		errors.Is(err, model.ErrInvalidOption),
		errors.Is(err, model.ErrMissingRequired),
		errors.Is(err, model.ErrInvalidFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error, status int) string {
	if status == http.StatusInternalServerError {
		// Internal detail stays in the log
		return "internal server error"
	}
	switch {
	case errors.Is(err, usecase.ErrRecordNotFound):
		return "record not found"
	case errors.Is(err, usecase.ErrPropertyNotFound):
		return "property not found"
	case errors.Is(err, model.ErrWorkspaceNotFound):
		return "workspace not found"
	default:
		return err.Error()
	}
}

// pathEntityType parses the {entityType} path parameter
func pathEntityType(r *http.Request) (types.EntityType, error) {
	entityType, err := types.ParseEntityType(chi.URLParam(r, "entityType"))
	if err != nil {
		return "", goerr.Wrap(errBadRequest, "invalid entity type", goerr.V("value", chi.URLParam(r, "entityType")))
	}
	return entityType, nil
}

// pathRecordID parses the {recordID} path parameter
func pathRecordID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "recordID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, goerr.Wrap(errBadRequest, "invalid record ID", goerr.V("value", raw))
	}
	return id, nil
}

// queryConfirmed reports whether the request carries ?confirm=true
func queryConfirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}
