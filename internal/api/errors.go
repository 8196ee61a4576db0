package api

import (
	"encoding/json"
	"net/http"

	perrors "github.com/matzehuels/dockpane/pkg/errors"
)

type errorBody struct {
	Code  perrors.Code `json:"code"`
	Error string       `json:"error"`
}

func statusFor(code perrors.Code) int {
	switch code {
	case perrors.ErrCodeInvalidInput, perrors.ErrCodeInvalidName:
		return http.StatusBadRequest
	case perrors.ErrCodeInvalidLayout, perrors.ErrCodeOrphanRecord:
		return http.StatusUnprocessableEntity
	case perrors.ErrCodeNotFound, perrors.ErrCodeLayoutNotFound, perrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case perrors.ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	case perrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// writeError answers with err's code. Errors without one are internal.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := perrors.GetCode(err)
	if code == "" {
		code = perrors.ErrCodeInternal
	}
	status := statusFor(code)
	msg := perrors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
