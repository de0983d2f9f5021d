package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/urbangrowth/internal/timeline"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Code: http.StatusText(status), Message: err.Error()})
}

// writeSessionError maps controller errors to status codes.
func (s *Server) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, timeline.ErrUnknownYear):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, timeline.ErrUnknownFeature):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, timeline.ErrHiddenFeature):
		writeError(w, http.StatusConflict, err)
	default:
		s.log.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
	}
}
