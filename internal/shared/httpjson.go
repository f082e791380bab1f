package shared

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// WriteJSON serialises v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteError maps the error taxonomy onto HTTP status codes and renders a
// JSON body. Unrecognised errors are treated as store failures: logged and
// surfaced immediately as 500, no retry.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var ve *ValidationError
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		WriteJSON(w, http.StatusUnauthorized, errorBody{Error: ErrInvalidCredentials.Error()})
	case errors.Is(err, ErrPermissionDenied):
		WriteJSON(w, http.StatusForbidden, errorBody{Error: ErrPermissionDenied.Error()})
	case errors.Is(err, ErrNotFound):
		WriteJSON(w, http.StatusNotFound, errorBody{Error: ErrNotFound.Error()})
	case errors.As(err, &ve):
		WriteJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "validation failed", Fields: ve.Fields})
	default:
		if logger != nil {
			logger.Error("request failed", slog.Any("error", err))
		}
		WriteJSON(w, http.StatusInternalServerError, errorBody{Error: http.StatusText(http.StatusInternalServerError)})
	}
}
