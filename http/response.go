package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sagarc03/galleria"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError is the single place where errors become HTTP responses.
// Client errors carry a short message; server errors never carry detail.
func HandleError(w http.ResponseWriter, err error) {
	var verr *galleria.ValidationError
	var dup *galleria.DuplicateKeyError

	switch {
	case errors.As(err, &verr):
		slog.Debug("request rejected", "error", err)
		WriteError(w, http.StatusBadRequest, "invalid_input", verr.Message)

	case errors.Is(err, galleria.ErrInvalidInput), errors.Is(err, ErrInvalidBody):
		slog.Debug("request rejected", "error", err)
		WriteError(w, http.StatusBadRequest, "invalid_input", "invalid input")

	case errors.As(err, &dup) && dup.Field != galleria.FieldIdentityToken:
		slog.Debug("duplicate key", "field", dup.Field)
		WriteError(w, http.StatusConflict, "duplicate_key", dup.Field+" already exists")

	case errors.Is(err, ErrRequiresAuthHeader),
		errors.Is(err, ErrRequiresToken),
		errors.Is(err, ErrRequiresBasicAuth),
		errors.Is(err, ErrInvalidBasicAuth):
		WriteError(w, http.StatusUnauthorized, "unauthorized", authMessage(err))

	case errors.Is(err, galleria.ErrInvalidCredentials),
		errors.Is(err, galleria.ErrUnauthorized),
		errors.Is(err, galleria.ErrInvalidToken):
		slog.Debug("unauthorized", "error", err)
		WriteError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")

	case errors.Is(err, galleria.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "not found")

	case errors.Is(err, galleria.ErrPayloadTooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "payload too large")

	default:
		slog.Error("request error", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func authMessage(err error) string {
	for _, e := range []error{ErrRequiresAuthHeader, ErrRequiresToken, ErrRequiresBasicAuth, ErrInvalidBasicAuth} {
		if errors.Is(err, e) {
			return e.Error()
		}
	}
	return "unauthorized"
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

// WriteText writes a plain text response
func WriteText(w http.ResponseWriter, code int, text string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, err := io.WriteString(w, text)
	return err
}
