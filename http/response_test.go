package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sagarc03/galleria"
	galleriahttp "github.com/sagarc03/galleria/http"
	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"validation", galleria.InvalidInput("name is required"), http.StatusBadRequest, "invalid_input", "name is required"},
		{"bare invalid input", fmt.Errorf("put: %w", galleria.ErrInvalidInput), http.StatusBadRequest, "invalid_input", "invalid input"},
		{"invalid body", galleriahttp.ErrInvalidBody, http.StatusBadRequest, "invalid_input", "invalid input"},
		{"duplicate username", &galleria.DuplicateKeyError{Field: galleria.FieldUsername}, http.StatusConflict, "duplicate_key", "username already exists"},
		{"duplicate identity token", &galleria.DuplicateKeyError{Field: galleria.FieldIdentityToken}, http.StatusInternalServerError, "internal_error", "internal server error"},
		{"invalid credentials", galleria.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized", "unauthorized"},
		{"invalid token", galleria.ErrInvalidToken, http.StatusUnauthorized, "unauthorized", "unauthorized"},
		{"unauthorized", galleria.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "unauthorized"},
		{"requires auth header", galleriahttp.ErrRequiresAuthHeader, http.StatusUnauthorized, "unauthorized", "requires auth header"},
		{"requires token", galleriahttp.ErrRequiresToken, http.StatusUnauthorized, "unauthorized", "requires token"},
		{"not found", galleria.ErrNotFound, http.StatusNotFound, "not_found", "not found"},
		{"wrapped not found", errors.Join(errors.New("context"), galleria.ErrNotFound), http.StatusNotFound, "not_found", "not found"},
		{"payload too large", galleria.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, "payload_too_large", "payload too large"},
		{"exhausted", galleria.ErrTokenGenerationExhausted, http.StatusInternalServerError, "internal_error", "internal server error"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "internal_error", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			galleriahttp.HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, body.Error)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestWriteError_Success(t *testing.T) {
	rec := httptest.NewRecorder()

	galleriahttp.WriteError(rec, http.StatusBadRequest, "bad_request", "Invalid request")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"error":"bad_request"`)
	assert.Contains(t, rec.Body.String(), `"message":"Invalid request"`)
}

func TestWriteJSON_Success(t *testing.T) {
	rec := httptest.NewRecorder()

	data := map[string]string{"key": "value"}
	err := galleriahttp.WriteJSON(rec, http.StatusOK, data)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"key":"value"`)
}

func TestWriteJSON_EncodingError(t *testing.T) {
	rec := httptest.NewRecorder()

	// Channels cannot be JSON encoded
	err := galleriahttp.WriteJSON(rec, http.StatusOK, make(chan int))

	assert.Error(t, err)
}

func TestWriteText(t *testing.T) {
	rec := httptest.NewRecorder()

	err := galleriahttp.WriteText(rec, http.StatusOK, "token")

	assert.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "token", rec.Body.String())
}
