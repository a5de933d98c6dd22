package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sagarc03/galleria"
)

const maxJSONBody = 1 << 20

// handleSignup creates an account and responds with a signed token as text/plain.
func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req galleria.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		HandleError(w, err)
		return
	}

	token, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteText(w, http.StatusOK, token)
}

// handleLogin checks Basic credentials and responds with a fresh signed token.
// Issuing a token invalidates the previous one.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	username, password, err := ParseBasicAuth(r.Header.Get("Authorization"))
	if err != nil {
		HandleError(w, err)
		return
	}

	token, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteText(w, http.StatusOK, token)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return nil
}
