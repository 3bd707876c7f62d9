package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tenco/bankcore/internal/infrastructure/auth"
)

// AuthHandler issues API tokens. The service has no user directory of its
// own; an upstream identity provider is expected to have authenticated the
// user before a token is minted.
type AuthHandler struct {
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{jwtManager: jwtManager}
}

// TokenRequest represents a token issuance request.
type TokenRequest struct {
	UserID int64 `json:"user_id"`
}

// TokenResponse represents a token issuance response.
type TokenResponse struct {
	Token string `json:"token"`
}

// Token mints a JWT for the given user id.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid user id", "")
		return
	}

	token, err := h.jwtManager.Generate(req.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}
