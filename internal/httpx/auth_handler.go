package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"plantstore-be/internal/user"
	"plantstore-be/internal/utils"
)

type authHandler struct {
	users user.Service
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.WriteJSONError(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		utils.WriteJSONError(w, "login failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})

	utils.WriteJSON(w, map[string]any{
		"token": token,
		"user":  map[string]any{"id": u.ID, "email": u.Email},
	}, http.StatusOK)
}
