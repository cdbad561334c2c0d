package httpserver

import (
	"forum-lab/services"
	"log/slog"
	"net/http"
)

type AuthHandler struct {
	log  *slog.Logger
	auth services.IAuthService
}

func NewAuthHandler(log *slog.Logger, auth services.IAuthService) *AuthHandler {
	return &AuthHandler{log: log, auth: auth}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := decode(r, w, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	token, err := h.auth.Register(body.Email, body.Password, body.Username)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info("User registered", "email", body.Email)
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body credentialsRequest
	if err := decode(r, w, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	token, err := h.auth.Login(body.Email, body.Password)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
