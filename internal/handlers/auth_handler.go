package handlers

import (
	"encoding/json"
	"net/http"

	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
	"paddy-backend/internal/services"
	"paddy-backend/pkg/utils"
)

type AuthHandler struct {
	service *services.AuthService
	log     *logger.Logger
}

func NewAuthHandler(service *services.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, log: log}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if utils.IsServerError(err) {
			h.log.Error("login failed", "error", err)
		}
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}
