package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/denmor86/balance-console/internal/helpers"
	"github.com/denmor86/balance-console/internal/logger"
	"github.com/denmor86/balance-console/internal/models"
	"github.com/denmor86/balance-console/internal/services"
	"github.com/denmor86/balance-console/internal/validators"
)

// LoginHandler — вход в консоль через бэкенд
func LoginHandler(i services.IdentityService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// получение данных о пользователе
		var credentials models.CredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			logger.Error("Failed to decode request", err)
			WriteError(w, http.StatusBadRequest, "invalid request format")
			return
		}

		response, err := i.Login(r.Context(), credentials)
		if err != nil {
			logger.Warn("Error login user", credentials.Username)
			WriteBackendError(w, err)
			return
		}

		WriteJSON(w, http.StatusOK, response)
	})
}

// LogoutHandler — выход из консоли, удаление сессии
func LogoutHandler(i services.IdentityService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := helpers.GetSessionID(r.Context())
		if err != nil {
			WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if err := i.Logout(r.Context(), sessionID); err != nil {
			logger.Error("Failed to logout", err)
			WriteError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		WriteJSON(w, http.StatusOK, models.MessageResponse{Success: true, Message: "logged out"})
	})
}

// RegisterHandler — регистрация подчинённой учётной записи.
// Ошибки валидации перехватываются до обращения к бэкенду.
func RegisterHandler(i services.IdentityService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := helpers.GetSessionID(r.Context())
		if err != nil {
			WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		var request models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Error("Failed to decode request", err)
			WriteError(w, http.StatusBadRequest, "invalid request format")
			return
		}

		if !validators.CheckUsername(request.Username) {
			WriteError(w, http.StatusBadRequest,
				"username must be between 4 and 16 characters and can only contain letters, numbers, dots, underscores, and dashes")
			return
		}
		if !validators.CheckRole(request.Role) {
			WriteError(w, http.StatusBadRequest, "please select a role")
			return
		}

		message, err := i.Register(r.Context(), sessionID, request)
		if err != nil {
			WriteBackendError(w, err)
			return
		}

		logger.Info("User registered", request.Username)
		WriteJSON(w, http.StatusCreated, models.MessageResponse{Success: true, Message: message})
	})
}
