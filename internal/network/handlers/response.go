package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/denmor86/balance-console/internal/client"
	"github.com/denmor86/balance-console/internal/logger"
	"github.com/denmor86/balance-console/internal/models"
	"github.com/denmor86/balance-console/internal/session"
)

// WriteJSON - сериализация успешного ответа
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode JSON response:", err)
	}
}

// WriteError - единая форма ошибки консоли {success:false, status, message}
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, models.ErrorResponse{
		Success: false,
		Status:  status,
		Message: message,
	})
}

// WriteBackendError - отображение нормализованной ошибки бэкенда в ответ
// консоли. Сообщение бэкенда сохраняется, прочие ошибки скрываются за
// общим сообщением сервера.
func WriteBackendError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrSessionNotFound) {
		WriteError(w, http.StatusUnauthorized, "session expired")
		return
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		WriteError(w, apiErr.Status, apiErr.Message)
		return
	}
	logger.Error("Unhandled error", err)
	WriteError(w, http.StatusInternalServerError, "internal server error")
}
