package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/denmor86/balance-console/internal/helpers"
	"github.com/denmor86/balance-console/internal/logger"
	"github.com/denmor86/balance-console/internal/models"
	"github.com/denmor86/balance-console/internal/services"
	"github.com/denmor86/balance-console/internal/session"
	"github.com/denmor86/balance-console/internal/validators"
	"github.com/go-chi/chi/v5"
)

// UserResponse - ответ с одной учётной записью
type UserResponse struct {
	Success bool             `json:"success"`
	User    *models.UserNode `json:"user"`
	Message string           `json:"message,omitempty"`
}

// loadSession - сессия консоли из JWT запроса
func loadSession(r *http.Request, i services.IdentityService) (*session.Session, error) {
	sessionID, err := helpers.GetSessionID(r.Context())
	if err != nil {
		return nil, err
	}
	return i.LoadSession(r.Context(), sessionID)
}

// ListUsersHandler — страница списка всех пользователей с поиском,
// сортировкой и итогами по отфильтрованному набору.
func ListUsersHandler(i services.IdentityService, u services.UsersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		consoleSession, err := loadSession(r, i)
		if err != nil {
			WriteBackendError(w, err)
			return
		}

		params := r.URL.Query()
		page, _ := strconv.Atoi(params.Get("page"))
		perPage, _ := strconv.Atoi(params.Get("perPage"))
		query := services.ListQuery{
			Search:  params.Get("search"),
			SortKey: params.Get("sort"),
			Order:   params.Get("order"),
			Page:    page,
			PerPage: perPage,
		}

		response, err := u.List(r.Context(), consoleSession, query)
		if err != nil {
			WriteBackendError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, response)
	})
}

// GetUserHandler — учётная запись по идентификатору
func GetUserHandler(i services.IdentityService, u services.UsersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		consoleSession, err := loadSession(r, i)
		if err != nil {
			WriteBackendError(w, err)
			return
		}

		user, err := u.GetUser(r.Context(), consoleSession, chi.URLParam(r, "id"))
		if err != nil {
			WriteBackendError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, UserResponse{Success: true, User: user})
	})
}

// UpdateUserHandler — изменение учётной записи. Формат имени и роль
// проверяются до обращения к бэкенду.
func UpdateUserHandler(i services.IdentityService, u services.UsersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		consoleSession, err := loadSession(r, i)
		if err != nil {
			WriteBackendError(w, err)
			return
		}

		var request models.UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Error("Failed to decode request", err)
			WriteError(w, http.StatusBadRequest, "invalid request format")
			return
		}
		if request.Username != "" && !validators.CheckUsername(request.Username) {
			WriteError(w, http.StatusBadRequest,
				"username must be between 4 and 16 characters and can only contain letters, numbers, dots, underscores, and dashes")
			return
		}
		if request.Role != "" && !validators.CheckRole(request.Role) {
			WriteError(w, http.StatusBadRequest, "please select a role")
			return
		}

		user, err := u.Update(r.Context(), consoleSession, chi.URLParam(r, "id"), request)
		if err != nil {
			WriteBackendError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, UserResponse{Success: true, User: user, Message: "user updated"})
	})
}

// DeleteUserHandler — удаление учётной записи. Подтверждение удаления -
// обязанность клиента консоли, запрос сюда приходит уже подтверждённым.
func DeleteUserHandler(i services.IdentityService, u services.UsersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		consoleSession, err := loadSession(r, i)
		if err != nil {
			WriteBackendError(w, err)
			return
		}

		message, err := u.Delete(r.Context(), consoleSession, chi.URLParam(r, "id"))
		if err != nil {
			WriteBackendError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, models.MessageResponse{Success: true, Message: message})
	})
}
