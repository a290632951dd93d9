package helpers

import (
	"context"
	"fmt"

	"github.com/denmor86/balance-console/internal/logger"
	"github.com/go-chi/jwtauth/v5"
)

// GetSessionID - извлекает идентификатор сессии консоли из контекста JWT токена
func GetSessionID(context context.Context) (string, error) {
	_, claims, _ := jwtauth.FromContext(context)
	sessionID, ok := claims["session"].(string)
	if !ok {
		logger.Warn("Undefined session from token")
		return "", fmt.Errorf("undefined session")
	}
	return sessionID, nil
}

// GetUsername - извлекает имя пользователя из контекста JWT токена
func GetUsername(context context.Context) (string, error) {
	_, claims, _ := jwtauth.FromContext(context)
	login, ok := claims["username"].(string)
	if !ok {
		logger.Warn("Undefined username from token")
		return "", fmt.Errorf("undefined username")
	}
	return login, nil
}
