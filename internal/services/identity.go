package services

import (
	"context"
	"net/http"
	"time"

	"github.com/denmor86/balance-console/internal/client"
	"github.com/denmor86/balance-console/internal/config"
	"github.com/denmor86/balance-console/internal/logger"
	"github.com/denmor86/balance-console/internal/models"
	"github.com/denmor86/balance-console/internal/session"
	"github.com/denmor86/balance-console/internal/tree"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

const (
	TokenSecretAlgo     = "HS256"
	TokenExpirationTime = 24 * time.Hour
)

// IdentityService - вход и выход из консоли, сессии и регистрация
// подчинённых учётных записей. Пароли не хранятся и не проверяются
// локально: аутентификация целиком на бэкенде.
type IdentityService interface {
	Login(ctx context.Context, credentials models.CredentialsRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	Register(ctx context.Context, sessionID string, request models.RegisterRequest) (string, error)
	LoadSession(ctx context.Context, sessionID string) (*session.Session, error)
	SaveSession(ctx context.Context, s *session.Session) error
	GetTokenAuth() *jwtauth.JWTAuth
}

type Identity struct {
	JWTAuth  *jwtauth.JWTAuth
	Backend  client.Backend
	Sessions session.Storage
	TTL      time.Duration
}

// Создание сервиса
func NewIdentity(cfg config.Config, backend client.Backend, sessions session.Storage) IdentityService {
	tokenAuth := jwtauth.New(TokenSecretAlgo, []byte(cfg.Server.JWTSecret), nil)
	ttl := cfg.Session.TTL
	if ttl <= 0 {
		ttl = TokenExpirationTime
	}
	return &Identity{JWTAuth: tokenAuth, Backend: backend, Sessions: sessions, TTL: ttl}
}

// Login - аутентификация на бэкенде и создание сессии консоли.
// Токен бэкенда наружу не отдаётся: клиент консоли получает её собственный JWT.
func (i *Identity) Login(ctx context.Context, credentials models.CredentialsRequest) (*models.LoginResponse, error) {
	logger.Info("Authenticate user", credentials.Username)

	result, err := i.Backend.Login(ctx, credentials.Username, credentials.Password)
	if err != nil {
		logger.Warn("Authentication failed", credentials.Username)
		return nil, err
	}

	consoleSession := &session.Session{
		ID:        uuid.NewString(),
		Token:     result.Token,
		User:      result.User,
		TreeState: tree.NewUIState(result.User.ID),
		CreatedAt: time.Now(),
	}
	if err := i.Sessions.Save(ctx, consoleSession, i.TTL); err != nil {
		logger.Error("Failed to save session", err)
		return nil, err
	}

	token, err := i.GenerateJWT(consoleSession.ID, result.User.Username)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return nil, err
	}

	logger.Info("User authenticated", result.User.Username)
	return &models.LoginResponse{
		Success: true,
		Status:  http.StatusOK,
		Token:   token,
		User:    result.User,
		Message: result.Message,
	}, nil
}

// Logout - удаление сессии консоли
func (i *Identity) Logout(ctx context.Context, sessionID string) error {
	return i.Sessions.Delete(ctx, sessionID)
}

// Register - регистрация подчинённой учётной записи. Поле id запроса
// к бэкенду - идентификатор создателя из текущей сессии.
func (i *Identity) Register(ctx context.Context, sessionID string, request models.RegisterRequest) (string, error) {
	consoleSession, err := i.LoadSession(ctx, sessionID)
	if err != nil {
		return "", err
	}

	logger.Info("Register user:", request.Username)
	message, err := i.Backend.Register(ctx, client.RegisterPayload{
		Username:  request.Username,
		Password:  request.Password,
		Role:      request.Role,
		CreatorID: consoleSession.User.ID,
	})
	if err != nil {
		logger.Warn("Error register user", request.Username, err)
		return "", err
	}
	return message, nil
}

// LoadSession - сессия по идентификатору из JWT консоли
func (i *Identity) LoadSession(ctx context.Context, sessionID string) (*session.Session, error) {
	return i.Sessions.Get(ctx, sessionID)
}

// SaveSession - сохранение сессии после изменения состояния UI или кэша дерева
func (i *Identity) SaveSession(ctx context.Context, s *session.Session) error {
	return i.Sessions.Save(ctx, s, i.TTL)
}

// Создание строки JWT токена консоли
func (i *Identity) GenerateJWT(sessionID string, username string) (string, error) {
	expirationTime := time.Now().Add(i.TTL)

	_, tokenString, err := i.JWTAuth.Encode(map[string]interface{}{
		"session":  sessionID,
		"username": username,
		"exp":      expirationTime,
	})
	return tokenString, err
}

// Возвращаем указатель на JWTAuth (chi)
func (i *Identity) GetTokenAuth() *jwtauth.JWTAuth {
	return i.JWTAuth
}
