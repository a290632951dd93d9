package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/denmor86/balance-console/internal/models"
)

// Backend - типизированная обёртка над REST API внешнего бэкенда.
// Вся нормализация форм ответов выполняется здесь: остальной код
// никогда не ветвится по форме полезной нагрузки.
type Backend interface {
	Register(ctx context.Context, payload RegisterPayload) (string, error)
	Login(ctx context.Context, username string, password string) (*LoginResult, error)
	GetUser(ctx context.Context, token string, id string) (*models.UserNode, error)
	GetUserTree(ctx context.Context, token string, creatorID string) (*models.UserNode, error)
	UpdateUser(ctx context.Context, token string, payload UpdatePayload) (*models.UserNode, error)
	DeleteUser(ctx context.Context, token string, id string) (string, error)
	GetAllUsers(ctx context.Context, token string) ([]*models.UserNode, error)
	MakeTransfer(ctx context.Context, token string, payload TransferPayload) (*TransferResult, error)
	GetAllTransfers(ctx context.Context, token string) ([]models.TransferRecord, error)
}

// RegisterPayload - запрос регистрации. Поле id - идентификатор создателя,
// бэкенд сам назначает _id новой учётной записи.
type RegisterPayload struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CreatorID string `json:"id"`
}

// UpdatePayload - запрос изменения пользователя, пустые поля не отправляются
type UpdatePayload struct {
	UserID   string `json:"userId"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

// TransferPayload - запрос перевода средств
type TransferPayload struct {
	SenderID   string  `json:"senderId"`
	ReceiverID string  `json:"receiverId"`
	Amount     float64 `json:"amount"`
	Type       string  `json:"type"`
	Note       string  `json:"note"`
}

// LoginResult - токен бэкенда и данные вошедшего пользователя
type LoginResult struct {
	Token   string
	User    *models.UserNode
	Message string
}

// TransferResult - выполненный перевод и обновлённые стороны
type TransferResult struct {
	Message         string
	Transfer        *models.TransferRecord
	UpdatedSender   *models.UserNode
	UpdatedReceiver *models.UserNode
}

// Ошибки бэкенда, нормализованные на границе клиента
var (
	ErrUnauthorized = errors.New("invalid credentials")
	ErrConflict     = errors.New("already exists")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("backend unreachable")
	ErrBackend      = errors.New("backend error")
)

// APIError - ошибка бэкенда: статус, сообщение и базовая ошибка таксономии
type APIError struct {
	Status  int
	Message string
	base    error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.base
}

// NewAPIError - ошибка с привязкой к таксономии для проверки через errors.Is
func NewAPIError(status int, message string, base error) *APIError {
	return &APIError{Status: status, Message: message, base: base}
}
