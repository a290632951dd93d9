package session

import (
	"context"
	"errors"
	"time"

	"github.com/denmor86/balance-console/internal/config"
	"github.com/denmor86/balance-console/internal/models"
	"github.com/denmor86/balance-console/internal/tree"
)

// Session - серверная часть авторизованной сессии консоли: токен бэкенда,
// вошедший пользователь, кэш его поддерева и состояние UI дерева.
// Аналог localStorage браузерной консоли, только на стороне сервера.
type Session struct {
	ID        string           `json:"id"`
	Token     string           `json:"token"`
	User      *models.UserNode `json:"user"`
	Tree      *models.UserNode `json:"tree,omitempty"`
	TreeState *tree.UIState    `json:"treeState,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

var ErrSessionNotFound = errors.New("session not found")

// Storage - хранилище сессий консоли
type Storage interface {
	Save(ctx context.Context, session *Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewStorage - выбор реализации: Redis при заданном адресе, иначе память
func NewStorage(cfg config.SessionConfig) Storage {
	if cfg.RedisAddr != "" {
		return NewRedisStorage(cfg.RedisAddr, cfg.RedisPassword)
	}
	return NewMemoryStorage()
}
