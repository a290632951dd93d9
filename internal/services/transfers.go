package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/denmor86/balance-console/internal/client"
	"github.com/denmor86/balance-console/internal/config"
	"github.com/denmor86/balance-console/internal/logger"
	"github.com/denmor86/balance-console/internal/models"
	"github.com/denmor86/balance-console/internal/session"
	"github.com/denmor86/balance-console/internal/tree"
)

var ErrPollingDisabled = errors.New("summary polling disabled: no service account")

// HistoryQuery - параметры истории переводов
type HistoryQuery struct {
	From    time.Time
	To      time.Time
	SortKey string
	Order   string
}

// SummaryQuery - параметры сводки по пользователям
type SummaryQuery struct {
	From    time.Time
	To      time.Time
	Search  string
	SortKey string
	Order   string
}

// TransfersService - переводы средств, история и сводные итоги
type TransfersService interface {
	Make(ctx context.Context, s *session.Session, request models.TransferRequest) (*client.TransferResult, error)
	History(ctx context.Context, token string, query HistoryQuery) ([]models.TransferRecord, error)
	Summary(ctx context.Context, token string, query SummaryQuery) ([]models.TransferSummary, error)
	RefreshCache(ctx context.Context) error
	PollingEnabled() bool
}

type Transfers struct {
	Backend  client.Backend
	Sessions session.Storage
	Limiter  *client.RateLimiter
	TTL      time.Duration

	serviceLogin    string
	servicePassword string

	mu           sync.RWMutex
	serviceToken string
	cached       []models.TransferRecord
	cachedAt     time.Time
}

// Создание сервиса
func NewTransfers(cfg config.Config, backend client.Backend, sessions session.Storage) TransfersService {
	return &Transfers{
		Backend:         backend,
		Sessions:        sessions,
		Limiter:         client.NewRateLimiter(),
		TTL:             cfg.Session.TTL,
		serviceLogin:    cfg.Backend.ServiceLogin,
		servicePassword: cfg.Backend.ServicePassword,
	}
}

// Make - перевод средств от текущего пользователя выбранному.
// Балансы обеих сторон точечно обновляются в кэше дерева; узел,
// пропавший из дерева, сбрасывает кэш целиком (побеждает последнее действие).
func (t *Transfers) Make(ctx context.Context, s *session.Session, request models.TransferRequest) (*client.TransferResult, error) {
	result, err := t.Backend.MakeTransfer(ctx, s.Token, client.TransferPayload{
		SenderID:   s.User.ID,
		ReceiverID: request.UserID,
		Amount:     request.Amount,
		Type:       request.Type,
		Note:       request.Note,
	})
	if err != nil {
		logger.Error("Failed to make transfer", err)
		return nil, err
	}

	for _, updated := range []*models.UserNode{result.UpdatedSender, result.UpdatedReceiver} {
		if updated == nil {
			continue
		}
		if s.Tree != nil {
			patched, ok := tree.Replace(s.Tree, updated.ID, tree.Patch{Balance: &updated.Balance})
			if ok {
				s.Tree = patched
			} else {
				s.Tree = nil
			}
		}
		if s.User != nil && s.User.ID == updated.ID {
			s.User.Balance = updated.Balance
		}
	}

	// успешный перевод закрывает модальное окно
	if s.TreeState != nil {
		s.TreeState.CloseModal()
	}
	if err := t.Sessions.Save(ctx, s, t.TTL); err != nil {
		return result, err
	}

	logger.Info("Transfer completed", request.Type, request.Amount)
	return result, nil
}

// History - история переводов с фильтром по датам и сортировкой
func (t *Transfers) History(ctx context.Context, token string, query HistoryQuery) ([]models.TransferRecord, error) {
	records, err := t.Backend.GetAllTransfers(ctx, token)
	if err != nil {
		logger.Error("Failed to get transfers", err)
		return nil, err
	}
	records = FilterRecordsByDate(records, query.From, query.To)
	SortRecords(records, query.SortKey, query.Order == "desc")
	return records, nil
}

// Summary - сводные строки по пользователям. Берёт записи из кэша
// фонового опроса, при холодном кэше - живой запрос с токеном сессии.
func (t *Transfers) Summary(ctx context.Context, token string, query SummaryQuery) ([]models.TransferSummary, error) {
	records, warm := t.cachedRecords()
	if !warm {
		live, err := t.Backend.GetAllTransfers(ctx, token)
		if err != nil {
			logger.Error("Failed to get transfers", err)
			return nil, err
		}
		records = live
	}

	records = FilterRecordsByDate(records, query.From, query.To)
	rows := Aggregate(records)
	rows = FilterSummaries(rows, query.Search)
	SortSummaries(rows, query.SortKey, query.Order == "desc")
	return rows, nil
}

func (t *Transfers) cachedRecords() ([]models.TransferRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.cachedAt.IsZero() {
		return nil, false
	}
	return t.cached, true
}

// PollingEnabled - настроена ли сервисная учётная запись для фонового опроса
func (t *Transfers) PollingEnabled() bool {
	return t.serviceLogin != ""
}

// RefreshCache - обновление кэша переводов от имени сервисной учётной
// записи. Протухший сервисный токен сбрасывается, вход повторится
// на следующем цикле опроса.
func (t *Transfers) RefreshCache(ctx context.Context) error {
	if !t.PollingEnabled() {
		return ErrPollingDisabled
	}
	if err := t.Limiter.Wait(ctx); err != nil {
		return err
	}

	token, err := t.getServiceToken(ctx)
	if err != nil {
		return err
	}

	records, err := t.Backend.GetAllTransfers(ctx, token)
	if err != nil {
		var rateLimitErr *client.RateLimitError
		if errors.As(err, &rateLimitErr) {
			logger.Warn("Too many requests to backend, blocking poller")
			t.Limiter.BlockFor(rateLimitErr.RetryAfter)
			return nil
		}
		if errors.Is(err, client.ErrUnauthorized) {
			t.mu.Lock()
			t.serviceToken = ""
			t.mu.Unlock()
		}
		return err
	}

	t.mu.Lock()
	t.cached = records
	t.cachedAt = time.Now()
	t.mu.Unlock()
	return nil
}

func (t *Transfers) getServiceToken(ctx context.Context) (string, error) {
	t.mu.RLock()
	token := t.serviceToken
	t.mu.RUnlock()
	if token != "" {
		return token, nil
	}

	result, err := t.Backend.Login(ctx, t.serviceLogin, t.servicePassword)
	if err != nil {
		logger.Error("Service account login failed", err)
		return "", err
	}
	t.mu.Lock()
	t.serviceToken = result.Token
	t.mu.Unlock()
	return result.Token, nil
}
