package worker

import (
	"context"
	"sync"
	"time"

	"github.com/denmor86/balance-console/internal/logger"
	"github.com/denmor86/balance-console/internal/services"
	"github.com/sony/gobreaker"
)

func InitCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "balance-backend",
		Timeout: 30 * time.Second, // через 30 сек пробуем подключиться
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// 5 попыток достучаться до сервиса
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Circuit Breaker '%s': %s → %s", name, from, to)
		},
	})
}

// SummaryWorker - фоновый опрос переводов для прогрева кэша сводки
type SummaryWorker struct {
	Transfers    services.TransfersService
	Breaker      *gobreaker.CircuitBreaker
	WaitGroup    sync.WaitGroup
	QuitChan     chan struct{}
	PollInterval time.Duration
}

// NewSummaryWorker - конструктор фонового опроса переводов
func NewSummaryWorker(transfers services.TransfersService, pollInterval time.Duration) *SummaryWorker {
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	return &SummaryWorker{
		Transfers:    transfers,
		Breaker:      InitCircuitBreaker(),
		QuitChan:     make(chan struct{}),
		PollInterval: pollInterval,
	}
}

// Start - запускает воркер в фоне. Без сервисной учётной записи опрос
// не запускается, сводка считается по живым запросам.
func (w *SummaryWorker) Start(ctx context.Context) {
	if !w.Transfers.PollingEnabled() {
		logger.Info("Summary poller disabled: no service account configured")
		return
	}
	w.WaitGroup.Add(1)
	go w.Run(ctx)
}

// Stop - корректно останавливает воркер
func (w *SummaryWorker) Stop() {
	close(w.QuitChan)
	w.WaitGroup.Wait()
}

// Run - основная рабочая логика
func (w *SummaryWorker) Run(ctx context.Context) {
	defer w.WaitGroup.Done()

	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.QuitChan:
			logger.Info("SummaryWorker signal stop")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Refresh(ctx)
		}
	}
}

// Refresh - одно обновление кэша под защитой предохранителя
func (w *SummaryWorker) Refresh(ctx context.Context) {
	if w.Breaker.State() == gobreaker.StateOpen {
		logger.Warn("%s unavailable. Waiting...", w.Breaker.Name())
		return
	}

	_, err := w.Breaker.Execute(func() (interface{}, error) {
		return nil, w.Transfers.RefreshCache(ctx)
	})
	if err != nil {
		logger.Error("Error refreshing transfers cache", err)
	}
}
