package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denmor86/balance-console/internal/client"
	"github.com/denmor86/balance-console/internal/config"
	"github.com/denmor86/balance-console/internal/logger"
	"github.com/denmor86/balance-console/internal/network/router"
	"github.com/denmor86/balance-console/internal/session"
	"github.com/denmor86/balance-console/internal/worker"
)

const backendRequestTimeout = 15 * time.Second

func Run(config config.Config) {

	backend := client.NewClient(config.Backend.BackendAddr, &http.Client{Timeout: backendRequestTimeout})
	sessions := session.NewStorage(config.Session)
	defer sessions.Close()

	router := router.NewRouter(config, backend, sessions)

	server := &http.Server{
		Addr:    config.Server.ListenAddr,
		Handler: router.HandleRouter(),
	}
	// Создание и запуск воркера прогрева сводки
	worker := worker.NewSummaryWorker(router.Transfers, config.Backend.PollInterval)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info(
			"Starting server config:", config,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("error listen server", err.Error())
		}
	}()

	<-stop
	logger.Info("Shutdown server")
	worker.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutdown server", err.Error())
	}
	logger.Info("Server stopped")
}
