package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fintave/bankaccount-backend/internal/adapter/httpapi"
	"github.com/fintave/bankaccount-backend/internal/adapter/repository/postgres"
	"github.com/fintave/bankaccount-backend/internal/config"
	"github.com/fintave/bankaccount-backend/internal/logger"
	"github.com/fintave/bankaccount-backend/internal/usecase/account"
	"github.com/fintave/bankaccount-backend/internal/usecase/customer"
	"github.com/fintave/bankaccount-backend/internal/usecase/operation"
	"github.com/fintave/bankaccount-backend/internal/usecase/transfer"
)

func main() {
	cfg := config.Load()

	db, err := postgres.NewDB(cfg.DatabaseDSN)
	if err != nil {
		logger.Error("failed to connect to database", err, nil)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx); err != nil {
		logger.Error("failed to ensure database schema", err, nil)
		os.Exit(1)
	}

	accountRepo := postgres.NewAccountRepository(db)
	operationRepo := postgres.NewOperationRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	txManager := postgres.NewTxManager(db)

	operationService := operation.NewService(accountRepo, operationRepo, txManager)
	transferService := transfer.NewService(operationService, accountRepo, txManager)
	accountService := account.NewService(accountRepo, customerRepo, operationRepo, txManager)
	customerService := customer.NewService(customerRepo, accountRepo, operationRepo)

	mux := httpapi.NewRouter(
		httpapi.NewOperationController(operationService, transferService),
		httpapi.NewAccountController(accountService),
		httpapi.NewCustomerController(customerService),
		httpapi.BearerAuth(cfg.APIToken),
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("http server listening", logger.Fields{"addr": cfg.HTTPAddr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", err, nil)
			os.Exit(1)
		}
	}()

	waitForShutdown(server)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("shutting down", logger.Fields{"signal": sig.String()})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", err, nil)
	}
	logger.Info("http server stopped", nil)
}
