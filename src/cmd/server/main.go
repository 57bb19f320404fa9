package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/ledger-engine/src/internal/adapter/http/controller"
	"github.com/api-sage/ledger-engine/src/internal/adapter/http/middleware"
	"github.com/api-sage/ledger-engine/src/internal/adapter/http/router"
	"github.com/api-sage/ledger-engine/src/internal/adapter/repository/memory"
	"github.com/api-sage/ledger-engine/src/internal/config"
	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/api-sage/ledger-engine/src/internal/logger"
	"github.com/api-sage/ledger-engine/src/internal/scheduler"
	"github.com/api-sage/ledger-engine/src/internal/usecase/services"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("ledger server stopped with error", err, nil)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	clock := domain.SystemClock{}
	accountRepo := memory.NewAccountRepository()

	accountService := services.NewAccountService(accountRepo, clock, nil)
	ledgerService := services.NewLedgerService(clock)
	interestService := services.NewInterestService(accountRepo, clock)
	securityService := services.NewSecurityService(ledgerService, clock)

	handler := router.New(
		cfg.AllowedOrigins(),
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
		controller.NewAccountController(accountService, ledgerService, interestService),
		controller.NewTransferController(accountService, securityService),
		controller.NewSecurityController(accountService, securityService),
	)

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.ServerPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var jobs *scheduler.Scheduler
	if cfg.InterestJobEnabled {
		jobs = scheduler.New(interestService, cfg.InterestJobSchedule)
		if err := jobs.Start(); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("ledger server listening", logger.Fields{
			"addr":               server.Addr,
			"interestJobEnabled": cfg.InterestJobEnabled,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("ledger server shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()

		if jobs != nil {
			select {
			case <-jobs.Stop().Done():
			case <-shutdownCtx.Done():
				logger.Warn("ledger server interest job still running at shutdown", nil)
			}
		}
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
