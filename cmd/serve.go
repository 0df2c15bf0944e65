package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpLayer "emi-planner/http"
	"emi-planner/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	cfg := a.cfg

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, time.Duration(cfg.RateLimit.RefillSeconds)*time.Second)
	defer rateLimiter.Stop()

	if cfg.Retention.Days > 0 {
		job := service.NewRetentionJob(a.repo, cfg.Retention.Days, a.log)
		scheduler, err := service.StartRetention(cfg.Retention.Schedule, job)
		if err != nil {
			return err
		}
		defer scheduler.Stop()
		a.log.WithField("days", cfg.Retention.Days).Info("history retention scheduled")
	}

	router := httpLayer.NewRouter(
		httpLayer.NewLoanHandler(a.loans, a.advice, a.log),
		httpLayer.NewCatalogHandler(a.schemes, a.log),
		rateLimiter,
		a.log,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.log.Infof("API listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		a.log.WithError(err).Error("error starting server")
		return err
	case <-quit:
		a.log.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		a.log.WithError(err).Error("error during server shutdown")
		return err
	}

	a.log.Info("server exited")
	return nil
}
