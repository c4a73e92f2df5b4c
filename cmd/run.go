package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"betbook/api"
	"betbook/config"
	"betbook/database"
	"betbook/domain/entities"
	"betbook/domain/interfaces"
	"betbook/repository"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	setupLogging(cfg)

	log.Info("starting betbook server")

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("database connection established")

	uowFactory := repository.NewUnitOfWorkFactory(db)

	if err := seedAdmin(ctx, cfg, uowFactory); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	server := api.NewServer(cfg, db, uowFactory)
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	log.Info("shutdown completed")
	return nil
}

func setupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	}
}

// seedAdmin creates the configured admin account on first start. An existing
// account with the admin username is left untouched.
func seedAdmin(ctx context.Context, cfg *config.Config, uowFactory interfaces.UnitOfWorkFactory) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Warn("admin credentials not configured, skipping admin seed")
		return nil
	}

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	existing, err := uow.UserRepository().GetByUsername(ctx, cfg.AdminUsername)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cfg.BCryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &entities.User{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		Role:         entities.RoleAdmin,
		Balance:      cfg.StartingBalance,
	}
	if err := uow.UserRepository().Create(ctx, admin); err != nil {
		return err
	}

	log.WithField("username", admin.Username).Info("admin account created")
	return uow.Commit()
}
