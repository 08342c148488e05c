package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clubhouse/internal/config"
	"clubhouse/internal/handler"
	"clubhouse/internal/logging"
	"clubhouse/internal/repository"
	"clubhouse/internal/service"
	"clubhouse/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	log, err := logging.New(cfg.LogLevel, os.Stdout)
	if err != nil {
		logrus.Fatalf("failed to set up logging: %v", err)
	}
	if !cfg.EnvFileLoaded {
		log.Info("no .env file found, relying on environment variables")
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("server exiting")
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---
	dbPool, err := config.ConnectDB(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := config.Migrate(ctx, dbPool, log); err != nil {
		return err
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	messageRepo := repository.NewMessageRepository(dbPool)

	sessionRepo := repository.NewSessionRepository(dbPool)
	if cfg.UseRedis() {
		rdb := config.NewRedisClient(cfg)
		defer rdb.Close()
		if err := config.ConnectRedis(ctx, rdb, log); err != nil {
			return err
		}
		sessionRepo = repository.NewRedisSessionRepository(rdb)
		log.Info("sessions stored in redis")
	}

	// --- Services ---
	signer := utils.NewSessionSigner(cfg.SessionSecret, cfg.SessionTTL)
	authService := service.NewAuthService(userRepo, sessionRepo, signer, log)
	messageService := service.NewMessageService(messageRepo, log)
	membershipService := service.NewMembershipService(userRepo, cfg.Passcodes, log)

	// --- Router ---
	router, err := handler.NewRouter(handler.RouterDeps{
		Auth:           authService,
		Messages:       messageService,
		Membership:     membershipService,
		DB:             dbPool,
		Log:            log,
		SessionTTL:     cfg.SessionTTL,
		RestrictDelete: cfg.RestrictDelete,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("port", cfg.ServerPort).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return service.NewSessionSweeper(authService, cfg.SessionSweepInterval, log).Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
