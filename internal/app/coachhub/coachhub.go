// Package coachhub собирает основное HTTP-приложение маркетплейса:
// подключение к хранилищу, кэшу и брокеру, сборку сервисов и запуск сервера.
package coachhub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/coachhub/internal/cache"
	"github.com/magabrotheeeer/coachhub/internal/config"
	"github.com/magabrotheeeer/coachhub/internal/lib/jwt"
	"github.com/magabrotheeeer/coachhub/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/coachhub/internal/migrations"
	authservice "github.com/magabrotheeeer/coachhub/internal/services/auth"
	coachservice "github.com/magabrotheeeer/coachhub/internal/services/coach"
	inquiryservice "github.com/magabrotheeeer/coachhub/internal/services/inquiry"
	messagingservice "github.com/magabrotheeeer/coachhub/internal/services/messaging"
	notificationservice "github.com/magabrotheeeer/coachhub/internal/services/notification"
	sessionservice "github.com/magabrotheeeer/coachhub/internal/services/session"
	"github.com/magabrotheeeer/coachhub/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQConnection, cfg.ConnectRetries, cfg.ConnectDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)

	publisher := &notificationservice.AMQPEmailPublisher{Channel: ch}
	notificationService := notificationservice.NewNotificationService(db, publisher, logger)
	messagingService := messagingservice.NewMessagingService(db, cacheRedis, notificationService, logger)
	inquiryService := inquiryservice.NewInquiryService(db, notificationService, logger)
	sessionService := sessionservice.NewSessionService(db, notificationService, logger)
	coachService := coachservice.NewCoachService(db, cacheRedis, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, db, authService,
		messagingService, notificationService, inquiryService, sessionService, coachService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if chErr := a.ch.Close(); chErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", chErr))
		}
		if connErr := a.conn.Close(); connErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", connErr))
		}
		_ = a.db.DB.Close()
		return err
	}
}
