// Package sender собирает фоновый воркер рассылки писем: подключение к
// брокеру, настройку очереди событий уведомлений и потребителя.
package sender

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/coachhub/internal/config"
	"github.com/magabrotheeeer/coachhub/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/coachhub/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/coachhub/internal/services/sender"
	"github.com/streadway/amqp"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQConnection, cfg.ConnectRetries, cfg.ConnectDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(logger, newTransport)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.NotificationQueue, a.senderService.SendNotificationEmail)
	if err != nil {
		a.logger.Error("failed to start notification events consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("Sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
