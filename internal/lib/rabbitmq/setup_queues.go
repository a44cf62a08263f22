package rabbitmq

// Exchange и routing key событий уведомлений.
const (
	NotificationExchange   = "notifications"
	NotificationRoutingKey = "events"
	NotificationQueue      = "notification.events"
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: NotificationQueue, RoutingKey: NotificationRoutingKey},
		// при необходимости дополнительные очереди для других воркеров
	}
}
