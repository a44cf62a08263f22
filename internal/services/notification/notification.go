// Package services содержит бизнес-логику уведомлений: счётчик
// непрочитанных, создание по доменным событиям (смена статуса заявки,
// новое сообщение, изменение занятия) и отметку о прочтении.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/coachhub/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/coachhub/internal/lib/sl"
	"github.com/magabrotheeeer/coachhub/internal/models"
	"github.com/streadway/amqp"
)

// NotificationRepository определяет методы хранилища, нужные сервису уведомлений.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n models.Notification) (int, error)
	CountUnreadNotifications(ctx context.Context, userID int) (int, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID int) (int, error)
	ListNotifications(ctx context.Context, userID, limit int) ([]*models.Notification, error)
	GetInquiryInfo(ctx context.Context, inquiryID int) (*models.InquiryInfo, error)
	GetSessionInfo(ctx context.Context, sessionID int) (*models.SessionInfo, error)
	GetUserEmail(ctx context.Context, userID int) (string, error)
}

// EmailPublisher отправляет событие письма в очередь рассылки.
type EmailPublisher interface {
	PublishEmail(email models.NotificationEmail) error
}

// AMQPEmailPublisher публикует события писем в RabbitMQ.
type AMQPEmailPublisher struct {
	Channel *amqp.Channel
}

// PublishEmail отправляет событие в обменник уведомлений.
func (p *AMQPEmailPublisher) PublishEmail(email models.NotificationEmail) error {
	return rabbitmq.PublishMessage(p.Channel, rabbitmq.NotificationExchange,
		rabbitmq.NotificationRoutingKey, email)
}

// NotificationService реализует бизнес-логику уведомлений.
//
// Создание уведомления не должно ронять вызвавшую операцию: при ошибке
// хранилища возвращается false с логированием. Дубль письмом уходит в
// очередь по принципу best effort, сбой публикации тоже только логируется.
type NotificationService struct {
	repo      NotificationRepository
	publisher EmailPublisher
	log       *slog.Logger
}

// NewNotificationService создает новый экземпляр NotificationService.
// Параметр publisher может быть nil, тогда письма не рассылаются.
func NewNotificationService(repo NotificationRepository, publisher EmailPublisher, log *slog.Logger) *NotificationService {
	return &NotificationService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// UnreadCount возвращает число непрочитанных уведомлений пользователя,
// при ошибке хранилища — 0.
func (s *NotificationService) UnreadCount(ctx context.Context, userID int) int {
	count, err := s.repo.CountUnreadNotifications(ctx, userID)
	if err != nil {
		s.log.Error("failed to count unread notifications", slog.Int("user_id", userID), sl.Err(err))
		return 0
	}
	return count
}

// List возвращает уведомления пользователя, новые первыми.
// При ошибке хранилища — пустой список.
func (s *NotificationService) List(ctx context.Context, userID, limit int) []*models.Notification {
	items, err := s.repo.ListNotifications(ctx, userID, limit)
	if err != nil {
		s.log.Error("failed to list notifications", slog.Int("user_id", userID), sl.Err(err))
		return []*models.Notification{}
	}
	if items == nil {
		items = []*models.Notification{}
	}
	return items
}

// MarkRead помечает уведомление прочитанным. Запрос ограничен парой
// (notificationID, userID): чужое уведомление остаётся нетронутым,
// возвращается false.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int) bool {
	rows, err := s.repo.MarkNotificationRead(ctx, notificationID, userID)
	if err != nil {
		s.log.Error("failed to mark notification read",
			slog.Int("notification_id", notificationID), slog.Int("user_id", userID), sl.Err(err))
		return false
	}
	return rows > 0
}

// Create вставляет одно уведомление и ставит в очередь письмо-дубль.
// Возвращает false при ошибке хранилища, сбой публикации письма на
// результат не влияет.
func (s *NotificationService) Create(ctx context.Context, userID int, title, message, link, typ string) bool {
	id, err := s.repo.CreateNotification(ctx, models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Link:    link,
		Type:    typ,
	})
	if err != nil {
		s.log.Error("failed to create notification", slog.Int("user_id", userID), sl.Err(err))
		return false
	}
	s.log.Info("created notification", slog.Int("id", id),
		slog.Int("user_id", userID), slog.String("type", typ))

	s.publishEmail(ctx, userID, title, message)
	return true
}

// NotifyNewMessage уведомляет получателя о новом сообщении.
func (s *NotificationService) NotifyNewMessage(ctx context.Context, userID, _ int, fromUsername string, conversationID int) {
	s.Create(ctx, userID,
		"New Message",
		fmt.Sprintf("You have a new message from %s", fromUsername),
		fmt.Sprintf("/messages/thread/%d", conversationID),
		models.NotificationTypeMessage)
}

// NotifyInquiryStatusChange отправляет ровно одно уведомление по смене
// статуса заявки: accepted, rejected и completed уходят ученику,
// cancelled — коучу. Неизвестный статус никого не уведомляет.
func (s *NotificationService) NotifyInquiryStatusChange(ctx context.Context, inquiryID int, status string) {
	info, err := s.repo.GetInquiryInfo(ctx, inquiryID)
	if err != nil {
		s.log.Error("failed to get inquiry info", slog.Int("inquiry_id", inquiryID), sl.Err(err))
		return
	}
	link := fmt.Sprintf("/inquiries/%d", inquiryID)

	switch status {
	case models.InquiryStatusAccepted:
		s.Create(ctx, info.LearnerID, "Inquiry Accepted",
			fmt.Sprintf("%s accepted your inquiry", info.CoachName),
			link, models.NotificationTypeInquiry)
	case models.InquiryStatusRejected:
		s.Create(ctx, info.LearnerID, "Inquiry Declined",
			fmt.Sprintf("%s declined your inquiry", info.CoachName),
			link, models.NotificationTypeInquiry)
	case models.InquiryStatusCompleted:
		s.Create(ctx, info.LearnerID, "Inquiry Completed",
			fmt.Sprintf("Your inquiry with %s is completed", info.CoachName),
			link, models.NotificationTypeInquiry)
	case models.InquiryStatusCancelled:
		s.Create(ctx, info.CoachID, "Inquiry Cancelled",
			fmt.Sprintf("%s cancelled the inquiry", info.LearnerName),
			link, models.NotificationTypeInquiry)
	default:
		// Незнакомый статус намеренно игнорируется.
	}
}

// NotifySessionUpdate уведомляет участника занятия об изменении.
// Обращение в тексте зависит от того, ученик получатель или коуч,
// формулировка — от действия. Неизвестное действие даёт общий текст.
func (s *NotificationService) NotifySessionUpdate(ctx context.Context, sessionID int, action string, notifyUserID int) {
	info, err := s.repo.GetSessionInfo(ctx, sessionID)
	if err != nil {
		s.log.Error("failed to get session info", slog.Int("session_id", sessionID), sl.Err(err))
		return
	}

	counterpart := info.LearnerName
	if notifyUserID == info.LearnerID {
		counterpart = info.CoachName
	}
	link := fmt.Sprintf("/sessions/%d", sessionID)

	var title, message string
	switch action {
	case models.SessionActionScheduled:
		title = "Session Scheduled"
		message = fmt.Sprintf("Your session with %s is scheduled", counterpart)
	case models.SessionActionRescheduled:
		title = "Session Rescheduled"
		message = fmt.Sprintf("Your session with %s was rescheduled", counterpart)
	case models.SessionActionCancelled:
		title = "Session Cancelled"
		message = fmt.Sprintf("Your session with %s was cancelled", counterpart)
	default:
		title = "Session Update"
		message = fmt.Sprintf("Your session with %s was updated", counterpart)
	}
	s.Create(ctx, notifyUserID, title, message, link, models.NotificationTypeSession)
}

// publishEmail ставит в очередь письмо-дубль уведомления.
func (s *NotificationService) publishEmail(ctx context.Context, userID int, title, message string) {
	if s.publisher == nil {
		return
	}
	email, err := s.repo.GetUserEmail(ctx, userID)
	if err != nil {
		s.log.Warn("failed to resolve user email", slog.Int("user_id", userID), sl.Err(err))
		return
	}
	err = s.publisher.PublishEmail(models.NotificationEmail{
		Email:   email,
		Title:   title,
		Message: message,
	})
	if err != nil {
		s.log.Warn("failed to publish email event", slog.Int("user_id", userID), sl.Err(err))
	}
}
