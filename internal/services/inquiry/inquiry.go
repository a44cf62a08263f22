// Package services содержит бизнес-логику заявок учеников: создание,
// смену статуса с контролем участника и список заявок пользователя.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/coachhub/internal/models"
)

// Ошибки бизнес-логики заявок.
var (
	ErrUnknownStatus  = errors.New("unknown inquiry status")
	ErrNotParticipant = errors.New("user is not a participant of the inquiry")
)

// InquiryRepository определяет методы хранилища, нужные сервису заявок.
type InquiryRepository interface {
	CreateInquiry(ctx context.Context, inq models.Inquiry) (int, error)
	GetInquiryInfo(ctx context.Context, inquiryID int) (*models.InquiryInfo, error)
	UpdateInquiryStatus(ctx context.Context, inquiryID int, status string) (int, error)
	ListInquiriesForUser(ctx context.Context, userID int, role string, limit, offset int) ([]*models.Inquiry, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// InquiryNotifier описывает уведомления, порождаемые жизненным циклом заявки.
type InquiryNotifier interface {
	Create(ctx context.Context, userID int, title, message, link, typ string) bool
	NotifyInquiryStatusChange(ctx context.Context, inquiryID int, status string)
}

// InquiryService реализует бизнес-логику заявок.
type InquiryService struct {
	repo     InquiryRepository
	notifier InquiryNotifier
	log      *slog.Logger
}

// NewInquiryService создает новый экземпляр InquiryService.
func NewInquiryService(repo InquiryRepository, notifier InquiryNotifier, log *slog.Logger) *InquiryService {
	return &InquiryService{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// Create добавляет новую заявку со статусом pending и уведомляет коуча.
func (s *InquiryService) Create(ctx context.Context, learnerUsername string, coachID int, message string) (int, error) {
	const op = "services.InquiryService.Create"

	learner, err := s.repo.GetUserByUsername(ctx, learnerUsername)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateInquiry(ctx, models.Inquiry{
		LearnerID: learner.ID,
		CoachID:   coachID,
		Message:   message,
		Status:    models.InquiryStatusPending,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created inquiry", slog.Int("id", id),
		slog.Int("learner_id", learner.ID), slog.Int("coach_id", coachID))

	if s.notifier != nil {
		s.notifier.Create(ctx, coachID,
			"New Inquiry",
			fmt.Sprintf("%s sent you an inquiry", learner.Username),
			fmt.Sprintf("/inquiries/%d", id),
			models.NotificationTypeInquiry)
	}
	return id, nil
}

// UpdateStatus переводит заявку в новый статус. Действие разрешено только
// участникам заявки, статус должен быть одним из известных значений.
// Уведомление о смене статуса рассылается после успешной записи.
func (s *InquiryService) UpdateStatus(ctx context.Context, inquiryID int, status, actorUsername string) error {
	const op = "services.InquiryService.UpdateStatus"

	switch status {
	case models.InquiryStatusAccepted, models.InquiryStatusRejected,
		models.InquiryStatusCancelled, models.InquiryStatusCompleted:
	default:
		return fmt.Errorf("%s: %w", op, ErrUnknownStatus)
	}

	actor, err := s.repo.GetUserByUsername(ctx, actorUsername)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	info, err := s.repo.GetInquiryInfo(ctx, inquiryID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if actor.ID != info.LearnerID && actor.ID != info.CoachID {
		return fmt.Errorf("%s: %w", op, ErrNotParticipant)
	}

	rows, err := s.repo.UpdateInquiryStatus(ctx, inquiryID, status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: inquiry not found", op)
	}
	s.log.Info("updated inquiry status",
		slog.Int("inquiry_id", inquiryID), slog.String("status", status))

	if s.notifier != nil {
		s.notifier.NotifyInquiryStatusChange(ctx, inquiryID, status)
	}
	return nil
}

// ListForUser возвращает заявки пользователя в его роли: для ученика
// заявки, которые он отправил, для коуча — полученные.
func (s *InquiryService) ListForUser(ctx context.Context, username, role string, limit, offset int) ([]*models.Inquiry, error) {
	const op = "services.InquiryService.ListForUser"

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	items, err := s.repo.ListInquiriesForUser(ctx, user.ID, role, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}
