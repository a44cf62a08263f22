// Package services содержит бизнес-логику занятий: бронирование слота
// расписания, смену статуса занятия и список занятий пользователя.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/coachhub/internal/models"
)

// Ошибки бизнес-логики занятий.
var (
	ErrSlotTaken      = errors.New("time slot is already booked")
	ErrSlotMismatch   = errors.New("time slot does not belong to the coach")
	ErrUnknownStatus  = errors.New("unknown session status")
	ErrNotParticipant = errors.New("user is not a participant of the session")
)

// SessionRepository определяет методы хранилища, нужные сервису занятий.
type SessionRepository interface {
	CreateSession(ctx context.Context, sess models.Session) (int, error)
	GetSessionInfo(ctx context.Context, sessionID int) (*models.SessionInfo, error)
	UpdateSessionStatus(ctx context.Context, sessionID int, status string) (int, error)
	ListSessionsForUser(ctx context.Context, userID, limit, offset int) ([]*models.Session, error)
	GetTimeSlot(ctx context.Context, slotID int) (*models.TimeSlot, error)
	BookTimeSlot(ctx context.Context, slotID int) (int, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// SessionNotifier описывает уведомления об изменениях занятия.
type SessionNotifier interface {
	NotifySessionUpdate(ctx context.Context, sessionID int, action string, notifyUserID int)
}

// SessionService реализует бизнес-логику занятий.
type SessionService struct {
	repo     SessionRepository
	notifier SessionNotifier
	log      *slog.Logger
}

// NewSessionService создает новый экземпляр SessionService.
func NewSessionService(repo SessionRepository, notifier SessionNotifier, log *slog.Logger) *SessionService {
	return &SessionService{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// Book бронирует свободный слот расписания коуча и создает занятие.
// Слот помечается занятым условным UPDATE, параллельная попытка
// забронировать тот же слот получает ErrSlotTaken. После создания
// занятия коуч получает уведомление.
func (s *SessionService) Book(ctx context.Context, learnerUsername string, coachID int, tierID *int, slotID int) (int, error) {
	const op = "services.SessionService.Book"

	learner, err := s.repo.GetUserByUsername(ctx, learnerUsername)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	slot, err := s.repo.GetTimeSlot(ctx, slotID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if slot.CoachID != coachID {
		return 0, fmt.Errorf("%s: %w", op, ErrSlotMismatch)
	}

	rows, err := s.repo.BookTimeSlot(ctx, slotID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrSlotTaken)
	}

	id, err := s.repo.CreateSession(ctx, models.Session{
		CoachID:     coachID,
		LearnerID:   learner.ID,
		TierID:      tierID,
		SlotID:      &slotID,
		ScheduledAt: slot.StartsAt,
		Status:      models.SessionStatusScheduled,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("booked session", slog.Int("id", id),
		slog.Int("learner_id", learner.ID), slog.Int("coach_id", coachID), slog.Int("slot_id", slotID))

	if s.notifier != nil {
		s.notifier.NotifySessionUpdate(ctx, id, models.SessionActionScheduled, coachID)
	}
	return id, nil
}

// UpdateStatus переводит занятие в completed или cancelled. Действие
// разрешено только участникам занятия. Контрагент получает уведомление
// о соответствующем изменении.
func (s *SessionService) UpdateStatus(ctx context.Context, sessionID int, status, actorUsername string) error {
	const op = "services.SessionService.UpdateStatus"

	switch status {
	case models.SessionStatusCompleted, models.SessionStatusCancelled:
	default:
		return fmt.Errorf("%s: %w", op, ErrUnknownStatus)
	}

	actor, err := s.repo.GetUserByUsername(ctx, actorUsername)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	info, err := s.repo.GetSessionInfo(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if actor.ID != info.LearnerID && actor.ID != info.CoachID {
		return fmt.Errorf("%s: %w", op, ErrNotParticipant)
	}

	rows, err := s.repo.UpdateSessionStatus(ctx, sessionID, status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: session not found", op)
	}
	s.log.Info("updated session status",
		slog.Int("session_id", sessionID), slog.String("status", status))

	if s.notifier != nil {
		counterpart := info.LearnerID
		if actor.ID == info.LearnerID {
			counterpart = info.CoachID
		}
		action := models.SessionActionCancelled
		if status == models.SessionStatusCompleted {
			action = status
		}
		s.notifier.NotifySessionUpdate(ctx, sessionID, action, counterpart)
	}
	return nil
}

// ListForUser возвращает занятия пользователя в любой из ролей.
func (s *SessionService) ListForUser(ctx context.Context, username string, limit, offset int) ([]*models.Session, error) {
	const op = "services.SessionService.ListForUser"

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	items, err := s.repo.ListSessionsForUser(ctx, user.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}
