package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/coachhub/internal/models"
)

// CreateSession вставляет новое занятие и возвращает его ID.
func (s *Storage) CreateSession(ctx context.Context, sess models.Session) (int, error) {
	const op = "storage.CreateSession"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO sessions (coach_id, learner_id, tier_id, slot_id, scheduled_at, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		sess.CoachID, sess.LearnerID, sess.TierID, sess.SlotID,
		sess.ScheduledAt, sess.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetSessionInfo возвращает занятие вместе с именами коуча и ученика.
func (s *Storage) GetSessionInfo(ctx context.Context, sessionID int) (*models.SessionInfo, error) {
	const op = "storage.GetSessionInfo"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.coach_id, s.learner_id, s.tier_id, s.slot_id,
			         s.scheduled_at, s.status, s.created_at,
			         c.username, l.username
			  FROM sessions s
			  JOIN users c ON c.id = s.coach_id
			  JOIN users l ON l.id = s.learner_id
			  WHERE s.id = $1`
	var info models.SessionInfo
	row := s.DB.QueryRowContext(ctx, query, sessionID)
	if err := row.Scan(&info.ID, &info.CoachID, &info.LearnerID, &info.TierID,
		&info.SlotID, &info.ScheduledAt, &info.Status, &info.CreatedAt,
		&info.CoachName, &info.LearnerName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &info, nil
}

// UpdateSessionStatus меняет статус занятия и возвращает количество изменённых строк.
func (s *Storage) UpdateSessionStatus(ctx context.Context, sessionID int, status string) (int, error) {
	const op = "storage.UpdateSessionStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE sessions SET status = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, sessionID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListSessionsForUser возвращает занятия, где пользователь выступает
// коучем либо учеником, новые первыми, с пагинацией.
func (s *Storage) ListSessionsForUser(ctx context.Context, userID, limit, offset int) ([]*models.Session, error) {
	const op = "storage.ListSessionsForUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, coach_id, learner_id, tier_id, slot_id, scheduled_at, status, created_at
			  FROM sessions
			  WHERE coach_id = $1 OR learner_id = $1
			  ORDER BY scheduled_at DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Session
	for rows.Next() {
		var item models.Session
		if err := rows.Scan(&item.ID, &item.CoachID, &item.LearnerID, &item.TierID,
			&item.SlotID, &item.ScheduledAt, &item.Status, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetTimeSlot возвращает слот расписания коуча по его ID.
func (s *Storage) GetTimeSlot(ctx context.Context, slotID int) (*models.TimeSlot, error) {
	const op = "storage.GetTimeSlot"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, coach_id, starts_at, ends_at, is_booked
			  FROM coach_time_slots
			  WHERE id = $1`
	var slot models.TimeSlot
	row := s.DB.QueryRowContext(ctx, query, slotID)
	if err := row.Scan(&slot.ID, &slot.CoachID, &slot.StartsAt, &slot.EndsAt,
		&slot.IsBooked); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &slot, nil
}

// BookTimeSlot помечает свободный слот занятым и возвращает количество
// изменённых строк: 0 означает, что слот уже занят или не существует.
func (s *Storage) BookTimeSlot(ctx context.Context, slotID int) (int, error) {
	const op = "storage.BookTimeSlot"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE coach_time_slots
			  SET is_booked = TRUE
			  WHERE id = $1 AND is_booked = FALSE`
	result, err := s.DB.ExecContext(ctx, query, slotID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
