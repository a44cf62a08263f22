package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/coachhub/internal/models"
)

// CreateNotification вставляет новое уведомление и возвращает его ID.
func (s *Storage) CreateNotification(ctx context.Context, n models.Notification) (int, error) {
	const op = "storage.CreateNotification"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO notifications (user_id, title, message, link, type)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		n.UserID, n.Title, n.Message, n.Link, n.Type).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CountUnreadNotifications возвращает число непрочитанных уведомлений пользователя.
func (s *Storage) CountUnreadNotifications(ctx context.Context, userID int) (int, error) {
	const op = "storage.CountUnreadNotifications"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM notifications
			  WHERE user_id = $1 AND is_read = FALSE`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// MarkNotificationRead помечает уведомление прочитанным и возвращает
// количество изменённых строк. Запрос ограничен парой (id, user_id),
// чужое уведомление пометить нельзя.
func (s *Storage) MarkNotificationRead(ctx context.Context, notificationID, userID int) (int, error) {
	const op = "storage.MarkNotificationRead"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notifications
			  SET is_read = TRUE
			  WHERE id = $1 AND user_id = $2`
	result, err := s.DB.ExecContext(ctx, query, notificationID, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListNotifications возвращает уведомления пользователя, новые первыми.
func (s *Storage) ListNotifications(ctx context.Context, userID, limit int) ([]*models.Notification, error) {
	const op = "storage.ListNotifications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, title, message, link, type, is_read, created_at
			  FROM notifications
			  WHERE user_id = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Notification
	for rows.Next() {
		var item models.Notification
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Message,
			&item.Link, &item.Type, &item.IsRead, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
