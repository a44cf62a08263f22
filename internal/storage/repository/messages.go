package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/coachhub/internal/models"
)

// CreateMessage вставляет новое сообщение и возвращает его ID.
func (s *Storage) CreateMessage(ctx context.Context, msg models.Message) (int, error) {
	const op = "storage.CreateMessage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO messages (sender_id, receiver_id, inquiry_id, content, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		msg.SenderID, msg.ReceiverID, msg.InquiryID, msg.Content, msg.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CountUnreadMessages возвращает число непрочитанных approved-сообщений,
// адресованных пользователю.
func (s *Storage) CountUnreadMessages(ctx context.Context, receiverID int) (int, error) {
	const op = "storage.CountUnreadMessages"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM messages
			  WHERE receiver_id = $1 AND is_read = FALSE AND status = 'approved'`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, receiverID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListConversations возвращает по одной строке на каждого собеседника
// пользователя: непрочитанные, последнее сообщение и его время.
// Последняя строка пары определяется по максимальному id, идентификаторы
// сообщений монотонно растут.
func (s *Storage) ListConversations(ctx context.Context, userID int) ([]*models.ConversationSummary, error) {
	const op = "storage.ListConversations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.counterpart_id,
			         u.username,
			         COALESCE(NULLIF(u.profile_image, ''), 'default.jpg'),
			         c.unread_count,
			         l.content,
			         l.created_at
			  FROM (
			      SELECT CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS counterpart_id,
			             COUNT(*) FILTER (WHERE receiver_id = $1 AND is_read = FALSE) AS unread_count,
			             MAX(id) AS last_message_id
			      FROM messages
			      WHERE (sender_id = $1 OR receiver_id = $1) AND status = 'approved'
			      GROUP BY 1
			  ) c
			  JOIN messages l ON l.id = c.last_message_id
			  JOIN users u ON u.id = c.counterpart_id
			  ORDER BY l.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ConversationSummary
	for rows.Next() {
		var item models.ConversationSummary
		if err := rows.Scan(&item.CounterpartID, &item.CounterpartName, &item.CounterpartAvatar,
			&item.UnreadCount, &item.LastMessage, &item.LastMessageTime); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListThread возвращает все approved-сообщения между парой пользователей
// по возрастанию времени создания, с именем отправителя.
func (s *Storage) ListThread(ctx context.Context, userID, otherUserID int) ([]*models.Message, error) {
	const op = "storage.ListThread"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT m.id, m.sender_id, m.receiver_id, m.inquiry_id, m.content,
			         m.status, m.is_read, m.created_at, u.username
			  FROM messages m
			  JOIN users u ON u.id = m.sender_id
			  WHERE ((m.sender_id = $1 AND m.receiver_id = $2)
			      OR (m.sender_id = $2 AND m.receiver_id = $1))
			    AND m.status = 'approved'
			  ORDER BY m.created_at ASC, m.id ASC`
	rows, err := s.DB.QueryContext(ctx, query, userID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Message
	for rows.Next() {
		var item models.Message
		if err := rows.Scan(&item.ID, &item.SenderID, &item.ReceiverID, &item.InquiryID,
			&item.Content, &item.Status, &item.IsRead, &item.CreatedAt,
			&item.SenderUsername); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkMessagesRead помечает прочитанными все approved-сообщения от sender
// к receiver и возвращает количество изменённых строк. Повторный вызов
// не меняет состояние.
func (s *Storage) MarkMessagesRead(ctx context.Context, receiverID, senderID int) (int, error) {
	const op = "storage.MarkMessagesRead"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE messages
			  SET is_read = TRUE
			  WHERE receiver_id = $1 AND sender_id = $2
			    AND status = 'approved' AND is_read = FALSE`
	result, err := s.DB.ExecContext(ctx, query, receiverID, senderID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListMessagesAfter возвращает approved-сообщения треда заявки с id больше
// lastID по возрастанию id. Выдача ограничена участниками переписки.
func (s *Storage) ListMessagesAfter(ctx context.Context, userID, inquiryID, lastID int) ([]*models.Message, error) {
	const op = "storage.ListMessagesAfter"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT m.id, m.sender_id, m.receiver_id, m.inquiry_id, m.content,
			         m.status, m.is_read, m.created_at, u.username
			  FROM messages m
			  JOIN users u ON u.id = m.sender_id
			  WHERE m.inquiry_id = $1 AND m.id > $2
			    AND (m.sender_id = $3 OR m.receiver_id = $3)
			    AND m.status = 'approved'
			  ORDER BY m.id ASC`
	rows, err := s.DB.QueryContext(ctx, query, inquiryID, lastID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Message
	for rows.Next() {
		var item models.Message
		if err := rows.Scan(&item.ID, &item.SenderID, &item.ReceiverID, &item.InquiryID,
			&item.Content, &item.Status, &item.IsRead, &item.CreatedAt,
			&item.SenderUsername); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
