package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/coachhub/internal/models"
)

// CreateInquiry вставляет новую заявку со статусом pending и возвращает её ID.
func (s *Storage) CreateInquiry(ctx context.Context, inq models.Inquiry) (int, error) {
	const op = "storage.CreateInquiry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO inquiries (learner_id, coach_id, message, status)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		inq.LearnerID, inq.CoachID, inq.Message, inq.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetInquiryInfo возвращает заявку вместе с именами ученика и коуча.
func (s *Storage) GetInquiryInfo(ctx context.Context, inquiryID int) (*models.InquiryInfo, error) {
	const op = "storage.GetInquiryInfo"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT i.id, i.learner_id, i.coach_id, i.message, i.status, i.created_at,
			         l.username, c.username
			  FROM inquiries i
			  JOIN users l ON l.id = i.learner_id
			  JOIN users c ON c.id = i.coach_id
			  WHERE i.id = $1`
	var info models.InquiryInfo
	row := s.DB.QueryRowContext(ctx, query, inquiryID)
	if err := row.Scan(&info.ID, &info.LearnerID, &info.CoachID, &info.Message,
		&info.Status, &info.CreatedAt, &info.LearnerName, &info.CoachName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &info, nil
}

// UpdateInquiryStatus меняет статус заявки и возвращает количество изменённых строк.
func (s *Storage) UpdateInquiryStatus(ctx context.Context, inquiryID int, status string) (int, error) {
	const op = "storage.UpdateInquiryStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE inquiries SET status = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, inquiryID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListInquiriesForUser возвращает заявки пользователя: для коуча — входящие,
// для остальных ролей — созданные им, с пагинацией.
func (s *Storage) ListInquiriesForUser(ctx context.Context, userID int, role string, limit, offset int) ([]*models.Inquiry, error) {
	const op = "storage.ListInquiriesForUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	column := "learner_id"
	if role == "coach" {
		column = "coach_id"
	}
	query := fmt.Sprintf(`SELECT id, learner_id, coach_id, message, status, created_at
			  FROM inquiries
			  WHERE %s = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`, column)
	rows, err := s.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Inquiry
	for rows.Next() {
		var item models.Inquiry
		if err := rows.Scan(&item.ID, &item.LearnerID, &item.CoachID, &item.Message,
			&item.Status, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
