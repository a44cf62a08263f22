package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/coachhub/internal/models"
)

// CreateReview вставляет новый отзыв и возвращает его ID.
func (s *Storage) CreateReview(ctx context.Context, review models.Review) (int, error) {
	const op = "storage.CreateReview"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO reviews (coach_id, learner_id, rating, comment)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		review.CoachID, review.LearnerID, review.Rating, review.Comment).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListReviews возвращает отзывы о коуче вместе с именами авторов, новые первыми.
func (s *Storage) ListReviews(ctx context.Context, coachID int) ([]*models.Review, error) {
	const op = "storage.ListReviews"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.coach_id, r.learner_id, u.username, r.rating, r.comment, r.created_at
			  FROM reviews r
			  JOIN users u ON u.id = r.learner_id
			  WHERE r.coach_id = $1
			  ORDER BY r.created_at DESC, r.id DESC`
	rows, err := s.DB.QueryContext(ctx, query, coachID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Review
	for rows.Next() {
		var item models.Review
		if err := rows.Scan(&item.ID, &item.CoachID, &item.LearnerID, &item.LearnerName,
			&item.Rating, &item.Comment, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RefreshCoachRating пересчитывает средний рейтинг коуча по отзывам.
func (s *Storage) RefreshCoachRating(ctx context.Context, coachID int) error {
	const op = "storage.RefreshCoachRating"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE coaches
			  SET rating = COALESCE((SELECT AVG(rating)::NUMERIC(3,2) FROM reviews WHERE coach_id = $1), 0)
			  WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, coachID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
