package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/coachhub/internal/models"
)

// ListCoaches возвращает профили коучей для витрины, с пагинацией.
func (s *Storage) ListCoaches(ctx context.Context, limit, offset int) ([]*models.Coach, error) {
	const op = "storage.ListCoaches"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.user_id, u.username, c.headline, c.bio, c.hourly_rate,
			         c.rating, c.created_at
			  FROM coaches c
			  JOIN users u ON u.id = c.user_id
			  ORDER BY c.rating DESC, c.id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Coach
	for rows.Next() {
		var item models.Coach
		if err := rows.Scan(&item.ID, &item.UserID, &item.Username, &item.Headline,
			&item.Bio, &item.HourlyRate, &item.Rating, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCoach возвращает профиль коуча по его ID.
func (s *Storage) GetCoach(ctx context.Context, coachID int) (*models.Coach, error) {
	const op = "storage.GetCoach"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.user_id, u.username, c.headline, c.bio, c.hourly_rate,
			         c.rating, c.created_at
			  FROM coaches c
			  JOIN users u ON u.id = c.user_id
			  WHERE c.id = $1`
	var coach models.Coach
	row := s.DB.QueryRowContext(ctx, query, coachID)
	if err := row.Scan(&coach.ID, &coach.UserID, &coach.Username, &coach.Headline,
		&coach.Bio, &coach.HourlyRate, &coach.Rating, &coach.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &coach, nil
}

// ListServiceTiers возвращает тарифы коуча.
func (s *Storage) ListServiceTiers(ctx context.Context, coachID int) ([]models.ServiceTier, error) {
	const op = "storage.ListServiceTiers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, coach_id, name, description, price, sessions_count
			  FROM service_tiers
			  WHERE coach_id = $1
			  ORDER BY price`
	rows, err := s.DB.QueryContext(ctx, query, coachID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.ServiceTier
	for rows.Next() {
		var item models.ServiceTier
		if err := rows.Scan(&item.ID, &item.CoachID, &item.Name, &item.Description,
			&item.Price, &item.SessionsCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
