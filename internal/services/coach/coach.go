// Package services содержит бизнес-логику витрины коучей: каталог,
// кешируемый профиль с тарифами и отзывы с пересчётом рейтинга.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/coachhub/internal/lib/sl"
	"github.com/magabrotheeeer/coachhub/internal/models"
)

// Время жизни кеша профиля коуча.
const coachCacheTTL = time.Hour

// CoachRepository определяет методы хранилища, нужные сервису витрины.
type CoachRepository interface {
	ListCoaches(ctx context.Context, limit, offset int) ([]*models.Coach, error)
	GetCoach(ctx context.Context, coachID int) (*models.Coach, error)
	ListServiceTiers(ctx context.Context, coachID int) ([]models.ServiceTier, error)
	CreateReview(ctx context.Context, review models.Review) (int, error)
	ListReviews(ctx context.Context, coachID int) ([]*models.Review, error)
	RefreshCoachRating(ctx context.Context, coachID int) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// CoachService реализует бизнес-логику витрины коучей.
type CoachService struct {
	repo  CoachRepository
	cache Cache
	log   *slog.Logger
}

// NewCoachService создает новый экземпляр CoachService.
func NewCoachService(repo CoachRepository, cache Cache, log *slog.Logger) *CoachService {
	return &CoachService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает страницу каталога коучей с тарифами, лучший рейтинг первым.
func (s *CoachService) List(ctx context.Context, limit, offset int) ([]*models.CoachProfile, error) {
	const op = "services.CoachService.List"

	coaches, err := s.repo.ListCoaches(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.CoachProfile, 0, len(coaches))
	for _, coach := range coaches {
		tiers, err := s.repo.ListServiceTiers(ctx, coach.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &models.CoachProfile{Coach: *coach, Tiers: tiers})
	}
	return result, nil
}

// Read возвращает профиль коуча с тарифами, сначала пробуя кеш.
func (s *CoachService) Read(ctx context.Context, coachID int) (*models.CoachProfile, error) {
	const op = "services.CoachService.Read"

	key := cacheKey(coachID)
	if s.cache != nil {
		var cached models.CoachProfile
		found, err := s.cache.Get(key, &cached)
		if err != nil {
			s.log.Warn("failed to read coach from cache", slog.Int("coach_id", coachID), sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	coach, err := s.repo.GetCoach(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	tiers, err := s.repo.ListServiceTiers(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	profile := &models.CoachProfile{Coach: *coach, Tiers: tiers}
	if s.cache != nil {
		if err := s.cache.Set(key, profile, coachCacheTTL); err != nil {
			s.log.Warn("failed to cache coach", slog.Int("coach_id", coachID), sl.Err(err))
		}
	}
	return profile, nil
}

// ListReviews возвращает отзывы о коуче, новые первыми.
func (s *CoachService) ListReviews(ctx context.Context, coachID int) ([]*models.Review, error) {
	const op = "services.CoachService.ListReviews"

	items, err := s.repo.ListReviews(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// AddReview добавляет отзыв ученика, пересчитывает денормализованный
// рейтинг коуча и сбрасывает кеш профиля.
func (s *CoachService) AddReview(ctx context.Context, learnerUsername string, coachID, rating int, comment string) (int, error) {
	const op = "services.CoachService.AddReview"

	learner, err := s.repo.GetUserByUsername(ctx, learnerUsername)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateReview(ctx, models.Review{
		CoachID:   coachID,
		LearnerID: learner.ID,
		Rating:    rating,
		Comment:   comment,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created review", slog.Int("id", id),
		slog.Int("coach_id", coachID), slog.Int("rating", rating))

	if err := s.repo.RefreshCoachRating(ctx, coachID); err != nil {
		s.log.Error("failed to refresh coach rating", slog.Int("coach_id", coachID), sl.Err(err))
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(cacheKey(coachID)); err != nil {
			s.log.Warn("failed to invalidate coach cache", slog.Int("coach_id", coachID), sl.Err(err))
		}
	}
	return id, nil
}

func cacheKey(coachID int) string {
	return fmt.Sprintf("coach:%d", coachID)
}
