// Package reviewlist реализует HTTP-обработчик списка отзывов о коуче.
package reviewlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coachhub/internal/http/response"
	"github.com/magabrotheeeer/coachhub/internal/lib/sl"
	"github.com/magabrotheeeer/coachhub/internal/models"
)

// Handler обрабатывает запросы списка отзывов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка отзывов.
type Service interface {
	ListReviews(ctx context.Context, coachID int) ([]*models.Review, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отзывы о коуче
// @Description Возвращает отзывы учеников о коуче, новые первыми.
// @Tags Coaches
// @Produce  json
// @Param id path int true "Идентификатор коуча"
// @Success 200 {object} map[string]any "Список отзывов"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /coaches/{id}/reviews [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coach.reviewlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	coachID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	reviews, err := h.service.ListReviews(r.Context(), coachID)
	if err != nil {
		log.Error("failed to list reviews", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list reviews"))
		return
	}

	log.Info("reviews listed", slog.Int("coach_id", coachID), slog.Int("count", len(reviews)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"reviews": reviews,
	}))
}
