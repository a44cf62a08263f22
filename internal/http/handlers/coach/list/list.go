// Package list реализует HTTP-обработчик каталога коучей.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coachhub/internal/http/response"
	"github.com/magabrotheeeer/coachhub/internal/models"
)

const (
	defaultLimit  = 20
	defaultOffset = 0
)

// Handler обрабатывает запросы каталога коучей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]*models.CoachProfile, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог коучей
// @Description Возвращает страницу каталога коучей с тарифами, лучший рейтинг первым.
// @Tags Coaches
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Каталог коучей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /coaches/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coach.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	offset := defaultOffset
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	coaches, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list coaches")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list coaches"))
		return
	}

	log.Info("coaches listed", slog.Int("count", len(coaches)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"coaches": coaches,
	}))
}
