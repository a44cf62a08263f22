// Package read реализует HTTP-обработчик профиля коуча.
package read

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

// Handler обрабатывает запросы профиля коуча.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения профиля.
type Service interface {
	Read(ctx context.Context, coachID int) (*models.CoachProfile, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль коуча
// @Description Возвращает профиль коуча с тарифами.
// @Tags Coaches
// @Produce  json
// @Param id path int true "Идентификатор коуча"
// @Success 200 {object} map[string]any "Профиль коуча"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /coaches/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coach.read"

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

	profile, err := h.service.Read(r.Context(), coachID)
	if err != nil {
		log.Error("failed to read coach", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read coach"))
		return
	}

	log.Info("coach read", slog.Int("coach_id", coachID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"coach": profile,
	}))
}
