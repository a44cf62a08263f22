// Package reviewcreate реализует HTTP-обработчик добавления отзыва о коуче.
package reviewcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/coachhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coachhub/internal/http/response"
	"github.com/magabrotheeeer/coachhub/internal/lib/sl"
	"github.com/magabrotheeeer/coachhub/internal/models"
)

// Handler обрабатывает HTTP-запросы на добавление отзыва.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики добавления отзыва.
type Service interface {
	AddReview(ctx context.Context, learnerUsername string, coachID, rating int, comment string) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить отзыв
// @Description Добавляет отзыв текущего ученика и пересчитывает рейтинг коуча.
// @Tags Coaches
// @Accept  json
// @Produce  json
// @Param id path int true "Идентификатор коуча"
// @Param request body models.DummyCreateReview true "Данные отзыва"
// @Success 200 {object} map[string]any "Отзыв создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /coaches/{id}/reviews [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coach.reviewcreate"

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

	var req models.DummyCreateReview
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.AddReview(r.Context(), username, coachID, req.Rating, req.Comment)
	if err != nil {
		log.Error("failed to create review", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create review"))
		return
	}

	log.Info("review created", slog.Int("id", id), slog.Int("coach_id", coachID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"review_id": id,
	}))
}
