// Package book реализует HTTP-обработчик бронирования занятия.
package book

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/coachhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coachhub/internal/http/response"
	"github.com/magabrotheeeer/coachhub/internal/lib/sl"
	"github.com/magabrotheeeer/coachhub/internal/models"
	sessionservice "github.com/magabrotheeeer/coachhub/internal/services/session"
)

// Handler обрабатывает HTTP-запросы на бронирование занятий.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики бронирования.
type Service interface {
	Book(ctx context.Context, learnerUsername string, coachID int, tierID *int, slotID int) (int, error)
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
// @Summary Забронировать занятие
// @Description Бронирует свободный слот расписания коуча и создает занятие.
// @Tags Sessions
// @Accept  json
// @Produce  json
// @Param request body models.DummyBookSession true "Данные бронирования"
// @Success 200 {object} map[string]any "Занятие создано"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Слот уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при бронировании"
// @Security BearerAuth
// @Router /sessions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.book"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyBookSession
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Int("coach_id", req.CoachID), slog.Int("slot_id", req.SlotID))

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

	id, err := h.service.Book(r.Context(), username, req.CoachID, req.TierID, req.SlotID)
	if err != nil {
		log.Error("failed to book session", sl.Err(err))
		switch {
		case errors.Is(err, sessionservice.ErrSlotTaken):
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("time slot is already booked"))
		case errors.Is(err, sessionservice.ErrSlotMismatch):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("time slot does not belong to the coach"))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not book session"))
		}
		return
	}

	log.Info("session booked", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"session_id": id,
	}))
}
