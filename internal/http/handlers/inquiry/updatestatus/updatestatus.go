// Package updatestatus реализует HTTP-обработчик смены статуса заявки.
//
// Смена статуса разрешена только участникам заявки и порождает уведомление
// контрагенту в зависимости от нового статуса.
package updatestatus

import (
	"context"
	"encoding/json"
	"errors"
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
	inquiryservice "github.com/magabrotheeeer/coachhub/internal/services/inquiry"
)

// Handler обрабатывает HTTP-запросы на смену статуса заявки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики смены статуса заявки.
type Service interface {
	UpdateStatus(ctx context.Context, inquiryID int, status, actorUsername string) error
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
// @Summary Сменить статус заявки
// @Description Переводит заявку в новый статус, действие доступно только её участникам.
// @Tags Inquiries
// @Accept  json
// @Produce  json
// @Param id path int true "Идентификатор заявки"
// @Param request body models.DummyUpdateInquiryStatus true "Новый статус"
// @Success 200 {object} map[string]any "Статус обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Пользователь не участник заявки"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /inquiries/{id}/status [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.inquiry.updatestatus"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	inquiryID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req models.DummyUpdateInquiryStatus
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

	if err := h.service.UpdateStatus(r.Context(), inquiryID, req.Status, username); err != nil {
		log.Error("failed to update inquiry status", sl.Err(err))
		switch {
		case errors.Is(err, inquiryservice.ErrNotParticipant):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("not a participant of the inquiry"))
		case errors.Is(err, inquiryservice.ErrUnknownStatus):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown inquiry status"))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update inquiry status"))
		}
		return
	}

	log.Info("inquiry status updated", slog.Int("inquiry_id", inquiryID),
		slog.String("status", req.Status))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"inquiry_id": inquiryID,
		"status":     req.Status,
	}))
}
