// Package markread реализует HTTP-обработчик отметки уведомления прочитанным.
//
// Запись меняется только если уведомление принадлежит текущему пользователю,
// чужой идентификатор даёт отказ без изменения строки.
package markread

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coachhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coachhub/internal/http/response"
)

// Handler обрабатывает запросы отметки уведомления прочитанным.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отметки уведомления.
type Service interface {
	MarkRead(ctx context.Context, notificationID, userID int) bool
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Пометить уведомление прочитанным
// @Description Помечает уведомление текущего пользователя прочитанным.
// @Tags Notifications
// @Produce  json
// @Param id path int true "Идентификатор уведомления"
// @Success 200 {object} map[string]any "Результат отметки"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Уведомление не найдено"
// @Security BearerAuth
// @Router /notifications/read/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.markread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	notificationID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok {
		log.Error("user identification missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if !h.service.MarkRead(r.Context(), notificationID, userID) {
		log.Error("notification not found or not owned", slog.Int("notification_id", notificationID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("notification not found"))
		return
	}

	log.Info("notification marked read", slog.Int("notification_id", notificationID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"success": true,
	}))
}
