// Package unread реализует HTTP-обработчик счётчика непрочитанных уведомлений.
package unread

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coachhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coachhub/internal/http/response"
)

// Handler обрабатывает запросы счётчика непрочитанных уведомлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики счётчика уведомлений.
type Service interface {
	UnreadCount(ctx context.Context, userID int) int
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Счётчик непрочитанных уведомлений
// @Description Возвращает число непрочитанных уведомлений текущего пользователя.
// @Tags Notifications
// @Produce  json
// @Success 200 {object} map[string]any "Число непрочитанных"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /notifications/unread [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.unread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok {
		log.Error("user identification missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	count := h.service.UnreadCount(r.Context(), userID)

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"unread_count": count,
	}))
}
