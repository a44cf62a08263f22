// Package thread реализует HTTP-обработчик переписки с конкретным собеседником.
//
// Просмотр треда помечает входящие сообщения прочитанными, как при открытии
// страницы переписки.
package thread

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
	"github.com/magabrotheeeer/coachhub/internal/models"
)

// Handler обрабатывает запросы переписки с собеседником.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики треда переписки.
type Service interface {
	ListThread(ctx context.Context, userID, otherUserID int) []*models.Message
	MarkRead(ctx context.Context, receiverID, senderID int) bool
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Переписка с пользователем
// @Description Возвращает approved-сообщения пары по возрастанию времени и помечает входящие прочитанными.
// @Tags Messages
// @Produce  json
// @Param userID path int true "Идентификатор собеседника"
// @Success 200 {object} map[string]any "Сообщения треда"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /messages/thread/{userID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.thread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	otherUserID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		log.Error("failed to decode userID from url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode userID from url"))
		return
	}

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok {
		log.Error("user identification missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	messages := h.service.ListThread(r.Context(), userID, otherUserID)
	h.service.MarkRead(r.Context(), userID, otherUserID)

	log.Info("thread listed", slog.Int("other_user_id", otherUserID),
		slog.Int("count", len(messages)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"messages": messages,
	}))
}
