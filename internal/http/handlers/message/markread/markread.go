// Package markread реализует HTTP-обработчик отметки сообщений прочитанными.
//
// Операция идемпотентна: повторный вызов для уже прочитанных сообщений
// не меняет состояние и также завершается успехом.
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

// Handler обрабатывает запросы отметки сообщений прочитанными.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отметки о прочтении.
type Service interface {
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
// @Summary Пометить сообщения прочитанными
// @Description Помечает прочитанными все approved-сообщения от указанного отправителя текущему пользователю.
// @Tags Messages
// @Produce  json
// @Param userID path int true "Идентификатор отправителя"
// @Success 200 {object} map[string]any "Результат отметки"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /messages/read/{userID} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.markread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	senderID, err := strconv.Atoi(chi.URLParam(r, "userID"))
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

	success := h.service.MarkRead(r.Context(), userID, senderID)

	log.Info("messages marked read", slog.Int("sender_id", senderID), slog.Bool("success", success))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"success": success,
	}))
}
