// Package conversations реализует HTTP-обработчик списка диалогов пользователя.
package conversations

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coachhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coachhub/internal/http/response"
	"github.com/magabrotheeeer/coachhub/internal/models"
)

// Handler обрабатывает запросы списка диалогов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка диалогов.
type Service interface {
	ListConversations(ctx context.Context, userID int) []*models.ConversationSummary
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список диалогов
// @Description Возвращает диалоги пользователя с числом непрочитанных и последним сообщением, новые первыми.
// @Tags Messages
// @Produce  json
// @Success 200 {object} map[string]any "Список диалогов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /messages/conversations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.conversations"

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

	conversations := h.service.ListConversations(r.Context(), userID)

	log.Info("conversations listed", slog.Int("count", len(conversations)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"conversations": conversations,
	}))
}
