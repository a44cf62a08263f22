// Package poll реализует HTTP-обработчик короткого поллинга треда заявки.
//
// Клиент передаёт идентификатор заявки и последний увиденный id сообщения,
// в ответе приходят только более новые approved-сообщения и новый last_id.
// Формат ответа фиксирован для браузерного поллера и не использует общий
// конверт response.Response.
package poll

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coachhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coachhub/internal/http/response"
	"github.com/magabrotheeeer/coachhub/internal/lib/sl"
	"github.com/magabrotheeeer/coachhub/internal/models"
)

// Response формат ответа поллинг-эндпоинта.
type Response struct {
	Success  bool                 `json:"success"`
	Messages []models.PollMessage `json:"messages"`
	LastID   int                  `json:"last_id"`
	Error    string               `json:"error,omitempty"`
}

// Handler обрабатывает поллинг-запросы треда заявки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поллинга сообщений.
type Service interface {
	PollSince(ctx context.Context, userID, inquiryID, lastID int) ([]models.PollMessage, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Поллинг новых сообщений треда
// @Description Возвращает approved-сообщения треда заявки с id больше last_id и новый last_id.
// @Tags Messages
// @Produce  json
// @Param request_id query int true "Идентификатор заявки"
// @Param last_id query int true "Последний увиденный id сообщения"
// @Success 200 {object} Response "Новые сообщения"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /messages/poll [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.poll"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	inquiryID, err := strconv.Atoi(r.URL.Query().Get("request_id"))
	if err != nil {
		log.Error("failed to decode request_id query param")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request_id"))
		return
	}
	lastID, err := strconv.Atoi(r.URL.Query().Get("last_id"))
	if err != nil {
		log.Error("failed to decode last_id query param")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid last_id"))
		return
	}

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok {
		log.Error("user identification missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	messages, newLastID, err := h.service.PollSince(r.Context(), userID, inquiryID, lastID)
	if err != nil {
		log.Error("failed to poll messages", sl.Err(err))
		render.JSON(w, r, Response{
			Success:  false,
			Messages: []models.PollMessage{},
			LastID:   lastID,
			Error:    "could not load messages",
		})
		return
	}

	render.JSON(w, r, Response{
		Success:  true,
		Messages: messages,
		LastID:   newLastID,
	})
}
