// Package send реализует HTTP-обработчик отправки личного сообщения.
//
// Обработчик принимает JSON с получателем и текстом, валидирует его и
// делегирует отправку сервису сообщений. Сообщение с запрещённым словом
// уходит на модерацию, о чём сообщается отправителю.
package send

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/coachhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coachhub/internal/http/response"
	"github.com/magabrotheeeer/coachhub/internal/lib/sl"
	"github.com/magabrotheeeer/coachhub/internal/models"
)

// Handler обрабатывает HTTP-запросы на отправку сообщений.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики сообщений
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики отправки сообщения.
type Service interface {
	Send(ctx context.Context, senderID, receiverID int, senderUsername, content string, inquiryID *int) models.SendResult
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
// @Summary Отправить сообщение
// @Description Отправляет личное сообщение. Текст с запрещённым словом попадает на модерацию.
// @Tags Messages
// @Accept  json
// @Produce  json
// @Param request body models.DummySendMessage true "Данные сообщения"
// @Success 200 {object} map[string]any "Сообщение создано"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при отправке"
// @Security BearerAuth
// @Router /messages [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.send"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummySendMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Int("receiver_id", req.ReceiverID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	senderID, ok := r.Context().Value(middlewarectx.UserID).(int)
	username, okName := r.Context().Value(middlewarectx.User).(string)
	if !ok || !okName {
		log.Error("user identification missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res := h.service.Send(r.Context(), senderID, req.ReceiverID, username, req.Content, req.InquiryID)
	if !res.Success {
		log.Error("failed to send message")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(res.Message))
		return
	}

	log.Info("message sent", slog.Int("id", res.MessageID),
		slog.Bool("needs_moderation", res.NeedsModeration))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message_id":       res.MessageID,
		"needs_moderation": res.NeedsModeration,
		"message":          res.Message,
	}))
}
