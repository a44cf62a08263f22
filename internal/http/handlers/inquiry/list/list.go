// Package list реализует HTTP-обработчик списка заявок пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coachhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coachhub/internal/http/response"
	"github.com/magabrotheeeer/coachhub/internal/models"
)

const (
	defaultLimit  = 20
	defaultOffset = 0
)

// Handler обрабатывает запросы списка заявок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка заявок.
type Service interface {
	ListForUser(ctx context.Context, username, role string, limit, offset int) ([]*models.Inquiry, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список заявок
// @Description Возвращает заявки текущего пользователя: отправленные для ученика, полученные для коуча.
// @Tags Inquiries
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Список заявок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /inquiries/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.inquiry.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, okName := r.Context().Value(middlewarectx.User).(string)
	role, okRole := r.Context().Value(middlewarectx.Role).(string)
	if !okName || !okRole {
		log.Error("user identification missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	offset := defaultOffset
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	inquiries, err := h.service.ListForUser(r.Context(), username, role, limit, offset)
	if err != nil {
		log.Error("failed to list inquiries")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list inquiries"))
		return
	}

	log.Info("inquiries listed", slog.Int("count", len(inquiries)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"inquiries": inquiries,
	}))
}
