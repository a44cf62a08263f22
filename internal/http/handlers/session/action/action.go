// Package action реализует HTTP-обработчик формы изменения занятия.
//
// В отличие от остальных обработчиков, принимает HTML-форму, а не JSON:
// страница занятий отправляет полную форму и ждёт редирект. Успех ведёт
// на redirect_on_success, ошибка возвращает на return_url.
package action

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/coachhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coachhub/internal/lib/sl"
)

// Handler обрабатывает форму действий над занятием.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики смены статуса занятия.
type Service interface {
	UpdateStatus(ctx context.Context, sessionID int, status, actorUsername string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Действие над занятием (HTML-форма)
// @Description Принимает форму action=update_status и выполняет полный редирект после обработки.
// @Tags Sessions
// @Accept  x-www-form-urlencoded
// @Param action formData string true "Действие, поддерживается update_status"
// @Param session_id formData int true "Идентификатор занятия"
// @Param status formData string true "Новый статус: completed или cancelled"
// @Param redirect_on_success formData string false "Адрес перехода при успехе"
// @Param return_url formData string false "Адрес возврата при ошибке"
// @Success 303 "Редирект после обработки"
// @Security BearerAuth
// @Router /sessions/action [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.action"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		http.Redirect(w, r, "/sessions", http.StatusSeeOther)
		return
	}

	returnURL := r.PostFormValue("return_url")
	if returnURL == "" {
		returnURL = "/sessions"
	}
	successURL := r.PostFormValue("redirect_on_success")
	if successURL == "" {
		successURL = returnURL
	}

	if r.PostFormValue("action") != "update_status" {
		log.Error("unsupported form action", slog.String("action", r.PostFormValue("action")))
		http.Redirect(w, r, returnURL, http.StatusSeeOther)
		return
	}

	sessionID, err := strconv.Atoi(r.PostFormValue("session_id"))
	if err != nil {
		log.Error("failed to decode session_id from form")
		http.Redirect(w, r, returnURL, http.StatusSeeOther)
		return
	}
	status := r.PostFormValue("status")

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		http.Redirect(w, r, returnURL, http.StatusSeeOther)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), sessionID, status, username); err != nil {
		log.Error("failed to update session status", sl.Err(err))
		http.Redirect(w, r, returnURL, http.StatusSeeOther)
		return
	}

	log.Info("session status updated", slog.Int("session_id", sessionID),
		slog.String("status", status))
	http.Redirect(w, r, successURL, http.StatusSeeOther)
}
