// Package coachhub предоставляет маршруты для основного приложения.
package coachhub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/coachhub/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/coachhub/internal/http/handlers/auth/register"
	coachlist "github.com/magabrotheeeer/coachhub/internal/http/handlers/coach/list"
	coachread "github.com/magabrotheeeer/coachhub/internal/http/handlers/coach/read"
	"github.com/magabrotheeeer/coachhub/internal/http/handlers/coach/reviewcreate"
	"github.com/magabrotheeeer/coachhub/internal/http/handlers/coach/reviewlist"
	"github.com/magabrotheeeer/coachhub/internal/http/handlers/health"
	inquirycreate "github.com/magabrotheeeer/coachhub/internal/http/handlers/inquiry/create"
	inquirylist "github.com/magabrotheeeer/coachhub/internal/http/handlers/inquiry/list"
	"github.com/magabrotheeeer/coachhub/internal/http/handlers/inquiry/updatestatus"
	"github.com/magabrotheeeer/coachhub/internal/http/handlers/message/conversations"
	messagemarkread "github.com/magabrotheeeer/coachhub/internal/http/handlers/message/markread"
	"github.com/magabrotheeeer/coachhub/internal/http/handlers/message/poll"
	"github.com/magabrotheeeer/coachhub/internal/http/handlers/message/send"
	"github.com/magabrotheeeer/coachhub/internal/http/handlers/message/thread"
	messageunread "github.com/magabrotheeeer/coachhub/internal/http/handlers/message/unread"
	notificationlist "github.com/magabrotheeeer/coachhub/internal/http/handlers/notification/list"
	notificationmarkread "github.com/magabrotheeeer/coachhub/internal/http/handlers/notification/markread"
	notificationunread "github.com/magabrotheeeer/coachhub/internal/http/handlers/notification/unread"
	"github.com/magabrotheeeer/coachhub/internal/http/handlers/session/action"
	"github.com/magabrotheeeer/coachhub/internal/http/handlers/session/book"
	sessionlist "github.com/magabrotheeeer/coachhub/internal/http/handlers/session/list"
	"github.com/magabrotheeeer/coachhub/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/coachhub/internal/services/auth"
	coachservice "github.com/magabrotheeeer/coachhub/internal/services/coach"
	inquiryservice "github.com/magabrotheeeer/coachhub/internal/services/inquiry"
	messagingservice "github.com/magabrotheeeer/coachhub/internal/services/messaging"
	notificationservice "github.com/magabrotheeeer/coachhub/internal/services/notification"
	sessionservice "github.com/magabrotheeeer/coachhub/internal/services/session"
	"github.com/magabrotheeeer/coachhub/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	authService *authservice.AuthService,
	messagingService *messagingservice.MessagingService,
	notificationService *notificationservice.NotificationService,
	inquiryService *inquiryservice.InquiryService,
	sessionService *sessionservice.SessionService,
	coachService *coachservice.CoachService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, db, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/messages", send.New(logger, messagingService).ServeHTTP)
			r.Get("/messages/unread", messageunread.New(logger, messagingService).ServeHTTP)
			r.Get("/messages/conversations", conversations.New(logger, messagingService).ServeHTTP)
			r.Get("/messages/thread/{userID}", thread.New(logger, messagingService).ServeHTTP)
			r.Post("/messages/read/{userID}", messagemarkread.New(logger, messagingService).ServeHTTP)
			r.Get("/messages/poll", poll.New(logger, messagingService).ServeHTTP)

			r.Get("/notifications", notificationlist.New(logger, notificationService).ServeHTTP)
			r.Get("/notifications/unread", notificationunread.New(logger, notificationService).ServeHTTP)
			r.Post("/notifications/read/{id}", notificationmarkread.New(logger, notificationService).ServeHTTP)

			r.Post("/inquiries", inquirycreate.New(logger, inquiryService).ServeHTTP)
			r.Get("/inquiries/list", inquirylist.New(logger, inquiryService).ServeHTTP)
			r.Put("/inquiries/{id}/status", updatestatus.New(logger, inquiryService).ServeHTTP)

			r.Get("/coaches/list", coachlist.New(logger, coachService).ServeHTTP)
			r.Get("/coaches/{id}", coachread.New(logger, coachService).ServeHTTP)
			r.Get("/coaches/{id}/reviews", reviewlist.New(logger, coachService).ServeHTTP)
			r.Post("/coaches/{id}/reviews", reviewcreate.New(logger, coachService).ServeHTTP)

			r.Post("/sessions", book.New(logger, sessionService).ServeHTTP)
			r.Get("/sessions/list", sessionlist.New(logger, sessionService).ServeHTTP)
			r.Post("/sessions/action", action.New(logger, sessionService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
