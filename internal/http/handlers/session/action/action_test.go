package action

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/coachhub/internal/http/middlewarectx"
)

// MockService реализует интерфейс action.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateStatus(ctx context.Context, sessionID int, status, actorUsername string) error {
	args := m.Called(ctx, sessionID, status, actorUsername)
	return args.Error(0)
}

func TestActionHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name         string
		form         url.Values
		authorized   bool
		setupMock    func(*MockService)
		wantLocation string
	}{
		{
			name: "успешная отмена ведёт на redirect_on_success",
			form: url.Values{
				"action":              {"update_status"},
				"session_id":          {"9"},
				"status":              {"cancelled"},
				"redirect_on_success": {"/sessions?cancelled=1"},
				"return_url":          {"/sessions/9"},
			},
			authorized: true,
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, 9, "cancelled", "testuser").Return(nil)
			},
			wantLocation: "/sessions?cancelled=1",
		},
		{
			name: "ошибка сервиса возвращает на return_url",
			form: url.Values{
				"action":              {"update_status"},
				"session_id":          {"9"},
				"status":              {"completed"},
				"redirect_on_success": {"/sessions?done=1"},
				"return_url":          {"/sessions/9"},
			},
			authorized: true,
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, 9, "completed", "testuser").
					Return(errors.New("db down"))
			},
			wantLocation: "/sessions/9",
		},
		{
			name: "неизвестное действие формы",
			form: url.Values{
				"action":     {"delete"},
				"session_id": {"9"},
				"status":     {"cancelled"},
				"return_url": {"/sessions/9"},
			},
			authorized:   true,
			setupMock:    func(_ *MockService) {},
			wantLocation: "/sessions/9",
		},
		{
			name: "некорректный session_id",
			form: url.Values{
				"action":     {"update_status"},
				"session_id": {"abc"},
				"status":     {"cancelled"},
				"return_url": {"/sessions/9"},
			},
			authorized:   true,
			setupMock:    func(_ *MockService) {},
			wantLocation: "/sessions/9",
		},
		{
			name: "без return_url используется страница занятий",
			form: url.Values{
				"action":     {"update_status"},
				"session_id": {"abc"},
				"status":     {"cancelled"},
			},
			authorized:   true,
			setupMock:    func(_ *MockService) {},
			wantLocation: "/sessions",
		},
		{
			name: "отсутствует авторизация",
			form: url.Values{
				"action":     {"update_status"},
				"session_id": {"9"},
				"status":     {"cancelled"},
				"return_url": {"/sessions/9"},
			},
			authorized:   false,
			setupMock:    func(_ *MockService) {},
			wantLocation: "/sessions/9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/action",
				strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.authorized {
				ctx = context.WithValue(ctx, middlewarectx.User, "testuser")
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			mockService.AssertExpectations(t)
		})
	}
}
