package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/magabrotheeeer/coachhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateSession(ctx context.Context, sess models.Session) (int, error) {
	args := m.Called(ctx, sess)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetSessionInfo(ctx context.Context, sessionID int) (*models.SessionInfo, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionInfo), args.Error(1)
}
func (m *RepoMock) UpdateSessionStatus(ctx context.Context, sessionID int, status string) (int, error) {
	args := m.Called(ctx, sessionID, status)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListSessionsForUser(ctx context.Context, userID, limit, offset int) ([]*models.Session, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}
func (m *RepoMock) GetTimeSlot(ctx context.Context, slotID int) (*models.TimeSlot, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimeSlot), args.Error(1)
}
func (m *RepoMock) BookTimeSlot(ctx context.Context, slotID int) (int, error) {
	args := m.Called(ctx, slotID)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) NotifySessionUpdate(ctx context.Context, sessionID int, action string, notifyUserID int) {
	m.Called(ctx, sessionID, action, notifyUserID)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSessionService_Book(t *testing.T) {
	learner := &models.User{ID: 11, Username: "alice", Role: "learner"}
	starts := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	slot := &models.TimeSlot{ID: 40, CoachID: 22, StartsAt: starts}

	t.Run("books free slot and notifies coach", func(t *testing.T) {
		repo := new(RepoMock)
		notifier := new(NotifierMock)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(learner, nil).Once()
		repo.On("GetTimeSlot", mock.Anything, 40).Return(slot, nil).Once()
		repo.On("BookTimeSlot", mock.Anything, 40).Return(1, nil).Once()
		repo.On("CreateSession", mock.Anything, mock.MatchedBy(func(sess models.Session) bool {
			return sess.CoachID == 22 && sess.LearnerID == 11 &&
				sess.ScheduledAt.Equal(starts) && sess.Status == models.SessionStatusScheduled
		})).Return(9, nil).Once()
		notifier.On("NotifySessionUpdate", mock.Anything, 9, models.SessionActionScheduled, 22).Once()

		svc := NewSessionService(repo, notifier, newNoopLogger())
		id, err := svc.Book(context.Background(), "alice", 22, nil, 40)

		assert.NoError(t, err)
		assert.Equal(t, 9, id)
		repo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("slot already booked", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(learner, nil).Once()
		repo.On("GetTimeSlot", mock.Anything, 40).Return(slot, nil).Once()
		repo.On("BookTimeSlot", mock.Anything, 40).Return(0, nil).Once()

		svc := NewSessionService(repo, nil, newNoopLogger())
		_, err := svc.Book(context.Background(), "alice", 22, nil, 40)

		assert.ErrorIs(t, err, ErrSlotTaken)
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
	})

	t.Run("slot belongs to another coach", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(learner, nil).Once()
		repo.On("GetTimeSlot", mock.Anything, 40).Return(slot, nil).Once()

		svc := NewSessionService(repo, nil, newNoopLogger())
		_, err := svc.Book(context.Background(), "alice", 99, nil, 40)

		assert.ErrorIs(t, err, ErrSlotMismatch)
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "BookTimeSlot", mock.Anything, mock.Anything)
	})

	t.Run("create session failure bubbles up", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(learner, nil).Once()
		repo.On("GetTimeSlot", mock.Anything, 40).Return(slot, nil).Once()
		repo.On("BookTimeSlot", mock.Anything, 40).Return(1, nil).Once()
		repo.On("CreateSession", mock.Anything, mock.Anything).Return(0, errors.New("db down")).Once()

		svc := NewSessionService(repo, nil, newNoopLogger())
		_, err := svc.Book(context.Background(), "alice", 22, nil, 40)

		assert.Error(t, err)
		repo.AssertExpectations(t)
	})
}

func TestSessionService_UpdateStatus(t *testing.T) {
	info := &models.SessionInfo{
		Session:     models.Session{ID: 9, CoachID: 22, LearnerID: 11, Status: models.SessionStatusScheduled},
		CoachName:   "bob",
		LearnerName: "alice",
	}
	learner := &models.User{ID: 11, Username: "alice"}
	coach := &models.User{ID: 22, Username: "bob"}

	t.Run("learner cancels, coach notified", func(t *testing.T) {
		repo := new(RepoMock)
		notifier := new(NotifierMock)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(learner, nil).Once()
		repo.On("GetSessionInfo", mock.Anything, 9).Return(info, nil).Once()
		repo.On("UpdateSessionStatus", mock.Anything, 9, models.SessionStatusCancelled).Return(1, nil).Once()
		notifier.On("NotifySessionUpdate", mock.Anything, 9, models.SessionActionCancelled, 22).Once()

		svc := NewSessionService(repo, notifier, newNoopLogger())
		err := svc.UpdateStatus(context.Background(), 9, models.SessionStatusCancelled, "alice")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("coach completes, learner gets generic update", func(t *testing.T) {
		repo := new(RepoMock)
		notifier := new(NotifierMock)
		repo.On("GetUserByUsername", mock.Anything, "bob").Return(coach, nil).Once()
		repo.On("GetSessionInfo", mock.Anything, 9).Return(info, nil).Once()
		repo.On("UpdateSessionStatus", mock.Anything, 9, models.SessionStatusCompleted).Return(1, nil).Once()
		notifier.On("NotifySessionUpdate", mock.Anything, 9, "completed", 11).Once()

		svc := NewSessionService(repo, notifier, newNoopLogger())
		err := svc.UpdateStatus(context.Background(), 9, models.SessionStatusCompleted, "bob")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("outsider cannot change status", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByUsername", mock.Anything, "mallory").
			Return(&models.User{ID: 33, Username: "mallory"}, nil).Once()
		repo.On("GetSessionInfo", mock.Anything, 9).Return(info, nil).Once()

		svc := NewSessionService(repo, nil, newNoopLogger())
		err := svc.UpdateStatus(context.Background(), 9, models.SessionStatusCancelled, "mallory")

		assert.ErrorIs(t, err, ErrNotParticipant)
		repo.AssertExpectations(t)
	})

	t.Run("scheduled is not a valid target status", func(t *testing.T) {
		repo := new(RepoMock)

		svc := NewSessionService(repo, nil, newNoopLogger())
		err := svc.UpdateStatus(context.Background(), 9, models.SessionStatusScheduled, "bob")

		assert.ErrorIs(t, err, ErrUnknownStatus)
		repo.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything)
	})
}
