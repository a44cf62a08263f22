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

func (m *RepoMock) CreateMessage(ctx context.Context, msg models.Message) (int, error) {
	args := m.Called(ctx, msg)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) CountUnreadMessages(ctx context.Context, receiverID int) (int, error) {
	args := m.Called(ctx, receiverID)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListConversations(ctx context.Context, userID int) ([]*models.ConversationSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ConversationSummary), args.Error(1)
}
func (m *RepoMock) ListThread(ctx context.Context, userID, otherUserID int) ([]*models.Message, error) {
	args := m.Called(ctx, userID, otherUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}
func (m *RepoMock) MarkMessagesRead(ctx context.Context, receiverID, senderID int) (int, error) {
	args := m.Called(ctx, receiverID, senderID)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListMessagesAfter(ctx context.Context, userID, inquiryID, lastID int) ([]*models.Message, error) {
	args := m.Called(ctx, userID, inquiryID, lastID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}
func (m *RepoMock) ListBannedWords(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) NotifyNewMessage(ctx context.Context, userID, fromUserID int, fromUsername string, conversationID int) {
	m.Called(ctx, userID, fromUserID, fromUsername, conversationID)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestMessagingService_Send(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		setupMocks     func(r *RepoMock, c *CacheMock, n *NotifierMock)
		wantSuccess    bool
		wantModeration bool
		wantID         int
		wantMessage    string
	}{
		{
			name:    "clean message approved and notified",
			content: "hello, when is our next session?",
			setupMocks: func(r *RepoMock, c *CacheMock, n *NotifierMock) {
				c.On("Get", "moderation:banned_words", mock.Anything).Return(false, nil).Once()
				r.On("ListBannedWords", mock.Anything).Return([]string{"spam", "scam"}, nil).Once()
				c.On("Set", "moderation:banned_words", []string{"spam", "scam"}, 5*time.Minute).Return(nil).Once()
				r.On("CreateMessage", mock.Anything, mock.MatchedBy(func(msg models.Message) bool {
					return msg.Status == models.MessageStatusApproved && msg.ReceiverID == 2
				})).Return(10, nil).Once()
				n.On("NotifyNewMessage", mock.Anything, 2, 1, "alice", 1).Once()
			},
			wantSuccess: true,
			wantID:      10,
			wantMessage: "message sent",
		},
		{
			name:    "banned word goes to moderation",
			content: "contact me on Telegram instead",
			setupMocks: func(r *RepoMock, c *CacheMock, n *NotifierMock) {
				c.On("Get", "moderation:banned_words", mock.Anything).Return(false, nil).Once()
				r.On("ListBannedWords", mock.Anything).Return([]string{"telegram"}, nil).Once()
				c.On("Set", "moderation:banned_words", []string{"telegram"}, 5*time.Minute).Return(nil).Once()
				r.On("CreateMessage", mock.Anything, mock.MatchedBy(func(msg models.Message) bool {
					return msg.Status == models.MessageStatusPending
				})).Return(11, nil).Once()
			},
			wantSuccess:    true,
			wantModeration: true,
			wantID:         11,
			wantMessage:    "message is awaiting moderation",
		},
		{
			name:    "banned word inside larger token",
			content: "this is SPAM-my text",
			setupMocks: func(r *RepoMock, c *CacheMock, n *NotifierMock) {
				c.On("Get", "moderation:banned_words", mock.Anything).Return(false, nil).Once()
				r.On("ListBannedWords", mock.Anything).Return([]string{"spam"}, nil).Once()
				c.On("Set", "moderation:banned_words", []string{"spam"}, 5*time.Minute).Return(nil).Once()
				r.On("CreateMessage", mock.Anything, mock.MatchedBy(func(msg models.Message) bool {
					return msg.Status == models.MessageStatusPending
				})).Return(12, nil).Once()
			},
			wantSuccess:    true,
			wantModeration: true,
			wantID:         12,
			wantMessage:    "message is awaiting moderation",
		},
		{
			name:    "banned words unavailable, message still sent",
			content: "spam spam spam",
			setupMocks: func(r *RepoMock, c *CacheMock, n *NotifierMock) {
				c.On("Get", "moderation:banned_words", mock.Anything).Return(false, nil).Once()
				r.On("ListBannedWords", mock.Anything).Return(nil, errors.New("db down")).Once()
				r.On("CreateMessage", mock.Anything, mock.MatchedBy(func(msg models.Message) bool {
					return msg.Status == models.MessageStatusApproved
				})).Return(13, nil).Once()
				n.On("NotifyNewMessage", mock.Anything, 2, 1, "alice", 1).Once()
			},
			wantSuccess: true,
			wantID:      13,
			wantMessage: "message sent",
		},
		{
			name:    "storage failure reports fixed text",
			content: "hello",
			setupMocks: func(r *RepoMock, c *CacheMock, n *NotifierMock) {
				c.On("Get", "moderation:banned_words", mock.Anything).Return(false, nil).Once()
				r.On("ListBannedWords", mock.Anything).Return([]string{}, nil).Once()
				c.On("Set", "moderation:banned_words", []string{}, 5*time.Minute).Return(nil).Once()
				r.On("CreateMessage", mock.Anything, mock.Anything).
					Return(0, errors.New("pq: connection refused")).Once()
			},
			wantSuccess: false,
			wantMessage: "could not send message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			notifier := new(NotifierMock)
			tt.setupMocks(repo, cache, notifier)

			svc := NewMessagingService(repo, cache, notifier, newNoopLogger())
			res := svc.Send(context.Background(), 1, 2, "alice", tt.content, nil)

			assert.Equal(t, tt.wantSuccess, res.Success)
			assert.Equal(t, tt.wantModeration, res.NeedsModeration)
			assert.Equal(t, tt.wantID, res.MessageID)
			assert.Equal(t, tt.wantMessage, res.Message)
			assert.NotContains(t, res.Message, "pq:")

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestMessagingService_UnreadCount(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		want       int
	}{
		{
			name: "returns count",
			setupMocks: func(r *RepoMock) {
				r.On("CountUnreadMessages", mock.Anything, 7).Return(3, nil).Once()
			},
			want: 3,
		},
		{
			name: "storage error degrades to zero",
			setupMocks: func(r *RepoMock) {
				r.On("CountUnreadMessages", mock.Anything, 7).Return(0, errors.New("db down")).Once()
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)

			svc := NewMessagingService(repo, nil, nil, newNoopLogger())
			assert.Equal(t, tt.want, svc.UnreadCount(context.Background(), 7))
			repo.AssertExpectations(t)
		})
	}
}

func TestMessagingService_ListConversations(t *testing.T) {
	t.Run("storage error degrades to empty list", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListConversations", mock.Anything, 7).Return(nil, errors.New("db down")).Once()

		svc := NewMessagingService(repo, nil, nil, newNoopLogger())
		got := svc.ListConversations(context.Background(), 7)

		assert.NotNil(t, got)
		assert.Empty(t, got)
		repo.AssertExpectations(t)
	})

	t.Run("returns conversations", func(t *testing.T) {
		conversations := []*models.ConversationSummary{
			{CounterpartID: 2, CounterpartName: "bob", UnreadCount: 1, LastMessage: "hi"},
		}
		repo := new(RepoMock)
		repo.On("ListConversations", mock.Anything, 7).Return(conversations, nil).Once()

		svc := NewMessagingService(repo, nil, nil, newNoopLogger())
		got := svc.ListConversations(context.Background(), 7)

		assert.Len(t, got, 1)
		assert.Equal(t, "bob", got[0].CounterpartName)
		repo.AssertExpectations(t)
	})
}

func TestMessagingService_MarkRead(t *testing.T) {
	t.Run("zero rows is still success", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("MarkMessagesRead", mock.Anything, 1, 2).Return(0, nil).Once()

		svc := NewMessagingService(repo, nil, nil, newNoopLogger())
		assert.True(t, svc.MarkRead(context.Background(), 1, 2))
		repo.AssertExpectations(t)
	})

	t.Run("storage error returns false", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("MarkMessagesRead", mock.Anything, 1, 2).Return(0, errors.New("db down")).Once()

		svc := NewMessagingService(repo, nil, nil, newNoopLogger())
		assert.False(t, svc.MarkRead(context.Background(), 1, 2))
		repo.AssertExpectations(t)
	})
}

func TestMessagingService_PollSince(t *testing.T) {
	created := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)

	t.Run("maps messages and tracks max id", func(t *testing.T) {
		messages := []*models.Message{
			{ID: 6, SenderID: 1, SenderUsername: "alice", Content: "first", CreatedAt: created},
			{ID: 7, SenderID: 2, SenderUsername: "bob", Content: "second", CreatedAt: created},
		}
		repo := new(RepoMock)
		repo.On("ListMessagesAfter", mock.Anything, 1, 9, 5).Return(messages, nil).Once()

		svc := NewMessagingService(repo, nil, nil, newNoopLogger())
		got, lastID, err := svc.PollSince(context.Background(), 1, 9, 5)

		assert.NoError(t, err)
		assert.Equal(t, 7, lastID)
		assert.Len(t, got, 2)
		assert.True(t, got[0].IsSelf)
		assert.False(t, got[1].IsSelf)
		assert.Equal(t, "2026-03-14 12:30:00", got[0].CreatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("no new messages keeps last id", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListMessagesAfter", mock.Anything, 1, 9, 5).Return([]*models.Message{}, nil).Once()

		svc := NewMessagingService(repo, nil, nil, newNoopLogger())
		got, lastID, err := svc.PollSince(context.Background(), 1, 9, 5)

		assert.NoError(t, err)
		assert.Equal(t, 5, lastID)
		assert.Empty(t, got)
		repo.AssertExpectations(t)
	})

	t.Run("storage error is returned", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListMessagesAfter", mock.Anything, 1, 9, 5).Return(nil, errors.New("db down")).Once()

		svc := NewMessagingService(repo, nil, nil, newNoopLogger())
		_, _, err := svc.PollSince(context.Background(), 1, 9, 5)

		assert.Error(t, err)
		repo.AssertExpectations(t)
	})
}

func TestMessagingService_BannedWordsFromCache(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", "moderation:banned_words", mock.Anything).Run(func(args mock.Arguments) {
		out := args.Get(1).(*[]string)
		*out = []string{"whatsapp"}
	}).Return(true, nil).Once()
	repo.On("CreateMessage", mock.Anything, mock.MatchedBy(func(msg models.Message) bool {
		return msg.Status == models.MessageStatusPending
	})).Return(20, nil).Once()

	svc := NewMessagingService(repo, cache, nil, newNoopLogger())
	res := svc.Send(context.Background(), 1, 2, "alice", "find me on WhatsApp", nil)

	assert.True(t, res.NeedsModeration)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
	repo.AssertNotCalled(t, "ListBannedWords", mock.Anything)
}
