package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/coachhub/internal/models"
)

func TestStorage_CountUnreadMessages(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	alice := factory.CreateUser(t, "alice", "alice@example.com", "learner")
	bob := factory.CreateUser(t, "bob", "bob@example.com", "coach")

	// Два непрочитанных approved, одно pending и одно уже прочитанное.
	factory.CreateMessage(t, bob, alice, nil, "first", models.MessageStatusApproved, false)
	factory.CreateMessage(t, bob, alice, nil, "second", models.MessageStatusApproved, false)
	factory.CreateMessage(t, bob, alice, nil, "on moderation", models.MessageStatusPending, false)
	factory.CreateMessage(t, bob, alice, nil, "old", models.MessageStatusApproved, true)
	// Исходящие не считаются.
	factory.CreateMessage(t, alice, bob, nil, "reply", models.MessageStatusApproved, false)

	count, err := storage.CountUnreadMessages(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStorage_MarkMessagesRead(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	alice := factory.CreateUser(t, "alice", "alice@example.com", "learner")
	bob := factory.CreateUser(t, "bob", "bob@example.com", "coach")

	factory.CreateMessage(t, bob, alice, nil, "first", models.MessageStatusApproved, false)
	factory.CreateMessage(t, bob, alice, nil, "second", models.MessageStatusApproved, false)
	factory.CreateMessage(t, bob, alice, nil, "on moderation", models.MessageStatusPending, false)

	rows, err := storage.MarkMessagesRead(context.Background(), alice, bob)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	// Повторный вызов ничего не меняет.
	rows, err = storage.MarkMessagesRead(context.Background(), alice, bob)
	require.NoError(t, err)
	assert.Equal(t, 0, rows)

	count, err := storage.CountUnreadMessages(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_ListThread(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	alice := factory.CreateUser(t, "alice", "alice@example.com", "learner")
	bob := factory.CreateUser(t, "bob", "bob@example.com", "coach")
	carol := factory.CreateUser(t, "carol", "carol@example.com", "learner")

	factory.CreateMessage(t, alice, bob, nil, "hello", models.MessageStatusApproved, false)
	factory.CreateMessage(t, bob, alice, nil, "hi there", models.MessageStatusApproved, false)
	factory.CreateMessage(t, alice, bob, nil, "hidden", models.MessageStatusPending, false)
	// Чужая переписка в тред не попадает.
	factory.CreateMessage(t, carol, bob, nil, "unrelated", models.MessageStatusApproved, false)

	got, err := storage.ListThread(context.Background(), alice, bob)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hello", got[0].Content)
	assert.Equal(t, "alice", got[0].SenderUsername)
	assert.Equal(t, "hi there", got[1].Content)
	assert.True(t, !got[1].CreatedAt.Before(got[0].CreatedAt))

	// Тред симметричен для обоих участников.
	mirrored, err := storage.ListThread(context.Background(), bob, alice)
	require.NoError(t, err)
	require.Len(t, mirrored, 2)
	assert.Equal(t, got[0].ID, mirrored[0].ID)
}

func TestStorage_ListConversations(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	alice := factory.CreateUser(t, "alice", "alice@example.com", "learner")
	bob := factory.CreateUser(t, "bob", "bob@example.com", "coach")
	carol := factory.CreateUser(t, "carol", "carol@example.com", "coach")

	factory.CreateMessage(t, bob, alice, nil, "from bob", models.MessageStatusApproved, false)
	factory.CreateMessage(t, bob, alice, nil, "latest from bob", models.MessageStatusApproved, false)
	factory.CreateMessage(t, alice, carol, nil, "to carol", models.MessageStatusApproved, true)

	got, err := storage.ListConversations(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, got, 2)

	byCounterpart := make(map[int]*models.ConversationSummary, len(got))
	for _, c := range got {
		byCounterpart[c.CounterpartID] = c
	}

	require.Contains(t, byCounterpart, bob)
	assert.Equal(t, "bob", byCounterpart[bob].CounterpartName)
	assert.Equal(t, 2, byCounterpart[bob].UnreadCount)
	assert.Equal(t, "latest from bob", byCounterpart[bob].LastMessage)

	require.Contains(t, byCounterpart, carol)
	assert.Equal(t, 0, byCounterpart[carol].UnreadCount)
	assert.Equal(t, "to carol", byCounterpart[carol].LastMessage)
}

func TestStorage_ListMessagesAfter(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	alice := factory.CreateUser(t, "alice", "alice@example.com", "learner")
	bob := factory.CreateUser(t, "bob", "bob@example.com", "coach")
	inquiryID := factory.CreateInquiry(t, alice, bob, "need help", "accepted")

	firstID := factory.CreateMessage(t, alice, bob, &inquiryID, "first", models.MessageStatusApproved, false)
	secondID := factory.CreateMessage(t, bob, alice, &inquiryID, "second", models.MessageStatusApproved, false)
	factory.CreateMessage(t, bob, alice, &inquiryID, "hidden", models.MessageStatusPending, false)
	// Сообщение без привязки к заявке в поллинг не попадает.
	factory.CreateMessage(t, bob, alice, nil, "off-thread", models.MessageStatusApproved, false)

	got, err := storage.ListMessagesAfter(context.Background(), alice, inquiryID, firstID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, secondID, got[0].ID)
	assert.Equal(t, "second", got[0].Content)

	// Ничего нового после последнего id.
	got, err = storage.ListMessagesAfter(context.Background(), alice, inquiryID, secondID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStorage_MarkNotificationRead(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	alice := factory.CreateUser(t, "alice", "alice@example.com", "learner")
	bob := factory.CreateUser(t, "bob", "bob@example.com", "coach")
	notificationID := factory.CreateNotification(t, alice, "New Message", "message", false)

	// Чужой пользователь флаг не меняет.
	rows, err := storage.MarkNotificationRead(context.Background(), notificationID, bob)
	require.NoError(t, err)
	assert.Equal(t, 0, rows)

	count, err := storage.CountUnreadNotifications(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rows, err = storage.MarkNotificationRead(context.Background(), notificationID, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	count, err = storage.CountUnreadNotifications(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_UpdateInquiryStatus(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	alice := factory.CreateUser(t, "alice", "alice@example.com", "learner")
	bob := factory.CreateUser(t, "bob", "bob@example.com", "coach")
	inquiryID := factory.CreateInquiry(t, alice, bob, "need help", "pending")

	rows, err := storage.UpdateInquiryStatus(context.Background(), inquiryID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	info, err := storage.GetInquiryInfo(context.Background(), inquiryID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", info.Status)
	assert.Equal(t, alice, info.LearnerID)
	assert.Equal(t, bob, info.CoachID)

	rows, err = storage.UpdateInquiryStatus(context.Background(), inquiryID+100, "accepted")
	require.NoError(t, err)
	assert.Equal(t, 0, rows)
}

func TestStorage_BookTimeSlot(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	bob := factory.CreateUser(t, "bob", "bob@example.com", "coach")
	startsAt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	slotID := factory.CreateTimeSlot(t, bob, startsAt, false)

	rows, err := storage.BookTimeSlot(context.Background(), slotID)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	// Второе бронирование того же слота не проходит.
	rows, err = storage.BookTimeSlot(context.Background(), slotID)
	require.NoError(t, err)
	assert.Equal(t, 0, rows)
}

func TestStorage_ListBannedWords(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateBannedWord(t, "spam")
	factory.CreateBannedWord(t, "scam")

	got, err := storage.ListBannedWords(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"spam", "scam"}, got)
}
