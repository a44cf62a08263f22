// Package services содержит бизнес-логику обмена личными сообщениями:
// счётчик непрочитанных, список диалогов, тред переписки, отметку о
// прочтении и отправку с модерацией по списку запрещённых слов.
package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/coachhub/internal/lib/sl"
	"github.com/magabrotheeeer/coachhub/internal/models"
)

// Ключ и время жизни кеша списка запрещённых слов.
const (
	bannedWordsCacheKey = "moderation:banned_words"
	bannedWordsCacheTTL = 5 * time.Minute
)

// MessagingRepository определяет методы для работы с сообщениями в хранилище.
type MessagingRepository interface {
	// CreateMessage добавляет новое сообщение и возвращает его ID.
	CreateMessage(ctx context.Context, msg models.Message) (int, error)
	// CountUnreadMessages возвращает число непрочитанных approved-сообщений пользователя.
	CountUnreadMessages(ctx context.Context, receiverID int) (int, error)
	// ListConversations возвращает сводку диалогов пользователя.
	ListConversations(ctx context.Context, userID int) ([]*models.ConversationSummary, error)
	// ListThread возвращает approved-сообщения пары пользователей по возрастанию времени.
	ListThread(ctx context.Context, userID, otherUserID int) ([]*models.Message, error)
	// MarkMessagesRead помечает прочитанными сообщения от sender к receiver.
	MarkMessagesRead(ctx context.Context, receiverID, senderID int) (int, error)
	// ListMessagesAfter возвращает approved-сообщения треда заявки с id больше lastID.
	ListMessagesAfter(ctx context.Context, userID, inquiryID, lastID int) ([]*models.Message, error)
	// ListBannedWords возвращает список запрещённых слов.
	ListBannedWords(ctx context.Context) ([]string, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Notifier описывает уведомление получателя о новом сообщении.
type Notifier interface {
	NotifyNewMessage(ctx context.Context, userID, fromUserID int, fromUsername string, conversationID int)
}

// MessagingService реализует бизнес-логику личных сообщений.
//
// Ошибки хранилища на путях чтения деградируют до безопасных значений:
// нулевого счётчика, пустого списка или false. Текст ошибок хранилища
// наружу не отдаётся.
type MessagingService struct {
	repo     MessagingRepository
	cache    Cache
	notifier Notifier
	log      *slog.Logger
}

// NewMessagingService создает новый экземпляр MessagingService.
// Параметр notifier может быть nil, тогда уведомления не рассылаются.
func NewMessagingService(repo MessagingRepository, cache Cache, notifier Notifier, log *slog.Logger) *MessagingService {
	return &MessagingService{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

// UnreadCount возвращает число непрочитанных approved-сообщений пользователя,
// при ошибке хранилища — 0.
func (s *MessagingService) UnreadCount(ctx context.Context, userID int) int {
	count, err := s.repo.CountUnreadMessages(ctx, userID)
	if err != nil {
		s.log.Error("failed to count unread messages", slog.Int("user_id", userID), sl.Err(err))
		return 0
	}
	return count
}

// ListConversations возвращает диалоги пользователя, отсортированные по
// времени последнего сообщения, новые первыми. При ошибке хранилища — пустой список.
func (s *MessagingService) ListConversations(ctx context.Context, userID int) []*models.ConversationSummary {
	conversations, err := s.repo.ListConversations(ctx, userID)
	if err != nil {
		s.log.Error("failed to list conversations", slog.Int("user_id", userID), sl.Err(err))
		return []*models.ConversationSummary{}
	}
	if conversations == nil {
		conversations = []*models.ConversationSummary{}
	}
	return conversations
}

// ListThread возвращает переписку пользователя с собеседником по
// возрастанию времени создания. При ошибке хранилища — пустой список.
func (s *MessagingService) ListThread(ctx context.Context, userID, otherUserID int) []*models.Message {
	messages, err := s.repo.ListThread(ctx, userID, otherUserID)
	if err != nil {
		s.log.Error("failed to list thread",
			slog.Int("user_id", userID), slog.Int("other_user_id", otherUserID), sl.Err(err))
		return []*models.Message{}
	}
	if messages == nil {
		messages = []*models.Message{}
	}
	return messages
}

// MarkRead помечает прочитанными все approved-сообщения от sender к receiver.
// Операция идемпотентна, повторный вызов состояние не меняет.
// Возвращает false только при ошибке хранилища.
func (s *MessagingService) MarkRead(ctx context.Context, receiverID, senderID int) bool {
	if _, err := s.repo.MarkMessagesRead(ctx, receiverID, senderID); err != nil {
		s.log.Error("failed to mark messages read",
			slog.Int("receiver_id", receiverID), slog.Int("sender_id", senderID), sl.Err(err))
		return false
	}
	return true
}

// Send создает ровно одно сообщение. Если текст содержит запрещённое слово
// как подстроку без учета регистра, сообщение сохраняется со статусом
// pending и уходит на модерацию, иначе — approved с уведомлением получателя.
//
// При ошибке хранилища возвращается Success=false с фиксированным текстом,
// исходная ошибка только логируется.
func (s *MessagingService) Send(ctx context.Context, senderID, receiverID int, senderUsername, content string, inquiryID *int) models.SendResult {
	words := s.bannedWords(ctx)

	status := models.MessageStatusApproved
	needsModeration := false
	if containsBannedWord(content, words) {
		status = models.MessageStatusPending
		needsModeration = true
	}

	msg := models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		InquiryID:  inquiryID,
		Content:    content,
		Status:     status,
	}
	id, err := s.repo.CreateMessage(ctx, msg)
	if err != nil {
		s.log.Error("failed to create message",
			slog.Int("sender_id", senderID), slog.Int("receiver_id", receiverID), sl.Err(err))
		return models.SendResult{
			Success: false,
			Message: "could not send message",
		}
	}
	s.log.Info("created new message", slog.Int("id", id), slog.String("status", status))

	if needsModeration {
		return models.SendResult{
			Success:         true,
			NeedsModeration: true,
			MessageID:       id,
			Message:         "message is awaiting moderation",
		}
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(ctx, receiverID, senderID, senderUsername, senderID)
	}
	return models.SendResult{
		Success:   true,
		MessageID: id,
		Message:   "message sent",
	}
}

// PollSince возвращает approved-сообщения треда заявки с id больше lastID
// и наибольший id выдачи. Доступ ограничен участниками переписки.
func (s *MessagingService) PollSince(ctx context.Context, userID, inquiryID, lastID int) ([]models.PollMessage, int, error) {
	messages, err := s.repo.ListMessagesAfter(ctx, userID, inquiryID, lastID)
	if err != nil {
		s.log.Error("failed to poll messages",
			slog.Int("user_id", userID), slog.Int("inquiry_id", inquiryID), sl.Err(err))
		return nil, lastID, err
	}

	result := make([]models.PollMessage, 0, len(messages))
	maxID := lastID
	for _, msg := range messages {
		result = append(result, models.PollMessage{
			ID:         msg.ID,
			SenderName: msg.SenderUsername,
			IsSelf:     msg.SenderID == userID,
			CreatedAt:  msg.CreatedAt.Format("2006-01-02 15:04:05"),
			Message:    msg.Content,
		})
		if msg.ID > maxID {
			maxID = msg.ID
		}
	}
	return result, maxID, nil
}

// bannedWords возвращает список запрещённых слов из кеша либо хранилища.
// При недоступности обоих источников возвращает пустой список с логированием.
func (s *MessagingService) bannedWords(ctx context.Context) []string {
	var words []string
	if s.cache != nil {
		found, err := s.cache.Get(bannedWordsCacheKey, &words)
		if err != nil {
			s.log.Warn("failed to read banned words from cache", sl.Err(err))
		}
		if found {
			return words
		}
	}

	words, err := s.repo.ListBannedWords(ctx)
	if err != nil {
		s.log.Error("failed to load banned words", sl.Err(err))
		return nil
	}
	if s.cache != nil {
		if err := s.cache.Set(bannedWordsCacheKey, words, bannedWordsCacheTTL); err != nil {
			s.log.Warn("failed to cache banned words", sl.Err(err))
		}
	}
	return words
}

// containsBannedWord проверяет вхождение запрещённого слова как подстроки
// без учета регистра. Токенизации нет, "SPAM-my" содержит "spam".
func containsBannedWord(content string, words []string) bool {
	lowered := strings.ToLower(content)
	for _, word := range words {
		if word == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(word)) {
			return true
		}
	}
	return false
}
