package models

import "time"

// Статусы модерации сообщений. В выдачу попадают только approved-сообщения,
// pending-сообщения скрыты до решения модератора.
const (
	MessageStatusPending  = "pending"
	MessageStatusApproved = "approved"
)

// Message представляет личное сообщение между двумя пользователями.
// Поле InquiryID связывает сообщение с заявкой, если переписка ведётся
// в её контексте.
type Message struct {
	ID             int       // Идентификатор сообщения
	SenderID       int       // Отправитель
	ReceiverID     int       // Получатель
	InquiryID      *int      // Заявка, к которой относится сообщение (опционально)
	Content        string    // Текст сообщения
	Status         string    // Статус модерации: pending или approved
	IsRead         bool      // Флаг прочтения получателем
	CreatedAt      time.Time // Время создания
	SenderUsername string    // Имя отправителя (денормализовано для выдачи)
}

// ConversationSummary описывает одну строку списка диалогов пользователя:
// собеседника, количество непрочитанных и последнее сообщение.
type ConversationSummary struct {
	CounterpartID     int       `json:"counterpart_id"`
	CounterpartName   string    `json:"counterpart_name"`
	CounterpartAvatar string    `json:"counterpart_avatar"`
	UnreadCount       int       `json:"unread_count"`
	LastMessage       string    `json:"last_message"`
	LastMessageTime   time.Time `json:"last_message_time"`
}

// PollMessage описывает сообщение в ответе поллинг-эндпоинта треда заявки.
type PollMessage struct {
	ID         int    `json:"id"`
	SenderName string `json:"sender_name"`
	IsSelf     bool   `json:"is_self"`
	CreatedAt  string `json:"created_at"`
	Message    string `json:"message"`
}

// SendResult результат отправки сообщения.
type SendResult struct {
	Success         bool   // Создана ли запись
	NeedsModeration bool   // Сообщение ушло на модерацию (status = pending)
	MessageID       int    // Идентификатор созданной записи
	Message         string // Текст для пользователя (ошибка либо статус модерации)
}

// DummySendMessage используется для приёма данных отправки сообщения из JSON-запроса.
type DummySendMessage struct {
	ReceiverID int    `json:"receiver_id" validate:"required,gt=0"` // Получатель
	Content    string `json:"content" validate:"required,max=4000"` // Текст сообщения
	InquiryID  *int   `json:"inquiry_id,omitempty"`                 // Заявка (опционально)
}
