package models

import "time"

// Типы уведомлений.
const (
	NotificationTypeGeneral = "general"
	NotificationTypeInquiry = "inquiry"
	NotificationTypeMessage = "message"
	NotificationTypeSession = "session"
)

// Notification представляет уведомление пользователя о доменном событии.
// Запись создаётся обработчиками событий и далее меняется только флаг
// прочтения, обратного перехода read -> unread нет.
type Notification struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationEmail событие для очереди рассылки: письмо-дубль уведомления.
type NotificationEmail struct {
	Email   string `json:"email"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
