package models

import "time"

// Статусы заявки ученика. Переходы статусов порождают уведомления:
// accepted, rejected и completed уведомляют ученика, cancelled — коуча.
const (
	InquiryStatusPending   = "pending"
	InquiryStatusAccepted  = "accepted"
	InquiryStatusRejected  = "rejected"
	InquiryStatusCancelled = "cancelled"
	InquiryStatusCompleted = "completed"
)

// Inquiry представляет заявку ученика на занятия с коучем.
type Inquiry struct {
	ID        int       `json:"id"`
	LearnerID int       `json:"learner_id"`
	CoachID   int       `json:"coach_id"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// InquiryInfo заявка с денормализованными именами участников,
// используется при формировании уведомлений.
type InquiryInfo struct {
	Inquiry
	LearnerName string
	CoachName   string
}

// DummyCreateInquiry используется для приёма данных новой заявки из JSON-запроса.
type DummyCreateInquiry struct {
	CoachID int    `json:"coach_id" validate:"required,gt=0"`   // Коуч
	Message string `json:"message" validate:"required,max=2000"` // Текст заявки
}

// DummyUpdateInquiryStatus используется для смены статуса заявки.
type DummyUpdateInquiryStatus struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected cancelled completed"`
}
