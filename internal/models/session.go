package models

import "time"

// Статусы занятия.
const (
	SessionStatusScheduled = "scheduled"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// Действия над занятием, определяющие текст уведомления.
const (
	SessionActionScheduled   = "scheduled"
	SessionActionRescheduled = "rescheduled"
	SessionActionCancelled   = "cancelled"
)

// Session представляет занятие коуча с учеником, забронированное
// на слот расписания.
type Session struct {
	ID          int       `json:"id"`
	CoachID     int       `json:"coach_id"`
	LearnerID   int       `json:"learner_id"`
	TierID      *int      `json:"tier_id,omitempty"`
	SlotID      *int      `json:"slot_id,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionInfo занятие с денормализованными именами участников.
type SessionInfo struct {
	Session
	CoachName   string
	LearnerName string
}

// TimeSlot слот расписания коуча, доступный для бронирования.
// CoachID хранит users.id коуча, а не ключ каталога coaches.id.
type TimeSlot struct {
	ID       int       `json:"id"`
	CoachID  int       `json:"coach_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	IsBooked bool      `json:"is_booked"`
}

// DummyBookSession используется для приёма данных бронирования занятия.
type DummyBookSession struct {
	CoachID int  `json:"coach_id" validate:"required,gt=0"` // Коуч
	SlotID  int  `json:"slot_id" validate:"required,gt=0"`  // Слот расписания
	TierID  *int `json:"tier_id,omitempty"`                 // Тариф (опционально)
}
