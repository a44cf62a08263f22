package models

import "time"

// Coach представляет профиль коуча на витрине маркетплейса.
//
// ID — ключ строки каталога (coaches.id), на него ссылаются тарифы и
// отзывы. UserID — ключ пользователя (users.id), именно им коуч
// адресуется в слотах расписания, заявках и занятиях.
type Coach struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	Username   string    `json:"username"`
	Headline   string    `json:"headline"`
	Bio        string    `json:"bio"`
	HourlyRate int       `json:"hourly_rate"`
	Rating     float64   `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
}

// ServiceTier тариф коуча: пакет занятий с фиксированной ценой.
type ServiceTier struct {
	ID            int    `json:"id"`
	CoachID       int    `json:"coach_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int    `json:"price"`
	SessionsCount int    `json:"sessions_count"`
}

// CoachProfile профиль коуча вместе с тарифами для страницы витрины.
type CoachProfile struct {
	Coach
	Tiers []ServiceTier `json:"tiers"`
}

// Review отзыв ученика о коуче.
type Review struct {
	ID          int       `json:"id"`
	CoachID     int       `json:"coach_id"`
	LearnerID   int       `json:"learner_id"`
	LearnerName string    `json:"learner_name"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

// DummyCreateReview используется для приёма данных нового отзыва из JSON-запроса.
type DummyCreateReview struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"` // Оценка 1..5
	Comment string `json:"comment" validate:"max=2000"`            // Комментарий
}
