// Package models содержит доменные структуры маркетплейса репетиторов:
// пользователей, сообщения, уведомления, заявки и занятия, а также
// вспомогательные Dummy-типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int       // Числовой идентификатор пользователя
	UID          string    // Уникальный UUID пользователя
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль пользователя: learner, coach или admin
	ProfileImage string    // Имя файла аватара, по умолчанию default.jpg
	CreatedAt    time.Time // Дата регистрации
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Username string `json:"username" validate:"required,alphanum"` // Имя пользователя
	Email    string `json:"email" validate:"required,email"`       // Электронная почта
	Password string `json:"password" validate:"required,min=8"`    // Пароль
	Role     string `json:"role" validate:"required,oneof=learner coach"`
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Username string `json:"username" validate:"required"` // Имя пользователя
	Password string `json:"password" validate:"required"` // Пароль
}
