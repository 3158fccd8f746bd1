package model

import "time"

// Провайдеры аутентификации
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	AuthProvider string    `json:"auth_provider"`
	CreatedAt    time.Time `json:"created_at"`
}
