package domain

import "time"

// User is the domain entity for a user account.
type User struct {
	ID           string
	Email        string
	Username     *string
	Name         *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserBrief is the subset of a user embedded in task payloads.
type UserBrief struct {
	ID    string
	Name  *string
	Email string
}
