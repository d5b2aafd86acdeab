package model

import "time"

// User is a registered account. The username doubles as the storage key
// and is immutable after creation.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"` // bcrypt hash, never cleartext
	CreatedAt    time.Time `json:"created_at"`
}
