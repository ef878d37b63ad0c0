package types

import "time"

// User represents an account in the system.
// It contains identity, login credentials, and audit metadata.
type User struct {
	// UserID is the unique identifier of the user. It is the owner key
	// for every device, access point, and issue record.
	UserID int `json:"user_id" db:"user_id"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" db:"username"`

	// Email is the user's email address.
	Email string `json:"email" db:"email"`

	// MobilePhone is the user's phone number. Like username and email
	// it may be used as the login identifier.
	MobilePhone string `json:"mobile_phone" db:"mobile_phone"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// IsActive marks whether the account may log in.
	IsActive bool `json:"is_active" db:"is_active"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
