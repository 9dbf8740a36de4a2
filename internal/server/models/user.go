package models

import "time"

// User is the stored server-side record. PasswordHash never leaves the
// repository layer in responses.
type User struct {
	ID           string
	FirstName    string
	MiddleName   string
	LastName     string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
