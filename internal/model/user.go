// Package model holds the domain and wire types shared between the stores,
// the backends and the reference server.
package model

import "strings"

// User is a stored identity record. ID is server-assigned and immutable.
// Passwords never appear here; they travel only in UserForm submissions.
type User struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName,omitempty"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
}

// FullName joins the non-empty name parts with single spaces.
func (u User) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.FirstName, u.MiddleName, u.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// UserForm carries the fields of a create/edit submission. Password and
// ConfirmPassword are write-only: they are sent to the backend and never
// stored or displayed.
type UserForm struct {
	FirstName       string `json:"firstName"`
	MiddleName      string `json:"middleName,omitempty"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}
