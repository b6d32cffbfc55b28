// Package models defines the persistent entities of the auth service.
package models

import "time"

// User is a registered account. PasswordHash is write-only: it is read for
// credential verification and is never serialized into API responses.
type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
