package models

import "time"

// Session binds an issued bearer token to a user and an expiry. A session row
// exists for every outstanding token; deleting the row revokes the token even
// while its signature is still cryptographically valid.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
