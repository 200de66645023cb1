// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is the account aggregate. PasswordHash is write-only: it is set at
// registration and is never serialized into API responses.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// SessionToken is one active login: the access intent plus the signed token
// string. Rows belong exclusively to their user and are ordered by insertion.
type SessionToken struct {
	ID        int64
	UserID    string
	Access    string
	Token     string
	CreatedAt time.Time
}
