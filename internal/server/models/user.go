// Package models holds the persisted row types shared by repositories and
// services.
package models

import "time"

// User is a row in the users table. PasswordHash is an opaque bcrypt blob;
// it never leaves the server.
type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	PasswordHash []byte    `db:"password_hash"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
}
