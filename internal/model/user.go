package model

import "time"

// User represents a row of the `users` table.  The json tags are omitted
// because these structs are used internally by the repository layer;
// handlers define their own response types with appropriate tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name (20–60 characters, validated at the edge).
//  Email        – unique email address.
//  Address      – optional postal address (up to 400 characters).
//  PasswordHash – bcrypt hashed password; the plaintext is never stored.
//  Role         – one of the Role constants.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	Address      string    // users.address
	PasswordHash string    // users.password_hash
	Role         Role      // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
