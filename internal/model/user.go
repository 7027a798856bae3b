package model

import "time"

// User represents an applicant record as stored in the `users` table.
// Users are keyed by an opaque external subject identifier (`sub`)
// issued by the identity provider; all owned records (sessions,
// applications, medical certificates) reference that identifier and
// are removed by cascade when the user row is deleted.
//
// Fields:
//  ID          – primary key identifier.
//  Sub         – unique external subject identifier.
//  Name        – full name (required).
//  Email       – optional email address.
//  Phone       – optional phone number.
//  DateOfBirth – optional date of birth (YYYY-MM-DD).
//  Address     – optional postal address.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type User struct {
	ID          uint64    `json:"id"`            // users.id
	Sub         string    `json:"sub"`           // users.sub
	Name        string    `json:"name"`          // users.name
	Email       *string   `json:"email"`         // users.email (nullable)
	Phone       *string   `json:"phone"`         // users.phone (nullable)
	DateOfBirth *string   `json:"date_of_birth"` // users.date_of_birth (nullable)
	Address     *string   `json:"address"`       // users.address (nullable)
	CreatedAt   time.Time `json:"created_at"`    // users.created_at
	UpdatedAt   time.Time `json:"updated_at"`    // users.updated_at
}
