package model

import "time"

// UserSession models an entry in the `user_sessions` table.  Each
// session belongs to a user (via `sub`) and stores the access token
// handed out by the identity provider together with its lifetime.
// ExpiresAt is never written by application code: a database trigger
// derives it from the row's creation time plus ExpiresIn on every
// insert and update.  Sessions past ExpiresAt, or older than 30 days,
// are reclaimable by the cleanup job.
//
// Fields:
//  ID          – primary key identifier.
//  SessionID   – unique session token.
//  Sub         – owning user's subject identifier.
//  AccessToken – access token issued for this session.
//  TokenType   – token type (e.g. "Bearer").
//  Scope       – granted OAuth scope string.
//  ExpiresIn   – session TTL in seconds.
//  ExpiresAt   – database-computed expiry (created_at + expires_in).
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type UserSession struct {
	ID          uint64    `json:"id"`           // user_sessions.id
	SessionID   string    `json:"session_id"`   // user_sessions.session_id
	Sub         string    `json:"sub"`          // user_sessions.sub
	AccessToken string    `json:"access_token"` // user_sessions.access_token
	TokenType   string    `json:"token_type"`   // user_sessions.token_type
	Scope       *string   `json:"scope"`        // user_sessions.scope (nullable)
	ExpiresIn   int       `json:"expires_in"`   // user_sessions.expires_in
	ExpiresAt   time.Time `json:"expires_at"`   // user_sessions.expires_at
	CreatedAt   time.Time `json:"created_at"`   // user_sessions.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // user_sessions.updated_at
}
