package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/iliyamo/driving-licence-admin/internal/model"
)

// SessionRepo persists user sessions.  expires_at is computed by the
// database triggers on every insert and update, never by this code.
type SessionRepo struct {
	store *Store
}

func NewSessionRepo(store *Store) *SessionRepo { return &SessionRepo{store: store} }

const sessionColumns = "id, session_id, sub, access_token, token_type, scope, expires_in, expires_at, created_at, updated_at"

// maxSessionAgeDays is the hard ceiling on session age; rows older
// than this are reclaimable regardless of expires_at.
const maxSessionAgeDays = 30

// Upsert inserts or refreshes a session keyed by session_id.
func (r *SessionRepo) Upsert(ctx context.Context, s *model.UserSession) (model.UserSession, error) {
	s.SessionID = strings.TrimSpace(s.SessionID)
	if err := requireFields(
		field{"session_id", s.SessionID},
		field{"sub", s.Sub},
		field{"access_token", s.AccessToken},
	); err != nil {
		return model.UserSession{}, fmt.Errorf("save session: %w", err)
	}
	if s.ExpiresIn <= 0 {
		return model.UserSession{}, fmt.Errorf("save session: %w",
			validationf("expires_in must be positive, got %d", s.ExpiresIn))
	}
	if s.TokenType == "" {
		s.TokenType = "Bearer"
	}

	_, err := r.store.exec(ctx, "session.upsert",
		`INSERT INTO user_sessions (session_id, sub, access_token, token_type, scope, expires_in)
		VALUES (?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			access_token = VALUES(access_token),
			token_type = VALUES(token_type),
			scope = VALUES(scope),
			expires_in = VALUES(expires_in)`,
		s.SessionID, s.Sub, s.AccessToken, s.TokenType, nullStr(s.Scope), s.ExpiresIn)
	if err != nil {
		return model.UserSession{}, fmt.Errorf("save session: %w", err)
	}
	return r.GetByID(ctx, s.SessionID)
}

// GetByID fetches a session by its session token.
func (r *SessionRepo) GetByID(ctx context.Context, sessionID string) (model.UserSession, error) {
	var (
		s     model.UserSession
		scope sql.NullString
	)
	err := r.store.queryRow(ctx, "session.get",
		"SELECT "+sessionColumns+" FROM user_sessions WHERE session_id = ? LIMIT 1",
		[]any{sessionID},
		func(row *sql.Row) error {
			return row.Scan(&s.ID, &s.SessionID, &s.Sub, &s.AccessToken, &s.TokenType,
				&scope, &s.ExpiresIn, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt)
		})
	if err == sql.ErrNoRows {
		return model.UserSession{}, fmt.Errorf("find session: %w", ErrNotFound)
	}
	if err != nil {
		return model.UserSession{}, fmt.Errorf("find session: %w", err)
	}
	s.Scope = strPtr(scope)
	return s, nil
}

// Cleanup removes sessions past their expiry or older than 30 days
// and returns exactly the removed session identifiers.
func (r *SessionRepo) Cleanup(ctx context.Context) ([]string, error) {
	const reclaimable = `SELECT session_id FROM user_sessions
		WHERE expires_at < NOW() OR created_at < NOW() - INTERVAL ? DAY`

	var ids []string
	err := r.store.query(ctx, "session.cleanup_select", reclaimable,
		[]any{maxSessionAgeDays},
		func(rows *sql.Rows) error {
			for rows.Next() {
				var id string
				if err := rows.Scan(&id); err != nil {
					return err
				}
				ids = append(ids, id)
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("cleanup sessions: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	// Delete by the ids just selected so the returned list matches
	// what was actually removed even if new rows expire meanwhile.
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err = r.store.exec(ctx, "session.cleanup_delete",
		"DELETE FROM user_sessions WHERE session_id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("cleanup sessions: %w", err)
	}
	return ids, nil
}
