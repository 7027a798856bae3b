package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/iliyamo/driving-licence-admin/internal/model"
)

// UserRepo persists applicant records keyed by their external subject
// identifier.
type UserRepo struct {
	store *Store
}

func NewUserRepo(store *Store) *UserRepo { return &UserRepo{store: store} }

const userColumns = "id, sub, name, email, phone, date_of_birth, address, created_at, updated_at"

// Upsert inserts the user or updates the existing row in place keyed
// by sub.  created_at is never touched on update.
func (r *UserRepo) Upsert(ctx context.Context, u *model.User) (model.User, error) {
	u.Sub = strings.TrimSpace(u.Sub)
	if err := requireFields(
		field{"sub", u.Sub},
		field{"name", u.Name},
	); err != nil {
		return model.User{}, fmt.Errorf("save user: %w", err)
	}
	if err := checkEmail(u.Email); err != nil {
		return model.User{}, fmt.Errorf("save user: %w", err)
	}

	_, err := r.store.exec(ctx, "user.upsert",
		`INSERT INTO users (sub, name, email, phone, date_of_birth, address)
		VALUES (?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			email = VALUES(email),
			phone = VALUES(phone),
			date_of_birth = VALUES(date_of_birth),
			address = VALUES(address)`,
		u.Sub, u.Name, nullStr(u.Email), nullStr(u.Phone), nullStr(u.DateOfBirth), nullStr(u.Address))
	if err != nil {
		return model.User{}, fmt.Errorf("save user: %w", err)
	}
	return r.GetBySub(ctx, u.Sub)
}

// GetBySub fetches a user by subject identifier.
func (r *UserRepo) GetBySub(ctx context.Context, sub string) (model.User, error) {
	var (
		u     model.User
		email sql.NullString
		phone sql.NullString
		dob   sql.NullTime
		addr  sql.NullString
	)
	err := r.store.queryRow(ctx, "user.get",
		"SELECT "+userColumns+" FROM users WHERE sub = ? LIMIT 1",
		[]any{sub},
		func(row *sql.Row) error {
			return row.Scan(&u.ID, &u.Sub, &u.Name, &email, &phone, &dob, &addr, &u.CreatedAt, &u.UpdatedAt)
		})
	if err == sql.ErrNoRows {
		return model.User{}, fmt.Errorf("find user %s: %w", sub, ErrNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user %s: %w", sub, err)
	}
	u.Email = strPtr(email)
	u.Phone = strPtr(phone)
	u.DateOfBirth = datePtr(dob)
	u.Address = strPtr(addr)
	return u, nil
}
