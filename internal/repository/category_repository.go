package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/iliyamo/driving-licence-admin/internal/model"
)

// CategoryRepo persists licence categories.  Categories are soft
// deleted: DELETE flips is_active instead of removing the row, so
// historical applications keep resolving their category codes.
type CategoryRepo struct {
	store *Store
}

func NewCategoryRepo(store *Store) *CategoryRepo { return &CategoryRepo{store: store} }

const categoryColumns = "id, code, label, description, fee, min_age, vehicle_type, is_active, created_at, updated_at"

// Limits on the minimum-age domain rule.
const (
	minCategoryAge = 16
	maxCategoryAge = 100
)

// Upsert inserts or updates a category keyed by code.  Upserting an
// inactive category reactivates it.
func (r *CategoryRepo) Upsert(ctx context.Context, c *model.LicenceCategory) (model.LicenceCategory, error) {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	if err := requireFields(
		field{"code", c.Code},
		field{"label", c.Label},
	); err != nil {
		return model.LicenceCategory{}, fmt.Errorf("save licence category: %w", err)
	}
	if c.Fee <= 0 {
		return model.LicenceCategory{}, fmt.Errorf("save licence category: %w",
			validationf("fee must be positive, got %.2f", c.Fee))
	}
	if c.MinAge < minCategoryAge || c.MinAge > maxCategoryAge {
		return model.LicenceCategory{}, fmt.Errorf("save licence category: %w",
			validationf("min_age must be between %d and %d, got %d", minCategoryAge, maxCategoryAge, c.MinAge))
	}

	_, err := r.store.exec(ctx, "category.upsert",
		`INSERT INTO licence_categories (code, label, description, fee, min_age, vehicle_type, is_active)
		VALUES (?,?,?,?,?,?,1)
		ON DUPLICATE KEY UPDATE
			label = VALUES(label),
			description = VALUES(description),
			fee = VALUES(fee),
			min_age = VALUES(min_age),
			vehicle_type = VALUES(vehicle_type),
			is_active = 1`,
		c.Code, c.Label, nullStr(c.Description), c.Fee, c.MinAge, nullStr(c.VehicleType))
	if err != nil {
		return model.LicenceCategory{}, fmt.Errorf("save licence category: %w", err)
	}
	return r.GetByCode(ctx, c.Code)
}

// GetByCode fetches one category, active or not.
func (r *CategoryRepo) GetByCode(ctx context.Context, code string) (model.LicenceCategory, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	var c model.LicenceCategory
	err := r.store.queryRow(ctx, "category.get",
		"SELECT "+categoryColumns+" FROM licence_categories WHERE code = ? LIMIT 1",
		[]any{code},
		func(row *sql.Row) error { return scanCategoryRow(row, &c) })
	if err == sql.ErrNoRows {
		return model.LicenceCategory{}, fmt.Errorf("find licence category %s: %w", code, ErrNotFound)
	}
	if err != nil {
		return model.LicenceCategory{}, fmt.Errorf("find licence category %s: %w", code, err)
	}
	return c, nil
}

// List returns categories ordered by code.  Soft-deleted rows are
// excluded unless includeInactive is set.
func (r *CategoryRepo) List(ctx context.Context, includeInactive bool) ([]model.LicenceCategory, error) {
	stmt := "SELECT " + categoryColumns + " FROM licence_categories"
	if !includeInactive {
		stmt += " WHERE is_active = 1"
	}
	stmt += " ORDER BY code ASC"

	out := make([]model.LicenceCategory, 0, 8)
	err := r.store.query(ctx, "category.list", stmt, nil, func(rows *sql.Rows) error {
		for rows.Next() {
			var c model.LicenceCategory
			if err := scanCategoryRows(rows, &c); err != nil {
				return err
			}
			out = append(out, c)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list licence categories: %w", err)
	}
	return out, nil
}

// SoftDelete marks a category inactive.  The row stays queryable by
// code so existing applications keep their references.
func (r *CategoryRepo) SoftDelete(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	res, err := r.store.exec(ctx, "category.soft_delete",
		"UPDATE licence_categories SET is_active = 0 WHERE code = ?", code)
	if err != nil {
		return fmt.Errorf("delete licence category %s: %w", code, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete licence category %s: %w", code, ErrNotFound)
	}
	return nil
}

func scanCategoryRow(row *sql.Row, c *model.LicenceCategory) error {
	var desc, vtype sql.NullString
	if err := row.Scan(&c.ID, &c.Code, &c.Label, &desc, &c.Fee, &c.MinAge, &vtype, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return err
	}
	c.Description = strPtr(desc)
	c.VehicleType = strPtr(vtype)
	return nil
}

func scanCategoryRows(rows *sql.Rows, c *model.LicenceCategory) error {
	var desc, vtype sql.NullString
	if err := rows.Scan(&c.ID, &c.Code, &c.Label, &desc, &c.Fee, &c.MinAge, &vtype, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return err
	}
	c.Description = strPtr(desc)
	c.VehicleType = strPtr(vtype)
	return nil
}
