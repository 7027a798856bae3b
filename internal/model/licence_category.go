package model

import "time"

// LicenceCategory describes one class of driving licence that an
// applicant can apply for.  Categories are keyed by a short code
// (e.g. "B") and carry the application fee and the minimum age for
// that class.  Categories are never hard-deleted; the IsActive flag
// acts as a soft-delete marker so historical applications can still
// resolve their category codes.
//
// Fields:
//  ID          – primary key identifier.
//  Code        – unique short category code.
//  Label       – human-readable category name.
//  Description – optional longer description.
//  Fee         – application fee, must be positive.
//  MinAge      – minimum applicant age, between 16 and 100.
//  VehicleType – optional vehicle-type tag (e.g. "motorcycle").
//  IsActive    – soft-delete marker; inactive categories are hidden
//                from default listings but remain queryable by code.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type LicenceCategory struct {
	ID          uint64    `json:"id"`           // licence_categories.id
	Code        string    `json:"code"`         // licence_categories.code
	Label       string    `json:"label"`        // licence_categories.label
	Description *string   `json:"description"`  // licence_categories.description (nullable)
	Fee         float64   `json:"fee"`          // licence_categories.fee
	MinAge      int       `json:"min_age"`      // licence_categories.min_age
	VehicleType *string   `json:"vehicle_type"` // licence_categories.vehicle_type (nullable)
	IsActive    bool      `json:"is_active"`    // licence_categories.is_active
	CreatedAt   time.Time `json:"created_at"`   // licence_categories.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // licence_categories.updated_at
}
