package model

import "time"

// Application statuses.  The lifecycle is pending -> submitted ->
// {approved, rejected, cancelled}; the data layer accepts any value
// from the set and leaves transition enforcement to callers.
const (
	StatusPending   = "pending"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Admin review statuses, independent of the application lifecycle.
const (
	AdminUnverified = "unverified"
	AdminVerified   = "verified"
	AdminOnHold     = "on_hold"
)

// ValidStatus reports whether s is one of the five application
// lifecycle statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusSubmitted, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// ValidAdminStatus reports whether s is one of the three admin review
// statuses.
func ValidAdminStatus(s string) bool {
	switch s {
	case AdminUnverified, AdminVerified, AdminOnHold:
		return true
	}
	return false
}

// Application mirrors the `applications` table.  Unlike the other
// entities an application is insert-only: it embeds a denormalized
// snapshot of the applicant's personal and medical-certificate data
// at submission time so later edits to those records do not rewrite
// history.  SelectedCategories, WrittenTest and PracticalTest are
// structured documents stored verbatim as JSON columns and handed
// back to callers in their structured form, never as serialized text.
type Application struct {
	ID                 uint64    `json:"id"`                  // applications.id
	ApplicationID      string    `json:"application_id"`      // applications.application_id
	CertificateID      string    `json:"certificate_id"`      // applications.certificate_id
	Sub                string    `json:"sub"`                 // applications.sub
	FullName           string    `json:"full_name"`           // applications.full_name
	Email              *string   `json:"email"`               // applications.email (nullable)
	Phone              *string   `json:"phone"`               // applications.phone (nullable)
	DateOfBirth        *string   `json:"date_of_birth"`       // applications.date_of_birth (nullable)
	Gender             *string   `json:"gender"`              // applications.gender (nullable)
	BloodGroup         *string   `json:"blood_group"`         // applications.blood_group (nullable)
	DoctorName         *string   `json:"doctor_name"`         // applications.doctor_name (nullable)
	HospitalName       *string   `json:"hospital_name"`       // applications.hospital_name (nullable)
	IssueDate          *string   `json:"issue_date"`          // applications.issue_date (nullable)
	ExpiryDate         *string   `json:"expiry_date"`         // applications.expiry_date (nullable)
	MedicallyFit       bool      `json:"medically_fit"`       // applications.medically_fit
	VisionStatus       *string   `json:"vision_status"`       // applications.vision_status (nullable)
	HearingStatus      *string   `json:"hearing_status"`      // applications.hearing_status (nullable)
	Remarks            *string   `json:"remarks"`             // applications.remarks (nullable)
	PhotoURL           *string   `json:"photo_url"`           // applications.photo_url (nullable)
	SelectedCategories any       `json:"selected_categories"` // applications.selected_categories (JSON)
	WrittenTest        any       `json:"written_test"`        // applications.written_test (JSON, nullable)
	PracticalTest      any       `json:"practical_test"`      // applications.practical_test (JSON, nullable)
	Status             string    `json:"status"`              // applications.status
	AdminStatus        string    `json:"admin_status"`        // applications.admin_status
	PaymentAmount      float64   `json:"payment_amount"`      // applications.payment_amount
	PaymentReference   *string   `json:"payment_reference"`   // applications.payment_reference (nullable)
	PaymentOrderID     *string   `json:"payment_order_id"`    // applications.payment_order_id (nullable)
	CreatedAt          time.Time `json:"created_at"`          // applications.created_at
	UpdatedAt          time.Time `json:"updated_at"`          // applications.updated_at
}

// ApplicationStats aggregates per-status counts for the admin
// dashboard.  Counts default to zero when a status has no rows.
type ApplicationStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Submitted int `json:"submitted"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Cancelled int `json:"cancelled"`
}
