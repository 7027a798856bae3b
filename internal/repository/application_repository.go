package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/driving-licence-admin/internal/model"
)

// ApplicationRepo persists driving-licence applications.  Unlike the
// other entities applications are insert-only: each row freezes a
// snapshot of the applicant and certificate data at submission time.
type ApplicationRepo struct {
	store *Store
}

func NewApplicationRepo(store *Store) *ApplicationRepo { return &ApplicationRepo{store: store} }

const applicationColumns = `id, application_id, certificate_id, sub, full_name, email, phone,
	date_of_birth, gender, blood_group, doctor_name, hospital_name, issue_date, expiry_date,
	medically_fit, vision_status, hearing_status, remarks, photo_url,
	selected_categories, written_test, practical_test,
	status, admin_status, payment_amount, payment_reference, payment_order_id,
	created_at, updated_at`

// Save inserts a new application.  selected_categories must be array-
// or object-shaped; the optional test-result documents must be
// object-shaped.  All checks run before any statement executes.
func (r *ApplicationRepo) Save(ctx context.Context, a *model.Application) (model.Application, error) {
	a.ApplicationID = strings.TrimSpace(a.ApplicationID)
	if err := requireFields(
		field{"application_id", a.ApplicationID},
		field{"certificate_id", a.CertificateID},
		field{"sub", a.Sub},
		field{"full_name", a.FullName},
	); err != nil {
		return model.Application{}, fmt.Errorf("save application: %w", err)
	}
	if err := checkEmail(a.Email); err != nil {
		return model.Application{}, fmt.Errorf("save application: %w", err)
	}
	if !isArrayDoc(a.SelectedCategories) && !isObjectDoc(a.SelectedCategories) {
		return model.Application{}, fmt.Errorf("save application: %w",
			validationf("selected_categories must be an array or object"))
	}
	if a.WrittenTest != nil && !isObjectDoc(a.WrittenTest) {
		return model.Application{}, fmt.Errorf("save application: %w",
			validationf("written_test must be an object"))
	}
	if a.PracticalTest != nil && !isObjectDoc(a.PracticalTest) {
		return model.Application{}, fmt.Errorf("save application: %w",
			validationf("practical_test must be an object"))
	}
	if a.PaymentAmount < 0 {
		return model.Application{}, fmt.Errorf("save application: %w",
			validationf("payment_amount must not be negative, got %.2f", a.PaymentAmount))
	}
	if a.Status == "" {
		a.Status = model.StatusPending
	}
	if !model.ValidStatus(a.Status) {
		return model.Application{}, fmt.Errorf("save application: %w",
			validationf("invalid status %q", a.Status))
	}
	if a.AdminStatus == "" {
		a.AdminStatus = model.AdminUnverified
	}
	if !model.ValidAdminStatus(a.AdminStatus) {
		return model.Application{}, fmt.Errorf("save application: %w",
			validationf("invalid admin_status %q", a.AdminStatus))
	}

	categories, err := marshalDoc(a.SelectedCategories)
	if err != nil {
		return model.Application{}, fmt.Errorf("save application: %w", err)
	}
	written, err := marshalOptionalDoc(a.WrittenTest)
	if err != nil {
		return model.Application{}, fmt.Errorf("save application: %w", err)
	}
	practical, err := marshalOptionalDoc(a.PracticalTest)
	if err != nil {
		return model.Application{}, fmt.Errorf("save application: %w", err)
	}

	_, err = r.store.exec(ctx, "application.save",
		`INSERT INTO applications
			(application_id, certificate_id, sub, full_name, email, phone, date_of_birth,
			 gender, blood_group, doctor_name, hospital_name, issue_date, expiry_date,
			 medically_fit, vision_status, hearing_status, remarks, photo_url,
			 selected_categories, written_test, practical_test,
			 status, admin_status, payment_amount, payment_reference, payment_order_id)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.ApplicationID, a.CertificateID, a.Sub, a.FullName, nullStr(a.Email), nullStr(a.Phone),
		nullStr(a.DateOfBirth), nullStr(a.Gender), nullStr(a.BloodGroup), nullStr(a.DoctorName),
		nullStr(a.HospitalName), nullStr(a.IssueDate), nullStr(a.ExpiryDate),
		a.MedicallyFit, nullStr(a.VisionStatus), nullStr(a.HearingStatus), nullStr(a.Remarks),
		nullStr(a.PhotoURL), categories, written, practical,
		a.Status, a.AdminStatus, a.PaymentAmount, nullStr(a.PaymentReference), nullStr(a.PaymentOrderID))
	if err != nil {
		return model.Application{}, fmt.Errorf("save application: %w", err)
	}
	return r.GetByKey(ctx, a.ApplicationID)
}

// GetByKey looks an application up by application id, certificate id
// or, when key is numeric, the primary id.
func (r *ApplicationRepo) GetByKey(ctx context.Context, key string) (model.Application, error) {
	cond := "application_id = ? OR certificate_id = ?"
	args := []any{key, key}
	if n, err := strconv.ParseUint(key, 10, 64); err == nil {
		cond += " OR id = ?"
		args = append(args, n)
	}

	var a model.Application
	err := r.store.queryRow(ctx, "application.get",
		"SELECT "+applicationColumns+" FROM applications WHERE "+cond+" LIMIT 1",
		args,
		func(row *sql.Row) error { return scanApplication(row.Scan, &a) })
	if err == sql.ErrNoRows {
		return model.Application{}, fmt.Errorf("find application %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return model.Application{}, fmt.Errorf("find application %s: %w", key, err)
	}
	return a, nil
}

// UpdateStatus writes a new lifecycle status.  Transition ordering is
// deliberately not enforced here; any value from the set is accepted.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, key, status string) (model.Application, error) {
	if !model.ValidStatus(status) {
		return model.Application{}, fmt.Errorf("update application status: %w",
			validationf("invalid status %q", status))
	}
	return r.updateByKey(ctx, "application.update_status", key, "status = ?", status)
}

// UpdateAdminStatus writes the independent admin review status.
func (r *ApplicationRepo) UpdateAdminStatus(ctx context.Context, key, adminStatus string) (model.Application, error) {
	if !model.ValidAdminStatus(adminStatus) {
		return model.Application{}, fmt.Errorf("update application admin status: %w",
			validationf("invalid admin_status %q", adminStatus))
	}
	return r.updateByKey(ctx, "application.update_admin_status", key, "admin_status = ?", adminStatus)
}

// updatableFields is the fixed allow-list for partial updates.  The
// SET clause is built only from these pairs, never from caller-
// controlled column names.  Document fields carry the same shape
// rules as Save: selected_categories takes an array or object, the
// test-result documents take objects only.
var updatableFields = []struct {
	json       string
	column     string
	doc        bool
	objectOnly bool
}{
	{"full_name", "full_name", false, false},
	{"email", "email", false, false},
	{"phone", "phone", false, false},
	{"date_of_birth", "date_of_birth", false, false},
	{"gender", "gender", false, false},
	{"blood_group", "blood_group", false, false},
	{"remarks", "remarks", false, false},
	{"photo_url", "photo_url", false, false},
	{"payment_amount", "payment_amount", false, false},
	{"payment_reference", "payment_reference", false, false},
	{"payment_order_id", "payment_order_id", false, false},
	{"selected_categories", "selected_categories", true, false},
	{"written_test", "written_test", true, true},
	{"practical_test", "practical_test", true, true},
}

// PartialUpdate applies the allow-listed subset of fields.  Unknown
// keys are ignored; an update carrying no usable field is rejected.
func (r *ApplicationRepo) PartialUpdate(ctx context.Context, key string, fields map[string]any) (model.Application, error) {
	var (
		set  []string
		args []any
	)
	for _, f := range updatableFields {
		v, ok := fields[f.json]
		if !ok {
			continue
		}
		if f.doc {
			if v != nil && f.objectOnly && !isObjectDoc(v) {
				return model.Application{}, fmt.Errorf("update application: %w",
					validationf("%s must be an object", f.json))
			}
			if v != nil && !f.objectOnly && !isArrayDoc(v) && !isObjectDoc(v) {
				return model.Application{}, fmt.Errorf("update application: %w",
					validationf("%s must be an array or object", f.json))
			}
			raw, err := marshalOptionalDoc(v)
			if err != nil {
				return model.Application{}, fmt.Errorf("update application: %w", err)
			}
			v = raw
		}
		if f.json == "email" {
			if s, ok := v.(string); ok && !validEmail(s) {
				return model.Application{}, fmt.Errorf("update application: %w",
					validationf("invalid email format: %s", s))
			}
		}
		if f.json == "payment_amount" {
			n, ok := v.(float64)
			if !ok || n < 0 {
				return model.Application{}, fmt.Errorf("update application: %w",
					validationf("payment_amount must be a non-negative number"))
			}
		}
		set = append(set, f.column+" = ?")
		args = append(args, v)
	}
	if len(set) == 0 {
		return model.Application{}, fmt.Errorf("update application: %w",
			validationf("no updatable fields supplied"))
	}
	return r.updateByKey(ctx, "application.update", key, strings.Join(set, ", "), args...)
}

// ListByUser returns one user's applications, newest first, with the
// total count for pagination.
func (r *ApplicationRepo) ListByUser(ctx context.Context, sub string, limit, offset int) ([]model.Application, int, error) {
	var total int
	err := r.store.queryRow(ctx, "application.count_by_user",
		"SELECT COUNT(*) FROM applications WHERE sub = ?",
		[]any{sub},
		func(row *sql.Row) error { return row.Scan(&total) })
	if err != nil {
		return nil, 0, fmt.Errorf("list applications for %s: %w", sub, err)
	}

	out := make([]model.Application, 0, limit)
	err = r.store.query(ctx, "application.list_by_user",
		"SELECT "+applicationColumns+" FROM applications WHERE sub = ? ORDER BY created_at DESC LIMIT ? OFFSET ?",
		[]any{sub, limit, offset},
		func(rows *sql.Rows) error {
			for rows.Next() {
				var a model.Application
				if err := scanApplication(rows.Scan, &a); err != nil {
					return err
				}
				out = append(out, a)
			}
			return nil
		})
	if err != nil {
		return nil, 0, fmt.Errorf("list applications for %s: %w", sub, err)
	}
	return out, total, nil
}

// updateByKey runs an UPDATE with the given SET clause against the
// same key resolution as GetByKey, then reads the row back.
func (r *ApplicationRepo) updateByKey(ctx context.Context, label, key, setClause string, setArgs ...any) (model.Application, error) {
	cond := "application_id = ? OR certificate_id = ?"
	args := append([]any{}, setArgs...)
	args = append(args, key, key)
	if n, err := strconv.ParseUint(key, 10, 64); err == nil {
		cond += " OR id = ?"
		args = append(args, n)
	}

	res, err := r.store.exec(ctx, label,
		"UPDATE applications SET "+setClause+" WHERE "+cond, args...)
	if err != nil {
		return model.Application{}, fmt.Errorf("update application %s: %w", key, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Application{}, fmt.Errorf("update application %s: %w", key, ErrNotFound)
	}
	return r.GetByKey(ctx, key)
}

// scanApplication scans one applications row through the given Scan
// function and normalizes the structured document columns.
func scanApplication(scan func(...any) error, a *model.Application) error {
	var (
		email, phone, gender, blood       sql.NullString
		doctor, hospital, vision, hearing sql.NullString
		remarks, photo, payRef, payOrder  sql.NullString
		dob, issued, expires              sql.NullTime
		categories, written, practical    []byte
	)
	if err := scan(
		&a.ID, &a.ApplicationID, &a.CertificateID, &a.Sub, &a.FullName, &email, &phone,
		&dob, &gender, &blood, &doctor, &hospital, &issued, &expires,
		&a.MedicallyFit, &vision, &hearing, &remarks, &photo,
		&categories, &written, &practical,
		&a.Status, &a.AdminStatus, &a.PaymentAmount, &payRef, &payOrder,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return err
	}
	a.Email = strPtr(email)
	a.Phone = strPtr(phone)
	a.DateOfBirth = datePtr(dob)
	a.Gender = strPtr(gender)
	a.BloodGroup = strPtr(blood)
	a.DoctorName = strPtr(doctor)
	a.HospitalName = strPtr(hospital)
	a.IssueDate = datePtr(issued)
	a.ExpiryDate = datePtr(expires)
	a.VisionStatus = strPtr(vision)
	a.HearingStatus = strPtr(hearing)
	a.Remarks = strPtr(remarks)
	a.PhotoURL = strPtr(photo)
	a.PaymentReference = strPtr(payRef)
	a.PaymentOrderID = strPtr(payOrder)
	a.SelectedCategories = normalizeDoc(categories)
	a.WrittenTest = normalizeDoc(written)
	a.PracticalTest = normalizeDoc(practical)
	return nil
}

// isObjectDoc reports whether v decodes as a JSON object.
func isObjectDoc(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// isArrayDoc reports whether v decodes as a JSON array.
func isArrayDoc(v any) bool {
	_, ok := v.([]any)
	return ok
}

func marshalDoc(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, validationf("invalid structured document: %v", err)
	}
	return raw, nil
}

func marshalOptionalDoc(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.([]byte); ok {
		return raw, nil
	}
	return marshalDoc(v)
}

// normalizeDoc turns a stored JSON column back into its structured
// form.  Legacy rows occasionally hold a JSON string containing the
// serialized document, so a string result is parsed one more time.
func normalizeDoc(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		// Not valid JSON at all; hand the text back rather than drop it.
		return string(raw)
	}
	if s, ok := v.(string); ok {
		var inner any
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			switch inner.(type) {
			case map[string]any, []any:
				return inner
			}
		}
	}
	return v
}
