package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/iliyamo/driving-licence-admin/internal/model"
)

// CertificateRepo persists medical certificates keyed by their
// externally assigned certificate id.
type CertificateRepo struct {
	store *Store
}

func NewCertificateRepo(store *Store) *CertificateRepo { return &CertificateRepo{store: store} }

const certificateColumns = `id, certificate_id, sub, issue_date, expiry_date, doctor_name,
	hospital_name, medically_fit, vision_status, hearing_status, remarks, created_at, updated_at`

// Upsert inserts or updates a certificate keyed by certificate_id.
func (r *CertificateRepo) Upsert(ctx context.Context, m *model.MedicalCertificate) (model.MedicalCertificate, error) {
	m.CertificateID = strings.TrimSpace(m.CertificateID)
	if err := requireFields(
		field{"certificate_id", m.CertificateID},
		field{"sub", m.Sub},
		field{"issue_date", m.IssueDate},
		field{"expiry_date", m.ExpiryDate},
		field{"doctor_name", m.DoctorName},
		field{"hospital_name", m.HospitalName},
	); err != nil {
		return model.MedicalCertificate{}, fmt.Errorf("save medical certificate: %w", err)
	}

	_, err := r.store.exec(ctx, "certificate.upsert",
		`INSERT INTO medical_certificates
			(certificate_id, sub, issue_date, expiry_date, doctor_name, hospital_name,
			 medically_fit, vision_status, hearing_status, remarks)
		VALUES (?,?,?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			issue_date = VALUES(issue_date),
			expiry_date = VALUES(expiry_date),
			doctor_name = VALUES(doctor_name),
			hospital_name = VALUES(hospital_name),
			medically_fit = VALUES(medically_fit),
			vision_status = VALUES(vision_status),
			hearing_status = VALUES(hearing_status),
			remarks = VALUES(remarks)`,
		m.CertificateID, m.Sub, m.IssueDate, m.ExpiryDate, m.DoctorName, m.HospitalName,
		m.MedicallyFit, nullStr(m.VisionStatus), nullStr(m.HearingStatus), nullStr(m.Remarks))
	if err != nil {
		return model.MedicalCertificate{}, fmt.Errorf("save medical certificate: %w", err)
	}
	return r.GetByID(ctx, m.CertificateID)
}

// GetByID fetches a certificate by certificate id.
func (r *CertificateRepo) GetByID(ctx context.Context, certificateID string) (model.MedicalCertificate, error) {
	var (
		m                model.MedicalCertificate
		issued, expires  sql.NullTime
		vision, hearing  sql.NullString
		remarks          sql.NullString
	)
	err := r.store.queryRow(ctx, "certificate.get",
		"SELECT "+certificateColumns+" FROM medical_certificates WHERE certificate_id = ? LIMIT 1",
		[]any{certificateID},
		func(row *sql.Row) error {
			return row.Scan(&m.ID, &m.CertificateID, &m.Sub, &issued, &expires, &m.DoctorName,
				&m.HospitalName, &m.MedicallyFit, &vision, &hearing, &remarks, &m.CreatedAt, &m.UpdatedAt)
		})
	if err == sql.ErrNoRows {
		return model.MedicalCertificate{}, fmt.Errorf("find medical certificate %s: %w", certificateID, ErrNotFound)
	}
	if err != nil {
		return model.MedicalCertificate{}, fmt.Errorf("find medical certificate %s: %w", certificateID, err)
	}
	if issued.Valid {
		m.IssueDate = issued.Time.Format(dateLayout)
	}
	if expires.Valid {
		m.ExpiryDate = expires.Time.Format(dateLayout)
	}
	m.VisionStatus = strPtr(vision)
	m.HearingStatus = strPtr(hearing)
	m.Remarks = strPtr(remarks)
	return m, nil
}
