package model

import "time"

// MedicalCertificate records the outcome of an applicant's medical
// examination.  Certificates are keyed by an externally assigned
// certificate id and referenced by applications, which embed a
// denormalized snapshot of the certificate data at submission time.
//
// Fields:
//  ID            – primary key identifier.
//  CertificateID – unique certificate identifier.
//  Sub           – owning user's subject identifier.
//  IssueDate     – date the certificate was issued (YYYY-MM-DD).
//  ExpiryDate    – date the certificate expires.
//  DoctorName    – examining doctor.
//  HospitalName  – issuing hospital or clinic.
//  MedicallyFit  – overall fitness-to-drive flag.
//  VisionStatus  – vision examination result.
//  HearingStatus – hearing examination result.
//  Remarks       – optional free-form remarks.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type MedicalCertificate struct {
	ID            uint64    `json:"id"`             // medical_certificates.id
	CertificateID string    `json:"certificate_id"` // medical_certificates.certificate_id
	Sub           string    `json:"sub"`            // medical_certificates.sub
	IssueDate     string    `json:"issue_date"`     // medical_certificates.issue_date
	ExpiryDate    string    `json:"expiry_date"`    // medical_certificates.expiry_date
	DoctorName    string    `json:"doctor_name"`    // medical_certificates.doctor_name
	HospitalName  string    `json:"hospital_name"`  // medical_certificates.hospital_name
	MedicallyFit  bool      `json:"medically_fit"`  // medical_certificates.medically_fit
	VisionStatus  *string   `json:"vision_status"`  // medical_certificates.vision_status (nullable)
	HearingStatus *string   `json:"hearing_status"` // medical_certificates.hearing_status (nullable)
	Remarks       *string   `json:"remarks"`        // medical_certificates.remarks (nullable)
	CreatedAt     time.Time `json:"created_at"`     // medical_certificates.created_at
	UpdatedAt     time.Time `json:"updated_at"`     // medical_certificates.updated_at
}
