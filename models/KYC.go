package models

// KYCDocuments are the identity inputs a tenant submits for verification.
type KYCDocuments struct {
	AadhaarNumber string `json:"aadhaar_number" validate:"required"`
	PANNumber     string `json:"pan_number" validate:"required"`
	SelfieImage   string `json:"selfie_image" validate:"required"`
	EmployerName  string `json:"employer_name"`
}

const (
	CheckVerified  = "verified"
	CheckAvailable = "available"
	FaceMatch      = "match"
	FaceNoMatch    = "no_match"
)

type NationalIDResult struct {
	Status         string `json:"status"`
	Name           string `json:"name"`
	Gender         string `json:"gender"`
	Address        string `json:"address"`
	VerificationID string `json:"verification_id"`
}

type TaxIDResult struct {
	Status         string `json:"status"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	VerificationID string `json:"verification_id"`
}

type FaceMatchResult struct {
	MatchScore     float64 `json:"match_score"`
	Status         string  `json:"status"`
	VerificationID string  `json:"verification_id"`
}

type LockerDocument struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Status string `json:"status"`
}

type DocumentLockerResult struct {
	Documents []LockerDocument `json:"documents"`
}

type EmployerResult struct {
	CompanyFound bool    `json:"company_found"`
	CompanyName  *string `json:"company_name"`
	CIN          *string `json:"cin"`
	Status       string  `json:"status"`
}

// VerificationResults is the audit record stored on the user after a KYC run.
type VerificationResults struct {
	AadhaarVerification  NationalIDResult     `json:"aadhaar_verification"`
	PANVerification      TaxIDResult          `json:"pan_verification"`
	FaceMatch            FaceMatchResult      `json:"face_match"`
	DigiLockerDocs       DocumentLockerResult `json:"digilocker_docs"`
	EmployerVerification *EmployerResult      `json:"employer_verification,omitempty"`
}

// Eligible is true only when identity, tax id and face match all passed.
// Document locker and employer results are informational.
func (r VerificationResults) Eligible() bool {
	return r.AadhaarVerification.Status == CheckVerified &&
		r.PANVerification.Status == CheckVerified &&
		r.FaceMatch.Status == FaceMatch
}
