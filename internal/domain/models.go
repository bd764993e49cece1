package domain

import "encoding/json"

// RawDocument is one uploaded file as received at the intake boundary.
// It is discarded once text has been extracted.
type RawDocument struct {
	FileName    string
	Content     []byte
	ContentType string
}

// ExtractedText is the plain-text form of a single raw document.
type ExtractedText struct {
	SourceFileName string
	Text           string
	Method         ExtractionMethod
}

// BillItem is a single charge line on a medical bill.
type BillItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Amount      float64 `json:"amount"`
}

// BillFields holds the extracted fields of a medical bill.
type BillFields struct {
	HospitalName   string     `json:"hospital_name"`
	TotalAmount    float64    `json:"total_amount"`
	DateOfService  string     `json:"date_of_service"`
	PatientName    string     `json:"patient_name"`
	PatientID      string     `json:"patient_id"`
	DiagnosisCodes []string   `json:"diagnosis_codes"`
	ProcedureCodes []string   `json:"procedure_codes"`
	Items          []BillItem `json:"items"`
}

// DischargeSummaryFields holds the extracted fields of a discharge summary.
type DischargeSummaryFields struct {
	PatientName        string   `json:"patient_name"`
	PatientID          string   `json:"patient_id"`
	Diagnosis          string   `json:"diagnosis"`
	AdmissionDate      string   `json:"admission_date"`
	DischargeDate      string   `json:"discharge_date"`
	Procedures         []string `json:"procedures"`
	Medications        []string `json:"medications"`
	AttendingPhysician string   `json:"attending_physician"`
	FacilityName       string   `json:"facility_name"`
}

// IDCardFields holds the extracted fields of an insurance ID card.
type IDCardFields struct {
	InsuranceProvider string `json:"insurance_provider"`
	PolicyNumber      string `json:"policy_number"`
	MemberID          string `json:"member_id"`
	MemberName        string `json:"member_name"`
	GroupNumber       string `json:"group_number"`
	Relationship      string `json:"relationship"`
	EffectiveDate     string `json:"effective_date"`
	ExpirationDate    string `json:"expiration_date"`
}

// PrescriptionFields holds the extracted fields of a prescription.
type PrescriptionFields struct {
	PatientName       string   `json:"patient_name"`
	DatePrescribed    string   `json:"date_prescribed"`
	Medications       []string `json:"medications"`
	PrescriberName    string   `json:"prescriber_name"`
	PrescriberLicense string   `json:"prescriber_license"`
	Instructions      string   `json:"instructions"`
}

// LabResult is a single test result line on a lab report.
type LabResult struct {
	Test  string `json:"test"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// LabReportFields holds the extracted fields of a lab report.
type LabReportFields struct {
	PatientName       string      `json:"patient_name"`
	PatientID         string      `json:"patient_id"`
	DateCollected     string      `json:"date_collected"`
	DateReported      string      `json:"date_reported"`
	TestResults       []LabResult `json:"test_results"`
	LabName           string      `json:"lab_name"`
	OrderingPhysician string      `json:"ordering_physician"`
}

// StructuredRecord is the tagged-variant result of processing one document.
// Exactly one variant pointer is set for classified kinds; all are nil for
// unknown or fully failed documents.
type StructuredRecord struct {
	Kind             DocumentKind
	FileName         string
	ExtractionFailed bool
	Error            string

	Bill             *BillFields
	DischargeSummary *DischargeSummaryFields
	IDCard           *IDCardFields
	Prescription     *PrescriptionFields
	LabReport        *LabReportFields
}

// MarshalJSON flattens the active variant's fields to the top level of the
// document object, beside type and file_name. This flat shape is the external
// contract for the documents array.
func (r StructuredRecord) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"type":      r.Kind,
		"file_name": r.FileName,
	}
	if r.ExtractionFailed {
		out["extraction_failed"] = true
	}
	if r.Error != "" {
		out["error"] = r.Error
	}

	var variant interface{}
	switch {
	case r.Bill != nil:
		variant = r.Bill
	case r.DischargeSummary != nil:
		variant = r.DischargeSummary
	case r.IDCard != nil:
		variant = r.IDCard
	case r.Prescription != nil:
		variant = r.Prescription
	case r.LabReport != nil:
		variant = r.LabReport
	}
	if variant != nil {
		raw, err := json.Marshal(variant)
		if err != nil {
			return nil, err
		}
		fields := map[string]interface{}{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
		for k, v := range fields {
			out[k] = v
		}
	}

	return json.Marshal(out)
}

// ClaimBundle is the ordered set of structured records for one submission.
// Record order equals submission order.
type ClaimBundle []StructuredRecord

// Discrepancy is a logical field on which two or more documents disagree.
type Discrepancy struct {
	Field            string            `json:"field"`
	ValuesByDocument map[string]string `json:"values_by_document"`
}

// ValidationReport is the result of checking a bundle for completeness and
// cross-document consistency.
type ValidationReport struct {
	MissingDocuments []DocumentKind `json:"missing_documents"`
	Discrepancies    []Discrepancy  `json:"discrepancies"`
	IsValid          bool           `json:"is_valid"`
}

// Valid reports whether the bundle passed validation. It is derived from the
// two lists rather than stored state.
func (r ValidationReport) Valid() bool {
	return len(r.MissingDocuments) == 0 && len(r.Discrepancies) == 0
}

// Decision is the claim-level verdict.
type Decision struct {
	Status         ClaimStatus `json:"status"`
	Reason         string      `json:"reason"`
	AmountApproved float64     `json:"amount_approved"`
	AmountRejected float64     `json:"amount_rejected"`
}

// ClaimMetadata carries processing diagnostics alongside the result.
type ClaimMetadata struct {
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
	ProcessedAt           string   `json:"processed_at"`
	DocumentsReceived     int      `json:"documents_received"`
	DocumentsProcessed    int      `json:"documents_processed"`
	ProcessingErrors      []string `json:"processing_errors,omitempty"`
}

// ProcessedClaim is the full processing result for one submission.
type ProcessedClaim struct {
	Documents  ClaimBundle      `json:"documents"`
	Validation ValidationReport `json:"validation"`
	Decision   Decision         `json:"decision"`
	Metadata   ClaimMetadata    `json:"metadata"`
}
