package domain

// DocumentKind is the closed set of document categories the pipeline handles.
type DocumentKind string

const (
	KindBill             DocumentKind = "bill"
	KindDischargeSummary DocumentKind = "discharge_summary"
	KindIDCard           DocumentKind = "id_card"
	KindPrescription     DocumentKind = "prescription"
	KindLabReport        DocumentKind = "lab_report"
	KindUnknown          DocumentKind = "unknown"
)

// AllKinds lists every classifiable document kind, excluding unknown.
var AllKinds = []DocumentKind{
	KindBill,
	KindDischargeSummary,
	KindIDCard,
	KindPrescription,
	KindLabReport,
}

// KindDescriptions maps each kind to a human-readable description used in
// validation messages and the document-types endpoint.
var KindDescriptions = map[DocumentKind]string{
	KindBill:             "Medical bill or invoice",
	KindDischargeSummary: "Hospital discharge summary",
	KindIDCard:           "Insurance ID card",
	KindPrescription:     "Medical prescription",
	KindLabReport:        "Laboratory test results",
}

// ParseDocumentKind maps a string to a DocumentKind, defaulting to unknown.
func ParseDocumentKind(s string) DocumentKind {
	switch DocumentKind(s) {
	case KindBill, KindDischargeSummary, KindIDCard, KindPrescription, KindLabReport:
		return DocumentKind(s)
	default:
		return KindUnknown
	}
}

// ClaimStatus is the outcome of a claim decision.
type ClaimStatus string

const (
	StatusApproved    ClaimStatus = "approved"
	StatusRejected    ClaimStatus = "rejected"
	StatusNeedsReview ClaimStatus = "needs_review"
)

// ExtractionMethod records how plain text was obtained from a raw document.
type ExtractionMethod string

const (
	MethodPDFText   ExtractionMethod = "pdf_text"
	MethodOCR       ExtractionMethod = "ocr"
	MethodPlainText ExtractionMethod = "plain_text"
)

// PolicyAction is the configured outcome for a validation failure category.
type PolicyAction string

const (
	ActionReject PolicyAction = "reject"
	ActionReview PolicyAction = "review"
)

// AllowedContentTypes maps accepted MIME content types to their extraction method.
var AllowedContentTypes = map[string]ExtractionMethod{
	"application/pdf": MethodPDFText,
	"image/jpeg":      MethodOCR,
	"image/png":       MethodOCR,
	"text/plain":      MethodPlainText,
}
