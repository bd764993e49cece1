package service

import (
	"fmt"
	"strings"

	"medclaim/internal/domain"
)

// logicalField is one cross-document fact that should agree wherever it
// appears. value returns the field's text for a record, or "" when the
// record's kind doesn't carry it.
type logicalField struct {
	name  string
	value func(r domain.StructuredRecord) string
}

// consistencyFields declares which facts are compared across documents, in
// report order.
var consistencyFields = []logicalField{
	{
		name: "patient_name",
		value: func(r domain.StructuredRecord) string {
			switch {
			case r.Bill != nil:
				return r.Bill.PatientName
			case r.DischargeSummary != nil:
				return r.DischargeSummary.PatientName
			case r.IDCard != nil:
				return r.IDCard.MemberName
			case r.Prescription != nil:
				return r.Prescription.PatientName
			case r.LabReport != nil:
				return r.LabReport.PatientName
			}
			return ""
		},
	},
	{
		name: "patient_id",
		value: func(r domain.StructuredRecord) string {
			switch {
			case r.Bill != nil:
				return r.Bill.PatientID
			case r.DischargeSummary != nil:
				return r.DischargeSummary.PatientID
			case r.LabReport != nil:
				return r.LabReport.PatientID
			}
			return ""
		},
	},
}

// Validator checks a bundle for completeness and cross-document consistency.
// Validate is pure: the same bundle always yields the same report.
type Validator struct {
	required []domain.DocumentKind
}

// NewValidator creates a Validator requiring the given kinds. An empty list
// falls back to the default set {bill, id_card}.
func NewValidator(required []domain.DocumentKind) *Validator {
	if len(required) == 0 {
		required = []domain.DocumentKind{domain.KindBill, domain.KindIDCard}
	}
	return &Validator{required: required}
}

// Validate produces the bundle's validation report. is_valid is the
// conjunction of "no missing documents" and "no discrepancies".
func (v *Validator) Validate(bundle domain.ClaimBundle) domain.ValidationReport {
	report := domain.ValidationReport{
		MissingDocuments: []domain.DocumentKind{},
		Discrepancies:    []domain.Discrepancy{},
	}

	present := make(map[domain.DocumentKind]bool, len(bundle))
	for _, r := range bundle {
		present[r.Kind] = true
	}
	for _, kind := range v.required {
		if !present[kind] {
			report.MissingDocuments = append(report.MissingDocuments, kind)
		}
	}

	for _, field := range consistencyFields {
		if d, ok := findDiscrepancy(bundle, field); ok {
			report.Discrepancies = append(report.Discrepancies, d)
		}
	}

	report.IsValid = report.Valid()
	return report
}

// findDiscrepancy collects the field's non-empty values per document and
// flags the field when two or more documents disagree after normalization.
// A value present in only one document cannot disagree with anything.
func findDiscrepancy(bundle domain.ClaimBundle, field logicalField) (domain.Discrepancy, bool) {
	values := map[string]string{}
	distinct := map[string]bool{}

	for i, r := range bundle {
		val := strings.TrimSpace(field.value(r))
		if val == "" {
			continue
		}
		values[documentKey(r, i)] = val
		distinct[normalizeValue(val)] = true
	}

	if len(values) < 2 || len(distinct) < 2 {
		return domain.Discrepancy{}, false
	}
	return domain.Discrepancy{Field: field.name, ValuesByDocument: values}, true
}

func documentKey(r domain.StructuredRecord, index int) string {
	if r.FileName != "" {
		return r.FileName
	}
	return fmt.Sprintf("document_%d", index)
}

// normalizeValue lowers case and collapses interior whitespace so formatting
// differences alone never count as a discrepancy.
func normalizeValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
