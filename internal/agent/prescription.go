package agent

import (
	"context"

	"medclaim/internal/domain"
	"medclaim/internal/port"
)

// PrescriptionAgent extracts prescription fields.
type PrescriptionAgent struct {
	client port.LLMClient
}

// NewPrescriptionAgent creates a PrescriptionAgent.
func NewPrescriptionAgent(client port.LLMClient) *PrescriptionAgent {
	return &PrescriptionAgent{client: client}
}

func (a *PrescriptionAgent) Kind() domain.DocumentKind { return domain.KindPrescription }

func (a *PrescriptionAgent) Extract(ctx context.Context, text string) domain.StructuredRecord {
	response, err := a.client.Complete(ctx, buildPrescriptionPrompt(text))
	if err != nil {
		return failedRecord(domain.KindPrescription, err)
	}

	data, err := parseJSONObject(response)
	if err != nil {
		return failedRecord(domain.KindPrescription, err)
	}

	fields := &domain.PrescriptionFields{
		PatientName:       asString(data["patient_name"]),
		DatePrescribed:    asDate(data["date_prescribed"]),
		Medications:       asStringList(data["medications"]),
		PrescriberName:    asString(data["prescriber_name"]),
		PrescriberLicense: asString(data["prescriber_license"]),
		Instructions:      asString(data["instructions"]),
	}

	return domain.StructuredRecord{Kind: domain.KindPrescription, Prescription: fields}
}
