package agent

import (
	"context"

	"medclaim/internal/domain"
	"medclaim/internal/port"
)

// DischargeAgent extracts discharge summary fields.
type DischargeAgent struct {
	client port.LLMClient
}

// NewDischargeAgent creates a DischargeAgent.
func NewDischargeAgent(client port.LLMClient) *DischargeAgent {
	return &DischargeAgent{client: client}
}

func (a *DischargeAgent) Kind() domain.DocumentKind { return domain.KindDischargeSummary }

func (a *DischargeAgent) Extract(ctx context.Context, text string) domain.StructuredRecord {
	response, err := a.client.Complete(ctx, buildDischargePrompt(text))
	if err != nil {
		return failedRecord(domain.KindDischargeSummary, err)
	}

	data, err := parseJSONObject(response)
	if err != nil {
		return failedRecord(domain.KindDischargeSummary, err)
	}

	fields := &domain.DischargeSummaryFields{
		PatientName:        asString(data["patient_name"]),
		PatientID:          asString(data["patient_id"]),
		Diagnosis:          asString(data["diagnosis"]),
		AdmissionDate:      asDate(data["admission_date"]),
		DischargeDate:      asDate(data["discharge_date"]),
		Procedures:         asStringList(data["procedures"]),
		Medications:        asStringList(data["medications"]),
		AttendingPhysician: asString(data["attending_physician"]),
		FacilityName:       asString(data["facility_name"]),
	}

	return domain.StructuredRecord{Kind: domain.KindDischargeSummary, DischargeSummary: fields}
}
