package agent

import (
	"context"
	"encoding/json"

	"medclaim/internal/domain"
	"medclaim/internal/port"
)

// LabReportAgent extracts lab report fields.
type LabReportAgent struct {
	client port.LLMClient
}

// NewLabReportAgent creates a LabReportAgent.
func NewLabReportAgent(client port.LLMClient) *LabReportAgent {
	return &LabReportAgent{client: client}
}

func (a *LabReportAgent) Kind() domain.DocumentKind { return domain.KindLabReport }

func (a *LabReportAgent) Extract(ctx context.Context, text string) domain.StructuredRecord {
	response, err := a.client.Complete(ctx, buildLabReportPrompt(text))
	if err != nil {
		return failedRecord(domain.KindLabReport, err)
	}

	data, err := parseJSONObject(response)
	if err != nil {
		return failedRecord(domain.KindLabReport, err)
	}

	fields := &domain.LabReportFields{
		PatientName:       asString(data["patient_name"]),
		PatientID:         asString(data["patient_id"]),
		DateCollected:     asDate(data["date_collected"]),
		DateReported:      asDate(data["date_reported"]),
		LabName:           asString(data["lab_name"]),
		OrderingPhysician: asString(data["ordering_physician"]),
	}
	for _, tr := range asObjectList(data["test_results"]) {
		fields.TestResults = append(fields.TestResults, domain.LabResult{
			Test:  asString(tr["test"]),
			Value: stringify(tr["value"]),
			Unit:  asString(tr["unit"]),
		})
	}

	return domain.StructuredRecord{Kind: domain.KindLabReport, LabReport: fields}
}

// stringify keeps numeric result values as their literal text.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		b, _ := json.Marshal(t)
		return string(b)
	default:
		return ""
	}
}
