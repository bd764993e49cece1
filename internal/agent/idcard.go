package agent

import (
	"context"

	"medclaim/internal/domain"
	"medclaim/internal/port"
)

// IDCardAgent extracts insurance ID card fields.
type IDCardAgent struct {
	client port.LLMClient
}

// NewIDCardAgent creates an IDCardAgent.
func NewIDCardAgent(client port.LLMClient) *IDCardAgent {
	return &IDCardAgent{client: client}
}

func (a *IDCardAgent) Kind() domain.DocumentKind { return domain.KindIDCard }

func (a *IDCardAgent) Extract(ctx context.Context, text string) domain.StructuredRecord {
	response, err := a.client.Complete(ctx, buildIDCardPrompt(text))
	if err != nil {
		return failedRecord(domain.KindIDCard, err)
	}

	data, err := parseJSONObject(response)
	if err != nil {
		return failedRecord(domain.KindIDCard, err)
	}

	fields := &domain.IDCardFields{
		InsuranceProvider: asString(data["insurance_provider"]),
		PolicyNumber:      asString(data["policy_number"]),
		MemberID:          asString(data["member_id"]),
		MemberName:        asString(data["member_name"]),
		GroupNumber:       asString(data["group_number"]),
		Relationship:      asString(data["relationship"]),
		EffectiveDate:     asDate(data["effective_date"]),
		ExpirationDate:    asDate(data["expiration_date"]),
	}

	return domain.StructuredRecord{Kind: domain.KindIDCard, IDCard: fields}
}
