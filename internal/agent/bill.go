package agent

import (
	"context"

	"medclaim/internal/domain"
	"medclaim/internal/port"
)

// BillAgent extracts medical bill fields.
type BillAgent struct {
	client port.LLMClient
}

// NewBillAgent creates a BillAgent.
func NewBillAgent(client port.LLMClient) *BillAgent {
	return &BillAgent{client: client}
}

func (a *BillAgent) Kind() domain.DocumentKind { return domain.KindBill }

func (a *BillAgent) Extract(ctx context.Context, text string) domain.StructuredRecord {
	response, err := a.client.Complete(ctx, buildBillPrompt(text))
	if err != nil {
		return failedRecord(domain.KindBill, err)
	}

	data, err := parseJSONObject(response)
	if err != nil {
		return failedRecord(domain.KindBill, err)
	}

	fields := &domain.BillFields{
		HospitalName:   asString(data["hospital_name"]),
		DateOfService:  asDate(data["date_of_service"]),
		PatientName:    asString(data["patient_name"]),
		PatientID:      asString(data["patient_id"]),
		DiagnosisCodes: asStringList(data["diagnosis_codes"]),
		ProcedureCodes: asStringList(data["procedure_codes"]),
	}
	if amount, ok := asAmount(data["total_amount"]); ok {
		fields.TotalAmount = amount
	}
	for _, item := range asObjectList(data["items"]) {
		bi := domain.BillItem{Description: asString(item["description"])}
		if qty, ok := asAmount(item["quantity"]); ok {
			bi.Quantity = qty
		}
		if amt, ok := asAmount(item["amount"]); ok {
			bi.Amount = amt
		}
		fields.Items = append(fields.Items, bi)
	}

	return domain.StructuredRecord{Kind: domain.KindBill, Bill: fields}
}
