package agent

import (
	"fmt"
	"strings"

	"medclaim/internal/domain"
)

// classifyPrefixLimit bounds the amount of document text sent for
// classification, keeping prompt cost flat regardless of document size.
const classifyPrefixLimit = 2000

func buildClassificationPrompt(filename, text string) string {
	if len(text) > classifyPrefixLimit {
		text = text[:classifyPrefixLimit]
	}
	return fmt.Sprintf(`You are an expert document classifier for medical insurance claims.
Your task is to classify the following document based on its filename and content.

Filename: %s
Document content (first %d chars):
%s

Possible document types:
- bill: Hospital or medical bill with charges
- discharge_summary: Hospital discharge summary with patient details and treatment
- id_card: Insurance ID card with policy information
- prescription: Doctor's prescription
- lab_report: Laboratory test results
- unknown: If the document doesn't fit any category

Respond with ONLY the document type (bill, discharge_summary, id_card, prescription, lab_report, or unknown).
Do not include any other text in your response.`, filename, classifyPrefixLimit, text)
}

// classificationAliases maps loose backend replies to kinds. Anything not
// listed resolves to unknown.
var classificationAliases = map[string]domain.DocumentKind{
	"bill":              domain.KindBill,
	"invoice":           domain.KindBill,
	"discharge":         domain.KindDischargeSummary,
	"discharge summary": domain.KindDischargeSummary,
	"discharge_summary": domain.KindDischargeSummary,
	"id":                domain.KindIDCard,
	"id card":           domain.KindIDCard,
	"id_card":           domain.KindIDCard,
	"insurance card":    domain.KindIDCard,
	"prescription":      domain.KindPrescription,
	"lab":               domain.KindLabReport,
	"lab report":        domain.KindLabReport,
	"lab_report":        domain.KindLabReport,
	"test results":      domain.KindLabReport,
}

func parseClassification(response string) domain.DocumentKind {
	label := strings.ToLower(strings.TrimSpace(response))
	label = strings.Trim(label, `"'.`)
	if kind, ok := classificationAliases[label]; ok {
		return kind
	}
	return domain.KindUnknown
}

func buildBillPrompt(text string) string {
	return fmt.Sprintf(`You are an expert medical bill processor. Extract the following information from the bill:

Bill Text:
%s

Extract the following information in JSON format:
1. hospital_name: Name of the hospital or medical facility
2. total_amount: Total amount due (as a number)
3. date_of_service: Date of service in YYYY-MM-DD format
4. patient_name: Name of the patient (if available)
5. patient_id: Patient ID or MRN (if available)
6. diagnosis_codes: List of diagnosis codes (ICD-10 format)
7. procedure_codes: List of procedure codes (CPT/HCPCS format)
8. items: List of items with description, quantity, and amount

Example Output:
{
  "hospital_name": "General Hospital",
  "total_amount": 1250.75,
  "date_of_service": "2024-04-10",
  "patient_name": "John Doe",
  "patient_id": "MRN123456",
  "diagnosis_codes": ["E11.65", "I10"],
  "procedure_codes": ["99213", "J3423"],
  "items": [
    {"description": "Doctor Consultation", "quantity": 1, "amount": 250.00},
    {"description": "Lab Tests", "quantity": 2, "amount": 500.00}
  ]
}

Return ONLY the JSON object. If a field is not found, use null.`, text)
}

func buildDischargePrompt(text string) string {
	return fmt.Sprintf(`You are an expert at extracting information from hospital discharge summaries.
Extract the following information from the discharge summary below:

1. Patient Name
2. Patient ID or MRN (if available)
3. Primary Diagnosis
4. Admission Date (in YYYY-MM-DD format)
5. Discharge Date (in YYYY-MM-DD format)
6. List of medical procedures performed
7. List of prescribed medications
8. Attending Physician Name (if available)
9. Facility/Hospital Name

Discharge Summary Content:
%s

Respond with a JSON object in this exact format:
{
    "patient_name": "Patient's full name",
    "patient_id": "MRN123456",
    "diagnosis": "Primary diagnosis",
    "admission_date": "YYYY-MM-DD",
    "discharge_date": "YYYY-MM-DD",
    "procedures": ["Procedure 1", "Procedure 2"],
    "medications": ["Medication 1", "Medication 2"],
    "attending_physician": "Dr. Name",
    "facility_name": "Hospital/Clinic Name"
}

If any information is not found, use null for that field.`, text)
}

func buildIDCardPrompt(text string) string {
	return fmt.Sprintf(`You are an expert at processing insurance ID cards. Extract the following information from the ID card:

ID Card Text:
%s

Extract the following information in JSON format:
1. insurance_provider: Name of the insurance company
2. policy_number: Policy or group policy number
3. member_id: Member/Subscriber ID
4. member_name: Name of the insured member
5. group_number: Group number (if applicable)
6. relationship: Relationship to primary policyholder (self, spouse, child, etc.)
7. effective_date: Coverage start date (YYYY-MM-DD)
8. expiration_date: Coverage end date (YYYY-MM-DD, if available)

Example Output:
{
  "insurance_provider": "Blue Cross Blue Shield",
  "policy_number": "GP123456789",
  "member_id": "MEMBER12345",
  "member_name": "John A. Smith",
  "group_number": "GRP987654",
  "relationship": "self",
  "effective_date": "2024-01-01",
  "expiration_date": "2024-12-31"
}

Return ONLY the JSON object. If a field is not found, use null.`, text)
}

func buildPrescriptionPrompt(text string) string {
	return fmt.Sprintf(`You are an expert at processing medical prescriptions. Extract the following information from the prescription:

Prescription Text:
%s

Extract the following information in JSON format:
1. patient_name: Name of the patient
2. date_prescribed: Date the prescription was written (YYYY-MM-DD)
3. medications: List of prescribed medications with dosage
4. prescriber_name: Name of the prescribing doctor
5. prescriber_license: License number of the prescriber (if available)
6. instructions: Usage instructions

Example Output:
{
  "patient_name": "John Doe",
  "date_prescribed": "2024-04-10",
  "medications": ["Amoxicillin 500mg", "Ibuprofen 200mg"],
  "prescriber_name": "Dr. Jane Smith",
  "prescriber_license": "MD12345",
  "instructions": "Take with food, twice daily"
}

Return ONLY the JSON object. If a field is not found, use null.`, text)
}

func buildLabReportPrompt(text string) string {
	return fmt.Sprintf(`You are an expert at processing laboratory test reports. Extract the following information from the lab report:

Lab Report Text:
%s

Extract the following information in JSON format:
1. patient_name: Name of the patient
2. patient_id: Patient ID or MRN (if available)
3. date_collected: Date the sample was collected (YYYY-MM-DD)
4. date_reported: Date the results were reported (YYYY-MM-DD)
5. test_results: List of test results, each with test, value, and unit
6. lab_name: Name of the laboratory
7. ordering_physician: Name of the ordering physician

Example Output:
{
  "patient_name": "John Doe",
  "patient_id": "MRN123456",
  "date_collected": "2024-04-08",
  "date_reported": "2024-04-10",
  "test_results": [
    {"test": "Hemoglobin", "value": "13.5", "unit": "g/dL"},
    {"test": "Glucose", "value": "98", "unit": "mg/dL"}
  ],
  "lab_name": "Quest Diagnostics",
  "ordering_physician": "Dr. Jane Smith"
}

Return ONLY the JSON object. If a field is not found, use null.`, text)
}
