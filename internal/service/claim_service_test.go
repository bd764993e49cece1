package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medclaim/internal/agent"
	"medclaim/internal/domain"
	"medclaim/internal/port"
	"medclaim/internal/service"
	"medclaim/mocks"
)

func newTestService(extractor *mocks.MockTextExtractor, llm *mocks.MockLLMClient, workers int) port.ClaimProcessor {
	return service.NewClaimService(
		extractor,
		agent.NewClassifier(llm),
		agent.DefaultRegistry(llm),
		service.NewValidator(nil),
		service.NewDecisionEngine(defaultPolicy()),
		nil,
		service.ClaimServiceConfig{Workers: workers},
	)
}

func classifyPromptFor(filename string) interface{} {
	return mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "document classifier") && strings.Contains(prompt, filename)
	})
}

func agentPromptContaining(marker string) interface{} {
	return mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, marker)
	})
}

func TestProcess_EmptySubmission(t *testing.T) {
	svc := newTestService(new(mocks.MockTextExtractor), new(mocks.MockLLMClient), 2)

	result, err := svc.Process(context.Background(), nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrEmptySubmission)
}

func TestProcess_EndToEndApproved(t *testing.T) {
	billDoc := domain.RawDocument{FileName: "bill.pdf", Content: []byte("raw"), ContentType: "application/pdf"}
	cardDoc := domain.RawDocument{FileName: "card.txt", Content: []byte("raw"), ContentType: "text/plain"}

	extractor := new(mocks.MockTextExtractor)
	extractor.On("Extract", mock.Anything, billDoc).
		Return(domain.ExtractedText{SourceFileName: "bill.pdf", Text: "bill body", Method: domain.MethodPDFText}, nil)
	extractor.On("Extract", mock.Anything, cardDoc).
		Return(domain.ExtractedText{SourceFileName: "card.txt", Text: "card body", Method: domain.MethodPlainText}, nil)

	llm := new(mocks.MockLLMClient)
	llm.On("Complete", mock.Anything, classifyPromptFor("bill.pdf")).Return("bill", nil)
	llm.On("Complete", mock.Anything, classifyPromptFor("card.txt")).Return("id_card", nil)
	llm.On("Complete", mock.Anything, agentPromptContaining("medical bill processor")).
		Return(`{"hospital_name": "General Hospital", "total_amount": 1250.75, "patient_name": "John Doe"}`, nil)
	llm.On("Complete", mock.Anything, agentPromptContaining("insurance ID cards")).
		Return(`{"insurance_provider": "Blue Cross", "member_name": "John Doe"}`, nil)

	svc := newTestService(extractor, llm, 2)
	result, err := svc.Process(context.Background(), []domain.RawDocument{billDoc, cardDoc})

	require.NoError(t, err)
	require.Len(t, result.Documents, 2)
	assert.Equal(t, "bill.pdf", result.Documents[0].FileName)
	assert.Equal(t, domain.KindBill, result.Documents[0].Kind)
	assert.Equal(t, "card.txt", result.Documents[1].FileName)
	assert.Equal(t, domain.KindIDCard, result.Documents[1].Kind)

	assert.True(t, result.Validation.IsValid)
	assert.Equal(t, domain.StatusApproved, result.Decision.Status)
	assert.Equal(t, 1250.75, result.Decision.AmountApproved)

	assert.Equal(t, 2, result.Metadata.DocumentsReceived)
	assert.Equal(t, 2, result.Metadata.DocumentsProcessed)
	assert.Empty(t, result.Metadata.ProcessingErrors)
}

func TestProcess_OrderMatchesSubmissionOrder(t *testing.T) {
	docs := []domain.RawDocument{
		{FileName: "first.txt", Content: []byte("a"), ContentType: "text/plain"},
		{FileName: "second.txt", Content: []byte("b"), ContentType: "text/plain"},
		{FileName: "third.txt", Content: []byte("c"), ContentType: "text/plain"},
	}

	// The first document finishes last; result order must not depend on
	// completion order.
	delays := map[string]time.Duration{"first.txt": 60 * time.Millisecond, "second.txt": 20 * time.Millisecond}

	extractor := new(mocks.MockTextExtractor)
	for _, doc := range docs {
		doc := doc
		extractor.On("Extract", mock.Anything, doc).
			Run(func(mock.Arguments) { time.Sleep(delays[doc.FileName]) }).
			Return(domain.ExtractedText{SourceFileName: doc.FileName, Text: "text of " + doc.FileName, Method: domain.MethodPlainText}, nil)
	}

	llm := new(mocks.MockLLMClient)
	llm.On("Complete", mock.Anything, agentPromptContaining("document classifier")).Return("bill", nil)
	llm.On("Complete", mock.Anything, agentPromptContaining("medical bill processor")).
		Return(`{"hospital_name": "H", "total_amount": 10}`, nil)

	svc := newTestService(extractor, llm, 3)
	result, err := svc.Process(context.Background(), docs)

	require.NoError(t, err)
	require.Len(t, result.Documents, 3)
	assert.Equal(t, "first.txt", result.Documents[0].FileName)
	assert.Equal(t, "second.txt", result.Documents[1].FileName)
	assert.Equal(t, "third.txt", result.Documents[2].FileName)
}

func TestProcess_ExtractionFailureDegradesOneDocument(t *testing.T) {
	badDoc := domain.RawDocument{FileName: "bad.bin", Content: []byte{0x00}, ContentType: "application/octet-stream"}
	goodDoc := domain.RawDocument{FileName: "bill.txt", Content: []byte("ok"), ContentType: "text/plain"}

	extractor := new(mocks.MockTextExtractor)
	extractor.On("Extract", mock.Anything, badDoc).
		Return(domain.ExtractedText{}, domain.ErrUnsupportedFormat)
	extractor.On("Extract", mock.Anything, goodDoc).
		Return(domain.ExtractedText{SourceFileName: "bill.txt", Text: "bill body", Method: domain.MethodPlainText}, nil)

	llm := new(mocks.MockLLMClient)
	llm.On("Complete", mock.Anything, agentPromptContaining("document classifier")).Return("bill", nil)
	llm.On("Complete", mock.Anything, agentPromptContaining("medical bill processor")).
		Return(`{"hospital_name": "H", "total_amount": 10}`, nil)

	svc := newTestService(extractor, llm, 2)
	result, err := svc.Process(context.Background(), []domain.RawDocument{badDoc, goodDoc})

	require.NoError(t, err, "a single bad document never aborts the batch")
	require.Len(t, result.Documents, 2)

	degraded := result.Documents[0]
	assert.Equal(t, domain.KindUnknown, degraded.Kind)
	assert.Equal(t, "bad.bin", degraded.FileName)
	assert.True(t, degraded.ExtractionFailed)
	assert.NotEmpty(t, degraded.Error)

	assert.Equal(t, domain.KindBill, result.Documents[1].Kind)
	assert.Equal(t, 2, result.Metadata.DocumentsReceived)
	assert.Equal(t, 1, result.Metadata.DocumentsProcessed)
	require.Len(t, result.Metadata.ProcessingErrors, 1)
	assert.Contains(t, result.Metadata.ProcessingErrors[0], "bad.bin")
}

func TestProcess_ClassificationFailureYieldsUnknown(t *testing.T) {
	doc := domain.RawDocument{FileName: "odd.txt", Content: []byte("x"), ContentType: "text/plain"}

	extractor := new(mocks.MockTextExtractor)
	extractor.On("Extract", mock.Anything, doc).
		Return(domain.ExtractedText{SourceFileName: "odd.txt", Text: "body", Method: domain.MethodPlainText}, nil)

	llm := new(mocks.MockLLMClient)
	llm.On("Complete", mock.Anything, mock.Anything).Return("", domain.ErrBackendError)

	svc := newTestService(extractor, llm, 2)
	result, err := svc.Process(context.Background(), []domain.RawDocument{doc})

	require.NoError(t, err)
	require.Len(t, result.Documents, 1)
	assert.Equal(t, domain.KindUnknown, result.Documents[0].Kind)
	assert.False(t, result.Documents[0].ExtractionFailed)
	require.Len(t, result.Metadata.ProcessingErrors, 1)
	assert.Contains(t, result.Metadata.ProcessingErrors[0], "classification failed")
}

func TestProcess_CancelledContextReturnsNoPartialResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	extractor := new(mocks.MockTextExtractor)
	extractor.On("Extract", mock.Anything, mock.Anything).
		Return(domain.ExtractedText{}, context.Canceled).Maybe()
	llm := new(mocks.MockLLMClient)
	llm.On("Complete", mock.Anything, mock.Anything).Return("", context.Canceled).Maybe()

	svc := newTestService(extractor, llm, 2)
	result, err := svc.Process(ctx, []domain.RawDocument{
		{FileName: "a.txt", Content: []byte("a"), ContentType: "text/plain"},
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}
