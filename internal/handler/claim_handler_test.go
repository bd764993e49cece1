package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medclaim/internal/domain"
	"medclaim/internal/handler"
	"medclaim/internal/router"
	"medclaim/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(processor *mocks.MockClaimProcessor) *gin.Engine {
	claimH := handler.NewClaimHandler(processor)
	healthH := handler.NewHealthHandler()
	return router.Setup(claimH, healthH, []string{"*"})
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func sampleClaim() *domain.ProcessedClaim {
	return &domain.ProcessedClaim{
		Documents: domain.ClaimBundle{
			{
				Kind:     domain.KindBill,
				FileName: "bill.pdf",
				Bill: &domain.BillFields{
					HospitalName: "General Hospital",
					TotalAmount:  1250.75,
					PatientName:  "John Doe",
				},
			},
		},
		Validation: domain.ValidationReport{
			MissingDocuments: []domain.DocumentKind{},
			Discrepancies:    []domain.Discrepancy{},
			IsValid:          true,
		},
		Decision: domain.Decision{
			Status:         domain.StatusApproved,
			Reason:         "Claim meets all requirements",
			AmountApproved: 1250.75,
		},
		Metadata: domain.ClaimMetadata{DocumentsReceived: 1, DocumentsProcessed: 1},
	}
}

func TestProcessClaim(t *testing.T) {
	processor := new(mocks.MockClaimProcessor)
	processor.On("Process", mock.Anything, mock.MatchedBy(func(docs []domain.RawDocument) bool {
		return len(docs) == 1 && docs[0].FileName == "bill.pdf" && docs[0].ContentType == "application/pdf"
	})).Return(sampleClaim(), nil)

	body, contentType := multipartBody(t, map[string][]byte{"bill.pdf": []byte("%PDF-1.4 fake")})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/process", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	newTestRouter(processor).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, key := range []string{"documents", "validation", "decision", "metadata"} {
		assert.Contains(t, resp, key)
	}

	// Document objects carry the extracted fields flat, beside type and file_name.
	var docs []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp["documents"], &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "bill", docs[0]["type"])
	assert.Equal(t, "bill.pdf", docs[0]["file_name"])
	assert.Equal(t, "General Hospital", docs[0]["hospital_name"])
	assert.Equal(t, 1250.75, docs[0]["total_amount"])

	var validation map[string]interface{}
	require.NoError(t, json.Unmarshal(resp["validation"], &validation))
	assert.Equal(t, true, validation["is_valid"])
	assert.Equal(t, []interface{}{}, validation["missing_documents"])
	assert.Equal(t, []interface{}{}, validation["discrepancies"])

	var decision map[string]interface{}
	require.NoError(t, json.Unmarshal(resp["decision"], &decision))
	assert.Equal(t, "approved", decision["status"])
	assert.Equal(t, 1250.75, decision["amount_approved"])

	processor.AssertExpectations(t)
}

func TestProcessClaim_NoFiles(t *testing.T) {
	processor := new(mocks.MockClaimProcessor)

	body, contentType := multipartBody(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/process", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	newTestRouter(processor).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_SUBMISSION")
	processor.AssertNotCalled(t, "Process")
}

func TestProcessClaim_NotMultipart(t *testing.T) {
	processor := new(mocks.MockClaimProcessor)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/process", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	newTestRouter(processor).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_FORM")
}

func TestProcessClaim_ProcessorError(t *testing.T) {
	processor := new(mocks.MockClaimProcessor)
	processor.On("Process", mock.Anything, mock.Anything).Return(nil, errors.New("pipeline blew up"))

	body, contentType := multipartBody(t, map[string][]byte{"bill.pdf": []byte("x")})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/process", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	newTestRouter(processor).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestProcessClaim_FallbackContentTypeFromExtension(t *testing.T) {
	processor := new(mocks.MockClaimProcessor)
	processor.On("Process", mock.Anything, mock.MatchedBy(func(docs []domain.RawDocument) bool {
		return len(docs) == 1 && docs[0].ContentType == "text/plain"
	})).Return(sampleClaim(), nil)

	// CreateFormFile always declares application/octet-stream, so the
	// handler must fall back to the extension.
	body, contentType := multipartBody(t, map[string][]byte{"notes.txt": []byte("plain notes")})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/process", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	newTestRouter(processor).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	processor.AssertExpectations(t)
}

func TestDocumentTypes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/claims/document-types", nil)
	w := httptest.NewRecorder()

	newTestRouter(new(mocks.MockClaimProcessor)).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var types map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &types))
	assert.Len(t, types, 5)
	assert.Contains(t, types, "bill")
	assert.Contains(t, types, "lab_report")
	assert.NotContains(t, types, "unknown")
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	newTestRouter(new(mocks.MockClaimProcessor)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
