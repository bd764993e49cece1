package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"medclaim/internal/domain"
	"medclaim/internal/port"
)

// maxUploadBytes caps a single uploaded file at 25 MB.
const maxUploadBytes = 25 << 20

// ClaimHandler exposes the claim processing pipeline over HTTP.
type ClaimHandler struct {
	processor port.ClaimProcessor
}

// NewClaimHandler creates a ClaimHandler.
func NewClaimHandler(processor port.ClaimProcessor) *ClaimHandler {
	return &ClaimHandler{processor: processor}
}

// Process handles POST /api/v1/claims/process. It accepts a multipart batch
// of claim documents under the "files" field and responds with the processed
// claim: documents, validation, decision, and metadata. The response body is
// the external contract and is sent unwrapped.
func (h *ClaimHandler) Process(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORM", "expected multipart form data")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		RespondError(c, http.StatusBadRequest, "EMPTY_SUBMISSION", "no documents submitted")
		return
	}

	docs := make([]domain.RawDocument, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxUploadBytes {
			RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", fh.Filename+" exceeds the maximum allowed size")
			return
		}
		f, err := fh.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file "+fh.Filename)
			return
		}
		content, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file "+fh.Filename)
			return
		}

		docs = append(docs, domain.RawDocument{
			FileName:    filepath.Base(fh.Filename),
			Content:     content,
			ContentType: declaredContentType(fh.Header.Get("Content-Type"), fh.Filename),
		})
	}

	result, err := h.processor.Process(c.Request.Context(), docs)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DocumentTypes handles GET /api/v1/claims/document-types.
func (h *ClaimHandler) DocumentTypes(c *gin.Context) {
	out := make(map[string]string, len(domain.KindDescriptions))
	for kind, desc := range domain.KindDescriptions {
		out[string(kind)] = desc
	}
	c.JSON(http.StatusOK, out)
}

// declaredContentType prefers the part's declared type, falling back to the
// filename extension when the browser sent a generic octet-stream.
func declaredContentType(declared, filename string) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".txt":
		return "text/plain"
	default:
		return declared
	}
}
