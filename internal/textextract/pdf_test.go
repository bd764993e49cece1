package textextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pdfWithStream(stream string) []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Length 100 >>\nstream\n" + stream + "\nendstream\nendobj\n%%EOF")
}

func TestExtractPDFText(t *testing.T) {
	data := pdfWithStream("BT /F1 12 Tf 72 712 Td (Hello World) Tj ET")

	text, err := extractPDFText(data)

	require.NoError(t, err)
	assert.Contains(t, text, "Hello World")
}

func TestExtractPDFText_MultipleLines(t *testing.T) {
	data := pdfWithStream("BT (Patient: John Doe) Tj T* (Total: 1250.75) Tj ET")

	text, err := extractPDFText(data)

	require.NoError(t, err)
	assert.Contains(t, text, "Patient: John Doe")
	assert.Contains(t, text, "Total: 1250.75")
}

func TestExtractPDFText_EscapedLiterals(t *testing.T) {
	data := pdfWithStream(`BT (Amount \(due\): 100) Tj ET`)

	text, err := extractPDFText(data)

	require.NoError(t, err)
	assert.Contains(t, text, "Amount (due): 100")
}

func TestExtractPDFText_NotAPDF(t *testing.T) {
	_, err := extractPDFText([]byte("just some text"))
	assert.Error(t, err)
}

func TestExtractPDFText_NoTextLayer(t *testing.T) {
	_, err := extractPDFText([]byte("%PDF-1.4\n<< compressed image-only content >>\n%%EOF"))
	assert.Error(t, err)
}
