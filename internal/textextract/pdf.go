package textextract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// extractPDFText pulls text from a PDF's uncompressed content streams by
// scanning BT/ET text blocks for Tj and TJ show operators. Scanned or
// compressed-only PDFs yield no text; the caller reports that as an
// extraction error and the pipeline degrades the document.
func extractPDFText(data []byte) (string, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return "", errors.New("not a PDF file")
	}

	var sb strings.Builder
	rest := data
	for {
		start := bytes.Index(rest, []byte("BT"))
		if start < 0 {
			break
		}
		rest = rest[start+2:]
		end := bytes.Index(rest, []byte("ET"))
		if end < 0 {
			break
		}
		block := rest[:end]
		rest = rest[end+2:]

		extractShownStrings(block, &sb)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no extractable text layer")
	}
	return text, nil
}

// extractShownStrings appends the contents of (...) string literals within a
// text block, separating operators with spaces and TD/Td moves with newlines.
func extractShownStrings(block []byte, sb *strings.Builder) {
	i := 0
	for i < len(block) {
		switch block[i] {
		case '(':
			i++
			var lit strings.Builder
			depth := 1
			for i < len(block) && depth > 0 {
				c := block[i]
				switch c {
				case '\\':
					if i+1 < len(block) {
						i++
						lit.WriteByte(unescapePDFByte(block[i]))
					}
				case '(':
					depth++
					lit.WriteByte(c)
				case ')':
					depth--
					if depth > 0 {
						lit.WriteByte(c)
					}
				default:
					lit.WriteByte(c)
				}
				i++
			}
			sb.WriteString(lit.String())
		case 'T':
			// Td/TD/T* start a new line of text
			if i+1 < len(block) && (block[i+1] == 'd' || block[i+1] == 'D' || block[i+1] == '*') {
				sb.WriteByte('\n')
				i += 2
				continue
			}
			i++
		default:
			i++
		}
	}
	sb.WriteByte('\n')
}

func unescapePDFByte(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		return c
	}
}
