// File: internal/services/document/extract.go
package document

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var ErrNoText = errors.New("no text could be extracted from the document")

// ExtractText pulls plain text out of an uploaded policy document.
// PDF files are parsed page by page; anything else is accepted verbatim
// when it is valid UTF-8 text.
func ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoText
	}

	if isPDF(data) {
		return extractPDFText(data)
	}

	if utf8.Valid(data) {
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", ErrNoText
		}
		return text, nil
	}

	return "", fmt.Errorf("unsupported document type %q", http.DetectContentType(data))
}

func isPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	totalPages := reader.NumPage()
	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip problematic pages instead of failing entirely
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
