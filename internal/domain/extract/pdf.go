package extract

import (
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// extractPDFText extracts the plain text of a PDF file. The file handle is
// closed before returning so no descriptor outlives the extraction, even
// when the caller later abandons the request on timeout.
func extractPDFText(path string) (text string, err error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	// The pdf package panics on some malformed cross-reference tables;
	// recover so a corrupt upload degrades instead of crashing the request.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf parse panic: %v", rec)
		}
	}()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plain text: %w", err)
	}
	content, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return string(content), nil
}
