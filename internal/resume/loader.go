package resume

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrEmpty reports that no usable text could be extracted from the resume
// file, typically a scanned PDF without a text layer.
var ErrEmpty = errors.New("no text extracted from resume")

// Load reads the resume text from a plain-text file or a PDF, collapsing
// all whitespace runs to single spaces.
func Load(path string) (string, error) {
	var (
		text string
		err  error
	)

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = fromPDF(path)
	} else {
		text, err = fromTextFile(path)
	}
	if err != nil {
		return "", err
	}

	text = collapseWhitespace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	return text, nil
}

func fromTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading resume file: %w", err)
	}
	return string(data), nil
}

func fromPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening resume pdf: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Pages without extractable text are skipped; the empty-text
			// check in Load catches fully unreadable documents.
			continue
		}

		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
