package infrastructure

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// PDFExtractor converts uploaded documents into plain text. Extraction
// never blocks a submission: when structured PDF extraction fails the raw
// bytes are decoded as UTF-8 and the degraded flag is set so the caller
// can log it. Known limitation: for true binary PDFs the fallback text is
// garbage, but the submission still proceeds.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract returns plain text for the uploaded document. Plain-text files
// pass through untouched; everything else is attempted as PDF first.
func (e *PDFExtractor) Extract(data []byte, filename string) (string, bool) {
	if strings.EqualFold(filepath.Ext(filename), ".txt") {
		return strings.ToValidUTF8(string(data), "�"), false
	}

	text, err := extractPDFText(data)
	if err == nil && text != "" {
		return text, false
	}

	return strings.ToValidUTF8(string(data), "�"), true
}

func extractPDFText(data []byte) (string, error) {
	pdfReader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("get page count: %w", err)
	}
	if numPages == 0 {
		return "", fmt.Errorf("pdf has no pages")
	}

	var builder strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			continue
		}

		ex, err := extractor.New(page)
		if err != nil {
			continue
		}

		pageText, err := ex.ExtractText()
		if err != nil || pageText == "" {
			continue
		}

		if builder.Len() > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(pageText)
	}

	result := strings.TrimSpace(builder.String())
	if result == "" {
		return "", fmt.Errorf("no text could be extracted from any page")
	}
	return result, nil
}
