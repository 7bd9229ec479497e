package providers

import (
	"context"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
)

// PDFTextExtractor pulls plain text out of a PDF's raw bytes. An empty
// string means the document had no extractable text (scanned images).
type PDFTextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// DocumentExtractionProvider turns document content into structured
// clinical evidence. Failures are absorbed at the ingestion boundary;
// document evidence is always optional.
type DocumentExtractionProvider interface {
	ExtractFromImage(ctx context.Context, data []byte, mediaType string) (*entities.DocumentExtraction, error)
	ExtractFromText(ctx context.Context, text string) (*entities.DocumentExtraction, error)
}
