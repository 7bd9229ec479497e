package services

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
	"github.com/arogyahealth/triage-server/internal/domain/providers"
	"github.com/arogyahealth/triage-server/internal/infrastructure/observability"
)

// documentKind tags the dispatch branch for an uploaded file.
type documentKind int

const (
	kindPDF documentKind = iota
	kindImage
	kindOther
)

var imageMediaTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
}

// IngestResult is what document ingestion contributes to a triage request.
// Extraction is nil when no structured evidence was produced; ReportText is
// empty when the document yielded no usable text.
type IngestResult struct {
	Extraction *entities.DocumentExtraction
	ReportText string
}

// DocumentService classifies an uploaded file and dispatches it to the
// right extraction collaborator. Extraction failures are absorbed here;
// document evidence is always optional.
type DocumentService struct {
	pdfExtractor providers.PDFTextExtractor
	extractor    providers.DocumentExtractionProvider
}

func NewDocumentService(pdfExtractor providers.PDFTextExtractor, extractor providers.DocumentExtractionProvider) *DocumentService {
	return &DocumentService{
		pdfExtractor: pdfExtractor,
		extractor:    extractor,
	}
}

// Ingest processes one uploaded document. It never returns an error: every
// failure degrades to less evidence, logged for diagnosis.
func (s *DocumentService) Ingest(ctx context.Context, doc *entities.UploadedDocument) IngestResult {
	if doc == nil || len(doc.Data) == 0 {
		return IngestResult{}
	}

	switch kind, ext := classifyDocument(doc.Filename); kind {
	case kindPDF:
		return s.ingestPDF(ctx, doc)
	case kindImage:
		return s.ingestImage(ctx, doc, ext)
	default:
		return ingestPlainText(doc)
	}
}

func classifyDocument(filename string) (documentKind, string) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".pdf" {
		return kindPDF, ext
	}
	if _, ok := imageMediaTypes[ext]; ok {
		return kindImage, ext
	}
	return kindOther, ext
}

func (s *DocumentService) ingestPDF(ctx context.Context, doc *entities.UploadedDocument) IngestResult {
	logger := observability.LoggerFromContext(ctx)

	text, err := s.pdfExtractor.ExtractText(doc.Data)
	if err != nil {
		logger.Warn().Err(err).Str("filename", doc.Filename).Msg("PDF text extraction failed, skipping document analysis")
		return IngestResult{}
	}
	if strings.TrimSpace(text) == "" {
		logger.Info().Str("filename", doc.Filename).Msg("PDF contained no extractable text, skipping document analysis")
		return IngestResult{}
	}

	extraction, err := s.extractor.ExtractFromText(ctx, text)
	if err != nil {
		logger.Warn().Err(err).Str("filename", doc.Filename).Msg("document extraction failed, continuing without structured evidence")
		extraction = &entities.DocumentExtraction{}
	}
	return IngestResult{Extraction: extraction, ReportText: text}
}

func (s *DocumentService) ingestImage(ctx context.Context, doc *entities.UploadedDocument, ext string) IngestResult {
	logger := observability.LoggerFromContext(ctx)

	mediaType := doc.MediaType
	if !strings.HasPrefix(mediaType, "image/") {
		// Declared type is untrustworthy; derive from the extension.
		mediaType = imageMediaTypes[ext]
		if mediaType == "" {
			mediaType = "image/jpeg"
		}
	}

	extraction, err := s.extractor.ExtractFromImage(ctx, doc.Data, mediaType)
	if err != nil {
		logger.Warn().Err(err).Str("filename", doc.Filename).Msg("image extraction failed, continuing without structured evidence")
		return IngestResult{Extraction: &entities.DocumentExtraction{}}
	}
	return IngestResult{Extraction: extraction, ReportText: extraction.DocumentSummary}
}

// ingestPlainText decodes any other file as text, replacing invalid byte
// sequences. This path never produces structured evidence.
func ingestPlainText(doc *entities.UploadedDocument) IngestResult {
	text := strings.ToValidUTF8(string(doc.Data), "�")
	return IngestResult{ReportText: text}
}
