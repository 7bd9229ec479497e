package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
)

func TestIngestNoDocument(t *testing.T) {
	svc := NewDocumentService(new(MockPDFExtractor), new(MockDocExtractor))

	assert.Equal(t, IngestResult{}, svc.Ingest(context.Background(), nil))
	assert.Equal(t, IngestResult{}, svc.Ingest(context.Background(), &entities.UploadedDocument{Filename: "empty.pdf"}))
}

func TestIngestPDFWithText(t *testing.T) {
	pdfMock := new(MockPDFExtractor)
	extractorMock := new(MockDocExtractor)
	svc := NewDocumentService(pdfMock, extractorMock)

	doc := &entities.UploadedDocument{Data: []byte("%PDF-"), Filename: "report.pdf", MediaType: "application/pdf"}
	extraction := &entities.DocumentExtraction{ExtractedSymptoms: "persistent cough"}

	pdfMock.On("ExtractText", doc.Data).Return("Patient presents with persistent cough.", nil)
	extractorMock.On("ExtractFromText", mock.Anything, "Patient presents with persistent cough.").Return(extraction, nil)

	result := svc.Ingest(context.Background(), doc)

	assert.Equal(t, extraction, result.Extraction)
	assert.Equal(t, "Patient presents with persistent cough.", result.ReportText)
	pdfMock.AssertExpectations(t)
	extractorMock.AssertExpectations(t)
}

func TestIngestScannedPDFSkipsAnalysis(t *testing.T) {
	pdfMock := new(MockPDFExtractor)
	extractorMock := new(MockDocExtractor)
	svc := NewDocumentService(pdfMock, extractorMock)

	doc := &entities.UploadedDocument{Data: []byte("%PDF-"), Filename: "scan.pdf"}
	pdfMock.On("ExtractText", doc.Data).Return("   ", nil)

	result := svc.Ingest(context.Background(), doc)

	assert.Nil(t, result.Extraction)
	assert.Empty(t, result.ReportText)
	extractorMock.AssertNotCalled(t, "ExtractFromText", mock.Anything, mock.Anything)
}

func TestIngestPDFExtractionFailureDegrades(t *testing.T) {
	pdfMock := new(MockPDFExtractor)
	extractorMock := new(MockDocExtractor)
	svc := NewDocumentService(pdfMock, extractorMock)

	doc := &entities.UploadedDocument{Data: []byte("%PDF-"), Filename: "report.pdf"}
	pdfMock.On("ExtractText", doc.Data).Return("some report text", nil)
	extractorMock.On("ExtractFromText", mock.Anything, "some report text").Return(nil, errors.New("upstream 500"))

	result := svc.Ingest(context.Background(), doc)

	require.NotNil(t, result.Extraction)
	assert.Equal(t, &entities.DocumentExtraction{}, result.Extraction)
	assert.Equal(t, "some report text", result.ReportText)
}

func TestIngestImageUsesSummaryAsReportText(t *testing.T) {
	extractorMock := new(MockDocExtractor)
	svc := NewDocumentService(new(MockPDFExtractor), extractorMock)

	doc := &entities.UploadedDocument{Data: []byte{0x89, 0x50}, Filename: "xray.png", MediaType: "image/png"}
	extraction := &entities.DocumentExtraction{DocumentSummary: "Chest X-ray, no acute findings."}

	extractorMock.On("ExtractFromImage", mock.Anything, doc.Data, "image/png").Return(extraction, nil)

	result := svc.Ingest(context.Background(), doc)

	assert.Equal(t, extraction, result.Extraction)
	assert.Equal(t, "Chest X-ray, no acute findings.", result.ReportText)
}

func TestIngestImageDeclaredTypeNotImage(t *testing.T) {
	extractorMock := new(MockDocExtractor)
	svc := NewDocumentService(new(MockPDFExtractor), extractorMock)

	// Declared type is bogus; the extension decides the media type.
	doc := &entities.UploadedDocument{Data: []byte{0xFF, 0xD8}, Filename: "photo.jpg", MediaType: "application/octet-stream"}
	extractorMock.On("ExtractFromImage", mock.Anything, doc.Data, "image/jpeg").Return(&entities.DocumentExtraction{}, nil)

	svc.Ingest(context.Background(), doc)
	extractorMock.AssertExpectations(t)
}

func TestIngestImageExtractionFailure(t *testing.T) {
	extractorMock := new(MockDocExtractor)
	svc := NewDocumentService(new(MockPDFExtractor), extractorMock)

	doc := &entities.UploadedDocument{Data: []byte{0x89}, Filename: "xray.png", MediaType: "image/png"}
	extractorMock.On("ExtractFromImage", mock.Anything, doc.Data, "image/png").Return(nil, errors.New("quota exceeded"))

	result := svc.Ingest(context.Background(), doc)

	assert.Equal(t, &entities.DocumentExtraction{}, result.Extraction)
	assert.Empty(t, result.ReportText)
}

func TestIngestUnrecognizedExtensionWithInvalidUTF8(t *testing.T) {
	svc := NewDocumentService(new(MockPDFExtractor), new(MockDocExtractor))

	data := append([]byte("patient notes "), 0xFF, 0xFE, 0xFD)
	doc := &entities.UploadedDocument{Data: data, Filename: "notes.xyz", MediaType: "application/octet-stream"}

	result := svc.Ingest(context.Background(), doc)

	assert.Nil(t, result.Extraction)
	assert.NotEmpty(t, result.ReportText)
	assert.True(t, utf8.ValidString(result.ReportText))
	assert.True(t, strings.Contains(result.ReportText, "�"))
	assert.True(t, strings.HasPrefix(result.ReportText, "patient notes "))
}
