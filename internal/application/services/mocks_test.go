package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
)

// Mocks shared by the service tests.

type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Predict(ctx context.Context, features *entities.PatientFeatures) (*entities.StructuredPrediction, error) {
	args := m.Called(ctx, features)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StructuredPrediction), args.Error(1)
}

type MockCompletions struct {
	mock.Mock
}

func (m *MockCompletions) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockChatCompletions struct {
	mock.Mock
}

func (m *MockChatCompletions) ChatComplete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	args := m.Called(ctx, systemPrompt, userMessage)
	return args.String(0), args.Error(1)
}

type MockPDFExtractor struct {
	mock.Mock
}

func (m *MockPDFExtractor) ExtractText(data []byte) (string, error) {
	args := m.Called(data)
	return args.String(0), args.Error(1)
}

type MockDocExtractor struct {
	mock.Mock
}

func (m *MockDocExtractor) ExtractFromImage(ctx context.Context, data []byte, mediaType string) (*entities.DocumentExtraction, error) {
	args := m.Called(ctx, data, mediaType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DocumentExtraction), args.Error(1)
}

func (m *MockDocExtractor) ExtractFromText(ctx context.Context, text string) (*entities.DocumentExtraction, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DocumentExtraction), args.Error(1)
}

type MockHistoryRepo struct {
	mock.Mock
}

func (m *MockHistoryRepo) Create(ctx context.Context, record *entities.TriageRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHistoryRepo) RecentByUID(ctx context.Context, uid string, limit int) ([]*entities.TriageRecord, error) {
	args := m.Called(ctx, uid, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TriageRecord), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	args := m.Called(ctx, key, value, expirationSeconds)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
