package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
	"github.com/arogyahealth/triage-server/internal/domain/providers"
)

func TestChatUnavailableWithoutProvider(t *testing.T) {
	svc := NewChatService(nil, new(MockHistoryRepo), nil)

	reply, err := svc.Chat(context.Background(), "patient-1", "hello")

	assert.Empty(t, reply)
	assert.ErrorIs(t, err, providers.ErrChatUnavailable)
}

func TestChatFormatsHistoryIntoSystemPrompt(t *testing.T) {
	completions := new(MockChatCompletions)
	history := new(MockHistoryRepo)
	svc := NewChatService(completions, history, nil)

	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	history.On("RecentByUID", mock.Anything, "patient-1", chatHistoryLimit).Return([]*entities.TriageRecord{
		{
			Timestamp:  ts,
			RiskLevel:  "High",
			Department: "Cardiology",
			Symptoms:   "chest pain",
			Summary:    "Possible angina.",
		},
	}, nil)

	completions.On("ChatComplete", mock.Anything, mock.MatchedBy(func(systemPrompt string) bool {
		return strings.Contains(systemPrompt, "- Date: 2026-03-14 09:30 | Risk: High | Department: Cardiology | Symptoms: chest pain | Summary: Possible angina.")
	}), "how am I doing?").Return("You were recently seen for chest pain.", nil)

	reply, err := svc.Chat(context.Background(), "patient-1", "how am I doing?")
	require.NoError(t, err)
	assert.Equal(t, "You were recently seen for chest pain.", reply)
	completions.AssertExpectations(t)
}

func TestChatEmptyHistoryUsesPlaceholder(t *testing.T) {
	completions := new(MockChatCompletions)
	history := new(MockHistoryRepo)
	svc := NewChatService(completions, history, nil)

	history.On("RecentByUID", mock.Anything, "patient-2", chatHistoryLimit).Return([]*entities.TriageRecord{}, nil)
	completions.On("ChatComplete", mock.Anything, mock.MatchedBy(func(systemPrompt string) bool {
		return strings.Contains(systemPrompt, noHistoryText)
	}), mock.Anything).Return("Hello!", nil)

	_, err := svc.Chat(context.Background(), "patient-2", "hi")
	require.NoError(t, err)
	completions.AssertExpectations(t)
}

func TestChatHistoryFetchFailureDegrades(t *testing.T) {
	completions := new(MockChatCompletions)
	history := new(MockHistoryRepo)
	svc := NewChatService(completions, history, nil)

	history.On("RecentByUID", mock.Anything, "patient-3", chatHistoryLimit).Return(nil, errors.New("db down"))
	completions.On("ChatComplete", mock.Anything, mock.MatchedBy(func(systemPrompt string) bool {
		return strings.Contains(systemPrompt, historyUnavailableText)
	}), mock.Anything).Return("I don't have your history right now.", nil)

	reply, err := svc.Chat(context.Background(), "patient-3", "hi")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}

func TestChatUsesCachedHistoryBlock(t *testing.T) {
	completions := new(MockChatCompletions)
	history := new(MockHistoryRepo)
	cache := new(MockCache)
	svc := NewChatService(completions, history, cache)

	cache.On("Get", mock.Anything, "chat:history:patient-4").Return([]byte("- Date: 2026-01-01 10:00 | Risk: Low | Department: General Medicine | Symptoms: cough | Summary: Mild cold."), nil)
	completions.On("ChatComplete", mock.Anything, mock.Anything, mock.Anything).Return("ok", nil)

	_, err := svc.Chat(context.Background(), "patient-4", "hi")
	require.NoError(t, err)

	history.AssertNotCalled(t, "RecentByUID", mock.Anything, mock.Anything, mock.Anything)
}

func TestChatCompletionFailureIsExternalError(t *testing.T) {
	completions := new(MockChatCompletions)
	history := new(MockHistoryRepo)
	svc := NewChatService(completions, history, nil)

	history.On("RecentByUID", mock.Anything, "patient-5", chatHistoryLimit).Return([]*entities.TriageRecord{}, nil)
	completions.On("ChatComplete", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("rate limited"))

	reply, err := svc.Chat(context.Background(), "patient-5", "hi")

	assert.Empty(t, reply)
	assert.Error(t, err)
}
