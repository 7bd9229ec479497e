package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/arogyahealth/triage-server/internal/domain/providers"
	"github.com/arogyahealth/triage-server/internal/domain/repositories"
	"github.com/arogyahealth/triage-server/internal/infrastructure/observability"
	apperrors "github.com/arogyahealth/triage-server/pkg/errors"
)

const (
	chatHistoryLimit    = 5
	chatHistoryCacheTTL = 300 // seconds

	noHistoryText          = "No previous triage history found for this patient."
	historyUnavailableText = "Unable to retrieve patient history at this time."
)

const chatSystemPrompt = `You are the Arogya Health Assistant, a knowledgeable and empathetic medical AI. You have access to this patient's triage history below.

Answer concisely (2-4 sentences) unless the patient asks for more detail. If the patient asks about symptoms not present in their history, use your medical knowledge to respond but prioritize historical context when available. Always recommend consulting a healthcare professional for definitive medical guidance.

--- Patient Triage History (most recent first) ---
%s
`

// ChatService answers patient questions with their recent triage history as
// context. The formatted history block is cached briefly to keep repeated
// chat turns from re-querying the database.
type ChatService struct {
	completions providers.ChatCompletionProvider
	history     repositories.HistoryRepository
	cache       providers.CacheProvider
}

// NewChatService creates the chat assistant. completions may be nil when the
// provider is not configured; Chat then fails with ErrChatUnavailable.
// history and cache may each be nil and degrade independently.
func NewChatService(completions providers.ChatCompletionProvider, history repositories.HistoryRepository, cache providers.CacheProvider) *ChatService {
	return &ChatService{
		completions: completions,
		history:     history,
		cache:       cache,
	}
}

// Chat produces one assistant reply for a patient message.
func (s *ChatService) Chat(ctx context.Context, uid, message string) (string, error) {
	if s.completions == nil {
		return "", providers.ErrChatUnavailable
	}

	systemPrompt := fmt.Sprintf(chatSystemPrompt, s.historyBlock(ctx, uid))

	reply, err := s.completions.ChatComplete(ctx, systemPrompt, message)
	if err != nil {
		return "", apperrors.NewExternalError("chat completion failed", err)
	}
	return reply, nil
}

// historyBlock returns the formatted history context for a patient. Failures
// degrade to an explanatory placeholder; chat must work without history.
func (s *ChatService) historyBlock(ctx context.Context, uid string) string {
	logger := observability.LoggerFromContext(ctx)
	cacheKey := "chat:history:" + uid

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			return string(cached)
		}
	}

	if s.history == nil {
		return historyUnavailableText
	}

	records, err := s.history.RecentByUID(ctx, uid, chatHistoryLimit)
	if err != nil {
		logger.Warn().Err(err).Str("uid", uid).Msg("failed to fetch triage history for chat context")
		return historyUnavailableText
	}

	block := noHistoryText
	if len(records) > 0 {
		entries := make([]string, 0, len(records))
		for _, r := range records {
			entries = append(entries, fmt.Sprintf(
				"- Date: %s | Risk: %s | Department: %s | Symptoms: %s | Summary: %s",
				r.Timestamp.Format("2006-01-02 15:04"),
				orNA(r.RiskLevel),
				orNA(r.Department),
				orNA(r.Symptoms),
				orNA(r.Summary),
			))
		}
		block = strings.Join(entries, "\n")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, []byte(block), chatHistoryCacheTTL); err != nil {
			logger.Debug().Err(err).Msg("failed to cache chat history block")
		}
	}
	return block
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
