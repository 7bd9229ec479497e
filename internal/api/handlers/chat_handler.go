package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/arogyahealth/triage-server/internal/domain/providers"
)

const (
	chatRateLimit  = 20
	chatRateWindow = time.Minute
)

// ChatService defines the chat operation used by the handler.
type ChatService interface {
	Chat(ctx context.Context, uid, message string) (string, error)
}

// ChatHandler handles patient assistant conversations.
type ChatHandler struct {
	service ChatService
	cache   providers.CacheProvider
	local   *localRateLimiter
}

// NewChatHandler creates a new chat handler. The cache is used for
// per-patient rate limiting and may be nil, in which case an in-memory
// limiter is used instead.
func NewChatHandler(service ChatService, cache providers.CacheProvider) *ChatHandler {
	return &ChatHandler{
		service: service,
		cache:   cache,
		local:   newLocalRateLimiter(),
	}
}

type chatRequest struct {
	UID     string `json:"uid"`
	Message string `json:"message"`
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.UID = strings.TrimSpace(payload.UID)
	payload.Message = strings.TrimSpace(payload.Message)
	if payload.UID == "" || payload.Message == "" {
		respondWithError(w, http.StatusBadRequest, "uid and message are required")
		return
	}

	allowed, retryAfter := h.allowRequest(r.Context(), "chat:rate:"+payload.UID)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	reply, err := h.service.Chat(r.Context(), payload.UID, payload.Message)
	if err != nil {
		if errors.Is(err, providers.ErrChatUnavailable) {
			respondWithError(w, http.StatusServiceUnavailable, "chat service is not configured")
			return
		}
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (h *ChatHandler) allowRequest(ctx context.Context, key string) (bool, time.Duration) {
	if h.cache == nil {
		return h.local.allow(key, chatRateLimit, chatRateWindow)
	}

	state := rateLimitState{}
	if data, err := h.cache.Get(ctx, key); err == nil {
		_ = json.Unmarshal(data, &state)
	}

	if state.Count >= chatRateLimit {
		return false, chatRateWindow
	}

	state.Count++
	data, _ := json.Marshal(state)
	_ = h.cache.Set(ctx, key, data, int(chatRateWindow.Seconds()))
	return true, chatRateWindow
}

type rateLimitState struct {
	Count int `json:"count"`
}

type localRateLimiter struct {
	mu     sync.Mutex
	states map[string]*localRateState
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{count: 0, resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := time.Until(state.resetAt)
		if retryAfter < 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}
