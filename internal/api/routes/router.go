package routes

import (
	"net/http"

	"github.com/arogyahealth/triage-server/internal/api/handlers"
	"github.com/arogyahealth/triage-server/internal/api/middleware"
	"github.com/arogyahealth/triage-server/internal/infrastructure/observability"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	triageHandler  *handlers.TriageHandler
	chatHandler    *handlers.ChatHandler
	historyHandler *handlers.HistoryHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	triageHandler *handlers.TriageHandler,
	chatHandler *handlers.ChatHandler,
	historyHandler *handlers.HistoryHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		triageHandler:  triageHandler,
		chatHandler:    chatHandler,
		historyHandler: historyHandler,

		allowedOrigins: allowedOrigins,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Triage endpoints
	r.mux.HandleFunc("POST /api/triage/analyze", r.triageHandler.Analyze)

	// Chat assistant endpoint
	r.mux.HandleFunc("POST /api/chat", r.chatHandler.Chat)

	// Triage history endpoint
	r.mux.HandleFunc("GET /api/history/{uid}", r.historyHandler.GetHistory)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.RequestIDMiddleware(handler)

	// CORS wraps everything so headers are set on every response
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
