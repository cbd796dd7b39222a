package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a new chi router with all the
// application's routes.
func NewRouter(handler *Handler) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID) // Injects a unique request ID into the context.
	r.Use(middleware.RealIP)    // Sets the remote address to the real IP from proxy headers.
	r.Use(requestLogger)        // Logs completed /api requests.
	r.Use(middleware.Recoverer) // Recovers from panics and returns a 500 error.

	// A simple health check endpoint for liveness and readiness probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// CRUD routes are cheap and get a tight timeout.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Post("/conversations", handler.CreateConversation)
			r.Get("/conversations", handler.GetConversations)
			r.Get("/messages/{conversationId}", handler.GetMessages)
			r.Delete("/conversation/{conversationId}", handler.DeleteConversation)
		})

		// The chat route waits on the model provider; it gets a longer
		// timeout so the outbound call stays bounded without cutting off
		// slow generations.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(120 * time.Second))

			r.Post("/chat/{conversationId}", handler.Chat)
		})
	})

	return r
}
