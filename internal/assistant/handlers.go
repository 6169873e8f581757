package assistant

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

// Handlers serves the chat endpoint. A shared limiter keeps a misbehaving
// client from hammering what is, after all, a canned-response lookup.
type Handlers struct {
	matcher *Matcher
	limiter *rate.Limiter
}

func NewHandlers(matcher *Matcher) *Handlers {
	return &Handlers{
		matcher: matcher,
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

func (h *Handlers) MessageHandler(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow() {
		http.Error(w, "Too many requests", http.StatusTooManyRequests)
		return
	}

	var input struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Message) == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	response := h.matcher.Respond(input.Message)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
