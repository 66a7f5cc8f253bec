// ABOUTME: Tests for the streaming chat path against a fake SSE backend
// ABOUTME: Covers token ordering, terminal callbacks, truncation, and persistence

package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harper/companion/internal/models"
)

// sseHandler writes raw SSE lines and flushes after each one
func sseHandler(t *testing.T, lines []string, capture *chatRequest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat/stream" {
			t.Errorf("path = %q, want /api/chat/stream", r.URL.Path)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, line := range lines {
			fmt.Fprintf(w, "%s\n", line)
			flusher.Flush()
		}
	}
}

// collectingCallbacks records every callback invocation
type collectingCallbacks struct {
	tokens    []string
	completes []string
	errs      []error
}

func (c *collectingCallbacks) callbacks() Callbacks {
	return Callbacks{
		OnToken:    func(tok string) { c.tokens = append(c.tokens, tok) },
		OnComplete: func(full string) { c.completes = append(c.completes, full) },
		OnError:    func(err error) { c.errs = append(c.errs, err) },
	}
}

func TestSendMessageStream_TokensAndComplete(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(sseHandler(t, []string{
		`data: {"token": "Hel"}`,
		``,
		`data: {"token": "lo"}`,
		``,
		`data: {"token": "", "done": true}`,
		``,
	}, &captured))
	defer server.Close()

	store := newTestStore()
	client := newTestClient(t, server.URL, store)

	var got collectingCallbacks
	client.SendMessageStream(context.Background(), "hi there", got.callbacks())

	if len(got.tokens) != 2 || got.tokens[0] != "Hel" || got.tokens[1] != "lo" {
		t.Errorf("tokens = %v, want [Hel lo]", got.tokens)
	}
	if len(got.completes) != 1 || got.completes[0] != "Hello" {
		t.Errorf("completes = %v, want [Hello]", got.completes)
	}
	if len(got.errs) != 0 {
		t.Errorf("errs = %v, want none", got.errs)
	}

	// Streaming always transmits an empty context array
	if captured.Context == nil || len(captured.Context) != 0 {
		t.Errorf("context = %v, want empty non-nil array", captured.Context)
	}

	// One user turn and one assistant turn carrying the accumulated text
	assistantTurns := store.turnsByRole(models.RoleAssistant)
	if len(assistantTurns) != 1 {
		t.Fatalf("assistant turns = %d, want 1", len(assistantTurns))
	}
	if assistantTurns[0].Content != "Hello" {
		t.Errorf("assistant content = %q, want Hello", assistantTurns[0].Content)
	}
	if len(store.turnsByRole(models.RoleUser)) != 1 {
		t.Error("expected exactly one user turn")
	}
}

func TestSendMessageStream_ErrorFrame(t *testing.T) {
	server := httptest.NewServer(sseHandler(t, []string{
		`data: {"token": "par"}`,
		``,
		`data: {"error": "model unavailable"}`,
		``,
	}, nil))
	defer server.Close()

	store := newTestStore()
	client := newTestClient(t, server.URL, store)

	var got collectingCallbacks
	client.SendMessageStream(context.Background(), "hi", got.callbacks())

	if len(got.errs) != 1 || got.errs[0].Error() != "model unavailable" {
		t.Fatalf("errs = %v, want [model unavailable]", got.errs)
	}
	if len(got.completes) != 0 {
		t.Errorf("completes = %v, want none", got.completes)
	}
	// A partial response is never persisted
	if len(store.turnsByRole(models.RoleAssistant)) != 0 {
		t.Error("assistant turn persisted despite error frame")
	}
}

func TestSendMessageStream_Truncation(t *testing.T) {
	server := httptest.NewServer(sseHandler(t, []string{
		`data: {"token": "Hel"}`,
		``,
		// connection closes with no done frame
	}, nil))
	defer server.Close()

	store := newTestStore()
	client := newTestClient(t, server.URL, store)

	var got collectingCallbacks
	client.SendMessageStream(context.Background(), "hi", got.callbacks())

	if got.tokens[0] != "Hel" {
		t.Errorf("tokens = %v, want tokens before the cut to still arrive", got.tokens)
	}
	if len(got.errs) != 1 || !errors.Is(got.errs[0], ErrTruncated) {
		t.Fatalf("errs = %v, want [ErrTruncated]", got.errs)
	}
	if len(got.completes) != 0 {
		t.Errorf("completes = %v, want none", got.completes)
	}
	if len(store.turnsByRole(models.RoleAssistant)) != 0 {
		t.Error("assistant turn persisted despite truncation")
	}
}

func TestSendMessageStream_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, newTestStore())

	var got collectingCallbacks
	client.SendMessageStream(context.Background(), "hi", got.callbacks())

	if len(got.errs) != 1 {
		t.Fatalf("errs = %v, want one status error", got.errs)
	}
	if len(got.tokens) != 0 || len(got.completes) != 0 {
		t.Error("no tokens or completion expected on a failed request")
	}
}

func TestSendMessageStream_NilCallbacks(t *testing.T) {
	server := httptest.NewServer(sseHandler(t, []string{
		`data: {"token": "ok"}`,
		``,
		`data: {"done": true}`,
		``,
	}, nil))
	defer server.Close()

	client := newTestClient(t, server.URL, newTestStore())

	// Must not panic with no subscribers
	client.SendMessageStream(context.Background(), "hi", Callbacks{})
}

func TestSendMessageStream_PersistsUserTurnBeforeRequest(t *testing.T) {
	store := newTestStore()
	var turnsAtRequest int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store.mu.Lock()
		turnsAtRequest = len(store.turns)
		store.mu.Unlock()
		fmt.Fprint(w, "data: {\"done\": true}\n\n")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, store)
	client.SendMessageStream(context.Background(), "I am so happy, excited and thrilled", Callbacks{})

	if turnsAtRequest != 1 {
		t.Errorf("turns persisted before request = %d, want 1", turnsAtRequest)
	}
	// Strong joy signal also lands an emotion history entry
	if len(store.emotions) != 1 || store.emotions[0].Emotion != models.EmotionJoy {
		t.Errorf("emotions = %+v, want one joy entry", store.emotions)
	}
}
