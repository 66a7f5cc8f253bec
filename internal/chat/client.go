// ABOUTME: Chat client orchestrating emotion tagging, persistence and inference
// ABOUTME: Non-streaming path; never propagates failures, falls back to canned replies
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/harper/companion/internal/emotion"
	"github.com/harper/companion/internal/memory"
	"github.com/harper/companion/internal/models"
	"github.com/harper/companion/internal/storage"
)

const (
	// DefaultEmotionThreshold gates emotion-history writes
	DefaultEmotionThreshold = 0.3
	// DefaultContextTurns caps the context array sent to the backend
	DefaultContextTurns = 10
	// defaultTimeout bounds the non-streaming request
	defaultTimeout = 60 * time.Second
)

// Options configures a chat client. UserID is required: identity is always
// injected, never read from ambient state.
type Options struct {
	BaseURL          string
	UserID           string
	ConversationID   string // defaults to UserID
	Timeout          time.Duration
	EmotionThreshold float64
	ContextTurns     int
}

// Reply is the structured result of a non-streaming send
type Reply struct {
	Message           string
	Emotion           models.Emotion
	EmotionConfidence float64
}

// Client talks to the companion inference backend and the record store.
// It holds no mutex: callers must not overlap requests for one conversation.
type Client struct {
	baseURL          string
	userID           string
	conversationID   string
	httpClient       *http.Client
	streamClient     *http.Client
	store            storage.Store
	recorder         *memory.Recorder
	emotionThreshold float64
	contextTurns     int
}

// New creates a chat client for one user against one backend
func New(opts Options, store storage.Store) (*Client, error) {
	if opts.UserID == "" {
		return nil, errors.New("user id is required")
	}
	if opts.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if opts.ConversationID == "" {
		opts.ConversationID = opts.UserID
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.EmotionThreshold == 0 {
		opts.EmotionThreshold = DefaultEmotionThreshold
	}
	if opts.ContextTurns == 0 {
		opts.ContextTurns = DefaultContextTurns
	}

	return &Client{
		baseURL:        opts.BaseURL,
		userID:         opts.UserID,
		conversationID: opts.ConversationID,
		httpClient:     &http.Client{Timeout: opts.Timeout},
		// The stream client carries no overall timeout; a stream lives as
		// long as the model generates. Cancellation comes from the context.
		streamClient:     &http.Client{},
		store:            store,
		recorder:         memory.NewRecorder(store),
		emotionThreshold: opts.EmotionThreshold,
		contextTurns:     opts.ContextTurns,
	}, nil
}

// Recorder exposes the memory recorder so callers can Wait in tests
func (c *Client) Recorder() *memory.Recorder {
	return c.recorder
}

// SendMessage sends one message and blocks for the full response.
//
// Failures never propagate: on any transport or parse error the reply is a
// canned message chosen by the already-detected emotion, so the caller
// always has something to render. The detected emotion and confidence in
// the reply are real regardless of transport outcome.
func (c *Client) SendMessage(ctx context.Context, userMessage string) *Reply {
	detected, confidence := emotion.Detect(userMessage)
	c.persistUserTurn(userMessage, detected, confidence)

	responseText, err := c.requestCompletion(ctx, userMessage, c.buildContext())
	if err != nil {
		log.Printf("[Chat] Falling back to canned reply: %v", err)
		return &Reply{
			Message:           fallbackReply(detected),
			Emotion:           detected,
			EmotionConfidence: confidence,
		}
	}

	c.persistAssistantTurn(responseText)
	c.recorder.RecordAsync(c.userID, userMessage)

	return &Reply{
		Message:           responseText,
		Emotion:           detected,
		EmotionConfidence: confidence,
	}
}

// requestCompletion performs the blocking /api/chat call
func (c *Client) requestCompletion(ctx context.Context, userMessage string, contextMsgs []ContextMessage) (string, error) {
	body, err := json.Marshal(chatRequest{
		Message:        userMessage,
		ConversationID: c.conversationID,
		Context:        contextMsgs,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference backend returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return parsed.Response, nil
}

// buildContext loads profile, memories, and the most recent turns. The
// profile load doubles as lazy first-access creation. The transmitted
// context array carries turns only, reversed into chronological order and
// capped at contextTurns entries.
func (c *Client) buildContext() []ContextMessage {
	if _, err := c.store.GetOrCreateProfile(c.userID); err != nil {
		log.Printf("[Chat] Error loading profile: %v", err)
	}
	if _, err := c.store.TopMemories(c.userID, c.contextTurns); err != nil {
		log.Printf("[Chat] Error loading memories: %v", err)
	}

	turns, err := c.store.RecentTurns(c.userID, c.contextTurns)
	if err != nil {
		log.Printf("[Chat] Error loading recent turns: %v", err)
		return []ContextMessage{}
	}

	// RecentTurns is newest first; reverse into oldest first
	msgs := make([]ContextMessage, 0, len(turns))
	for i := len(turns) - 1; i >= 0; i-- {
		msgs = append(msgs, ContextMessage{
			Role:    string(turns[i].Role),
			Content: turns[i].Content,
		})
	}
	if len(msgs) > c.contextTurns {
		msgs = msgs[len(msgs)-c.contextTurns:]
	}
	return msgs
}

// persistUserTurn records the outgoing message and, when warranted, an
// emotion history entry. Both writes are best-effort telemetry: failures
// are logged and never abort the request.
func (c *Client) persistUserTurn(message string, detected models.Emotion, confidence float64) {
	turn, err := models.NewConversationTurn(c.userID, models.RoleUser, message, detected, confidence)
	if err != nil {
		log.Printf("[Chat] Error building user turn: %v", err)
	} else if err := c.store.SaveTurn(turn); err != nil {
		log.Printf("[Chat] Error persisting user turn: %v", err)
	}

	if detected != models.EmotionNeutral && confidence > c.emotionThreshold {
		entry, err := models.NewEmotionHistoryEntry(c.userID, detected, confidence, message)
		if err != nil {
			log.Printf("[Chat] Error building emotion entry: %v", err)
		} else if err := c.store.SaveEmotion(entry); err != nil {
			log.Printf("[Chat] Error persisting emotion entry: %v", err)
		}
	}
}

// persistAssistantTurn records the full assistant response. Assistant turns
// are not emotion-tagged: the emotion is fixed neutral with zero confidence.
func (c *Client) persistAssistantTurn(content string) {
	turn, err := models.NewConversationTurn(c.userID, models.RoleAssistant, content, models.EmotionNeutral, 0)
	if err != nil {
		log.Printf("[Chat] Error building assistant turn: %v", err)
		return
	}
	if err := c.store.SaveTurn(turn); err != nil {
		log.Printf("[Chat] Error persisting assistant turn: %v", err)
	}
}
