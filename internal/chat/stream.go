// ABOUTME: Streaming send path decoding token frames into incremental callbacks
// ABOUTME: Exactly one terminal callback fires once the request has been issued
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/harper/companion/internal/emotion"
)

// Callbacks receives streaming results. Nil members are skipped, so a caller
// may subscribe to tokens only.
type Callbacks struct {
	// OnToken fires for each received token, in order
	OnToken func(token string)
	// OnComplete fires once with the full accumulated text after the done frame
	OnComplete func(full string)
	// OnError fires once on an error frame, transport failure, or truncation
	OnError func(err error)
}

func (cb Callbacks) token(t string) {
	if cb.OnToken != nil {
		cb.OnToken(t)
	}
}

func (cb Callbacks) complete(full string) {
	if cb.OnComplete != nil {
		cb.OnComplete(full)
	}
}

func (cb Callbacks) fail(err error) {
	if cb.OnError != nil {
		cb.OnError(err)
	}
}

// SendMessageStream sends one message and streams the response.
//
// The user turn is persisted (best-effort) before the request goes out; the
// assistant turn is persisted when the done frame arrives; the memory
// recorder then runs fire-and-forget over the original user message. The
// streaming variant intentionally transmits an empty context array, trading
// context for responsiveness.
//
// All failures are reported through cb.OnError; the method never panics and
// never returns an error of its own. A stream that closes without a done
// frame surfaces as ErrTruncated (test with errors.Is). The client holds no
// mutex: two concurrent streams for one conversation race on ordering.
func (c *Client) SendMessageStream(ctx context.Context, userMessage string, cb Callbacks) {
	detected, confidence := emotion.Detect(userMessage)
	c.persistUserTurn(userMessage, detected, confidence)

	body, err := json.Marshal(chatRequest{
		Message:        userMessage,
		ConversationID: c.conversationID,
		Context:        []ContextMessage{},
	})
	if err != nil {
		cb.fail(fmt.Errorf("failed to encode request: %w", err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat/stream", bytes.NewReader(body))
	if err != nil {
		cb.fail(fmt.Errorf("failed to build request: %w", err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		cb.fail(fmt.Errorf("inference request failed: %w", err))
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		cb.fail(fmt.Errorf("inference backend returned status %d", resp.StatusCode))
		return
	}

	decoder := newFrameDecoder(resp.Body)
	var full strings.Builder

	for {
		frame, err := decoder.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			cb.fail(err)
			return
		}

		if frame.Error != "" {
			cb.fail(errors.New(frame.Error))
			return
		}

		if frame.Token != "" {
			full.WriteString(frame.Token)
			cb.token(frame.Token)
		}

		if frame.Done {
			fullText := full.String()
			if fullText != "" {
				c.persistAssistantTurn(fullText)
			}
			c.recorder.RecordAsync(c.userID, userMessage)
			cb.complete(fullText)
			return
		}
	}
}
