// Package ollama implements port.TextGenerator against a local Ollama
// server's streaming chat API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vixip/internal/config"
	"vixip/internal/llm"
	"vixip/internal/port"
)

const backendName = "ollama"

// Client talks to one Ollama server and model.
type Client struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewClient creates a streaming chat client from config. The configured
// timeout bounds a whole generation, not a single fragment.
func NewClient(cfg *config.LLMConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 600 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatChunk struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
	Error   string      `json:"error"`
}

// Stream starts a chat generation and emits fragments as they arrive. The
// response is newline-delimited JSON; each chunk carries one content delta
// until the final chunk reports done.
func (c *Client) Stream(ctx context.Context, input port.GenerateInput) (<-chan port.Fragment, error) {
	var messages []chatMessage
	if input.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: input.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: input.UserPrompt})

	bodyBytes, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, llm.NewBackendError(backendName, err)
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, llm.NewBackendError(backendName,
			fmt.Errorf("chat API error (status %d): %s", resp.StatusCode, string(respBody)))
	}

	fragments := make(chan port.Fragment)
	go func() {
		defer close(fragments)
		defer func() { _ = resp.Body.Close() }()

		// Every send races ctx cancellation: a consumer that walks away
		// mid-stream stops draining the channel, and an unconditional send
		// would pin this goroutine and the response body forever.
		emit := func(f port.Fragment) bool {
			select {
			case fragments <- f:
				return true
			case <-ctx.Done():
				return false
			}
		}

		dec := json.NewDecoder(resp.Body)
		for {
			var chunk chatChunk
			if err := dec.Decode(&chunk); err != nil {
				if err == io.EOF {
					return
				}
				emit(port.Fragment{Err: llm.NewBackendError(backendName, fmt.Errorf("decoding stream: %w", err))})
				return
			}
			if chunk.Error != "" {
				emit(port.Fragment{Err: llm.NewBackendError(backendName, fmt.Errorf("stream error: %s", chunk.Error))})
				return
			}
			if chunk.Message.Content != "" && !emit(port.Fragment{Text: chunk.Message.Content}) {
				return
			}
			if chunk.Done {
				return
			}
		}
	}()

	return fragments, nil
}

// Healthy checks that the Ollama server is reachable.
func (c *Client) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return llm.NewBackendError(backendName, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return llm.NewBackendError(backendName, fmt.Errorf("tags endpoint returned status %d", resp.StatusCode))
	}
	return nil
}
