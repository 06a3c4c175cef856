package motivator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured means no endpoint was set; the UI shows a hint instead
// of attempting a request.
var ErrNotConfigured = errors.New("motivator: no endpoint configured")

const prompt = `You are a motivational assistant for a productivity tracker.

Weekly summary:
- Pomodoros completed: %d (goal %d)
- Tasks completed: %d (goal %d)

Write one concise, positive message. Acknowledge what was accomplished and,
if the goals were missed, suggest one strategy for the coming week.`

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewClient builds a client for baseURL (e.g. "https://api.openai.com/v1").
// An empty baseURL yields a client whose Generate returns ErrNotConfigured.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate requests a message for the weekly summary. Any failure comes back
// as an error for the caller to surface; nothing is retried automatically.
func (c *Client) Generate(ctx context.Context, in Input) (Output, error) {
	if c.baseURL == "" {
		return Output{}, ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: fmt.Sprintf(prompt,
				in.WeeklyPomodorosCompleted, in.WeeklyGoalPomodoros,
				in.WeeklyTasksCompleted, in.WeeklyGoalTasks),
		}},
	})
	if err != nil {
		return Output{}, fmt.Errorf("motivator: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Output{}, fmt.Errorf("motivator: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Output{}, fmt.Errorf("motivator: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return Output{}, fmt.Errorf("motivator: endpoint returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Output{}, fmt.Errorf("motivator: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return Output{}, errors.New("motivator: empty response")
	}

	return Output{MotivationMessage: strings.TrimSpace(parsed.Choices[0].Message.Content)}, nil
}
