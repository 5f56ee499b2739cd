// Package openrouter implements the interpretation gateway against any
// OpenAI-compatible chat completions endpoint.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/roseyAI/mara-baraha-app2026/internal/ports"
)

// Fallback strings returned instead of an interpretation. They are the only
// way callers can distinguish a degraded reading from a genuine one.
const (
	// FallbackEmptyReply covers a provider response with no usable text.
	FallbackEmptyReply = "The mists are too thick to see clearly right now. Please try again later."
	// FallbackProviderError covers transport and provider failures.
	FallbackProviderError = "The connection to the ether is disrupted (API Error). Please check your connection and try again."
)

// Client implements ports.Interpreter. Failures never cross its boundary:
// they are logged and converted to the fixed fallback strings above, so the
// reading flow always terminates in a result.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	model          string
	fallbackModels []string
	logger         *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, fallbackModels []string, logger *slog.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		model:          model,
		fallbackModels: fallbackModels,
		logger:         logger,
	}
}

// chatRequest / chatResponse mirror the OpenAI-compatible API shapes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Interpret(ctx context.Context, in ports.InterpretInput) string {
	models := make([]string, 0, 1+len(c.fallbackModels))
	models = append(models, c.model)
	models = append(models, c.fallbackModels...)

	userPrompt := buildUserPrompt(in)

	var lastErr error
	for _, model := range models {
		content, err := c.callLLM(ctx, model, systemPrompt, userPrompt)
		if err != nil {
			lastErr = err
			if len(models) > 1 {
				c.logger.WarnContext(ctx, "model failed, trying next", "model", model, "error", err)
			}
			continue
		}
		text := cleanText(content)
		if text == "" {
			c.logger.WarnContext(ctx, "provider returned empty interpretation", "model", model)
			return FallbackEmptyReply
		}
		return text
	}

	c.logger.ErrorContext(ctx, "all models failed", "error", lastErr)
	return FallbackProviderError
}

func (c *Client) callLLM(ctx context.Context, model, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

const systemPrompt = `You are Mara Baraha, an intuitive Tarot reader and teacher.
Your style is mystical, minimalist, and deeply empowering.
You teach "Intuitive Reading", focusing on the querent's own intuition alongside the fundamentals.
You DO NOT use reversed meanings; you interpret every card upright, focusing on the energy present.
Your ethics are strict: You do not predict fixed fates, death, or medical diagnoses. You offer guidance to empower the user to make their own choices.

Structure your response:
1. The Energy: A brief intuitive feel of the card(s).
2. The Guidance: Practical and spiritual advice based on the position in the spread.
3. Intuitive Prompt: Ask the user a question to trigger their own intuition.

Keep the tone calm and soft. Respond in plain prose without markdown formatting.`

func buildUserPrompt(in ports.InterpretInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reading Type: %s\n", in.Spread)
	if in.Question != "" {
		fmt.Fprintf(&b, "Querent's Question: %q\n", in.Question)
	}

	b.WriteString("\nCards Drawn:\n")
	for i, card := range in.Cards {
		orientation := "Upright"
		if card.Reversed {
			orientation = "Reversed"
		}
		fmt.Fprintf(&b, "%d. %s: %s (%s)\n", i+1, card.Position, card.Name, orientation)
		if card.Meaning != "" {
			fmt.Fprintf(&b, "   Meaning: %s\n", card.Meaning)
		}
	}

	if in.Daily {
		b.WriteString("\nThis is the querent's single daily card. Keep the reading brief, a short paragraph of guidance for the day.")
	} else {
		b.WriteString("\nPlease provide an interpretation of these cards in the context of the question and the position they fell in.")
	}
	return b.String()
}

// cleanText strips markdown markers and surrounding quotes the model may emit
// despite the plain-prose instruction.
func cleanText(s string) string {
	s = strings.NewReplacer("*", "", "#", "").Replace(s)
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
