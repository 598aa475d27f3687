package aiclient

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

// ErrNotConfigured is returned when no AI endpoint is set.
var ErrNotConfigured = errors.New("ai client not configured")

// Client talks to an OpenAI-compatible chat completions endpoint. It backs
// the merchant copywriting helpers and the storefront shopping assistant.
type Client struct {
	url    string
	token  string
	model  string
	client *http.Client
}

func New(url, token, model string) *Client {
	return &Client{
		url:    url,
		token:  token,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Message is one turn of a chat exchange.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ChatCompletion sends the messages and returns the assistant's reply.
func (c *Client) ChatCompletion(ctx context.Context, messages []Message) (string, error) {
	if c.url == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("ai api status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("ai api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("ai api returned no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// GenerateProductName suggests a product name from a rough idea.
func (c *Client) GenerateProductName(ctx context.Context, idea string) (string, error) {
	return c.ChatCompletion(ctx, []Message{
		{Role: "system", Content: "You name e-commerce products. Reply with the product name only, no quotes."},
		{Role: "user", Content: idea},
	})
}

// GenerateProductDescription writes a short sales description for a product.
func (c *Client) GenerateProductDescription(ctx context.Context, name, details string) (string, error) {
	prompt := fmt.Sprintf("Write a concise, persuasive product description (2-3 sentences) for %q.", name)
	if details != "" {
		prompt += " Details: " + details
	}
	return c.ChatCompletion(ctx, []Message{
		{Role: "system", Content: "You write e-commerce product descriptions. Plain text, no markdown."},
		{Role: "user", Content: prompt},
	})
}

// GenerateSEOKeywords suggests comma-separated keywords for a product.
func (c *Client) GenerateSEOKeywords(ctx context.Context, name, description string) ([]string, error) {
	reply, err := c.ChatCompletion(ctx, []Message{
		{Role: "system", Content: "You suggest SEO keywords. Reply with 5-10 keywords as a single comma-separated line."},
		{Role: "user", Content: fmt.Sprintf("Product: %s. %s", name, description)},
	})
	if err != nil {
		return nil, err
	}
	parts := strings.Split(reply, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if kw := strings.TrimSpace(p); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords, nil
}

// ChatWithCustomer answers a shopper's question grounded in the store's
// catalog summary.
func (c *Client) ChatWithCustomer(ctx context.Context, storeName, catalogSummary string, history []Message) (string, error) {
	system := fmt.Sprintf(
		"You are a helpful shopping assistant for the store %q. Only discuss this store and its products. Catalog: %s",
		storeName, catalogSummary)
	messages := append([]Message{{Role: "system", Content: system}}, history...)
	return c.ChatCompletion(ctx, messages)
}
