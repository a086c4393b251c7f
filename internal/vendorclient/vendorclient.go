// Package vendorclient dispatches a chat-style call to one of the five
// supported LLM vendors over a shared resty client, normalizing each
// vendor's own request/response wire format down to (content string, ok
// bool).
package vendorclient

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Message is one turn of a conversation, in OpenAI role/content shape.
// Every vendor adapter translates from this shared shape into its own
// wire format.
type Message struct {
	Role    string
	Content string
}

// Endpoint is the default base URL for a vendor. A Client copies it at
// construction; Client.WithEndpoint overrides one vendor's URL, e.g. to
// point a test at a mock server.
var Endpoint = map[string]string{
	"openai":   "https://api.openai.com/v1/chat/completions",
	"claude":   "https://api.anthropic.com/v1/messages",
	"gemini":   "https://generativelanguage.googleapis.com/v1beta",
	"deepseek": "https://api.deepseek.com/v1/chat/completions",
	"xai":      "https://api.x.ai/v1/chat/completions",
}

// apiKeyEnv maps a vendor to the environment variable holding its key.
var apiKeyEnv = map[string]string{
	"openai":   "OPENAI_API_KEY_CBM",
	"claude":   "ANTHROPIC_API_KEY_CBM",
	"gemini":   "GEMINI_API_KEY_CBM",
	"deepseek": "DEEPSEEK_API_KEY_CBM",
	"xai":      "XAI_API_KEY_CBM",
}

const maxOutputTokens = 500

// Client dispatches calls to vendor adapters over a single shared
// resty.Client reused across every call.
type Client struct {
	http *resty.Client
	// endpoints and apiKeys allow per-instance overrides (tests point
	// these at an httptest.Server instead of the real vendor host).
	endpoints map[string]string
	apiKeys   map[string]string
}

// New builds a Client reading API keys from the environment and pointing
// at the real vendor endpoints.
func New(http *resty.Client) *Client {
	keys := make(map[string]string, len(apiKeyEnv))
	for vendor, env := range apiKeyEnv {
		keys[vendor] = os.Getenv(env)
	}
	endpoints := make(map[string]string, len(Endpoint))
	for vendor, url := range Endpoint {
		endpoints[vendor] = url
	}
	return &Client{http: http, endpoints: endpoints, apiKeys: keys}
}

// WithEndpoint overrides the base URL for one vendor, for pointing a test
// at an httptest.Server.
func (c *Client) WithEndpoint(vendor, url string) *Client {
	c.endpoints[vendor] = url
	return c
}

// WithAPIKey overrides the API key for one vendor.
func (c *Client) WithAPIKey(vendor, key string) *Client {
	c.apiKeys[vendor] = key
	return c
}

// Call dispatches messages to vendor's chat endpoint using model and
// temperature. It never returns an error to the caller: any failure
// (missing key, network error, non-2xx status, malformed body) yields
// ("", false), matching the uniform failure contract vendor adapters must
// honor so the executor can treat every vendor identically.
func (c *Client) Call(ctx context.Context, vendor string, messages []Message, model string, temperature float64) (string, bool) {
	apiKey := c.apiKeys[vendor]
	if apiKey == "" {
		log.Printf("[vendorclient] %s: no API key configured", vendor)
		return "", false
	}

	switch vendor {
	case "openai", "deepseek", "xai":
		return c.callOpenAICompatible(ctx, vendor, apiKey, messages, model, temperature)
	case "claude":
		return c.callClaude(ctx, apiKey, messages, model, temperature)
	case "gemini":
		return c.callGemini(ctx, apiKey, messages, model, temperature)
	default:
		log.Printf("[vendorclient] unknown vendor: %s", vendor)
		return "", false
	}
}

func (c *Client) callOpenAICompatible(ctx context.Context, vendor, apiKey string, messages []Message, model string, temperature float64) (string, bool) {
	payload := map[string]interface{}{
		"model":       model,
		"messages":    toOpenAIMessages(messages),
		"temperature": temperature,
		"max_tokens":  maxOutputTokens,
	}

	var body struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&body).
		Post(c.endpoints[vendor])
	if err != nil {
		log.Printf("[vendorclient] %s request error: %v", vendor, err)
		return "", false
	}
	if !resp.IsSuccess() {
		log.Printf("[vendorclient] %s non-success status %s: %s", vendor, resp.Status(), resp.String())
		return "", false
	}
	if len(body.Choices) == 0 {
		log.Printf("[vendorclient] %s: empty choices in response", vendor)
		return "", false
	}
	return strings.TrimSpace(body.Choices[0].Message.Content), true
}

func (c *Client) callClaude(ctx context.Context, apiKey string, messages []Message, model string, temperature float64) (string, bool) {
	payload := map[string]interface{}{
		"model":       model,
		"max_tokens":  maxOutputTokens,
		"temperature": temperature,
		"messages":    toOpenAIMessages(messages),
	}

	var body struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", "2023-06-01").
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&body).
		Post(c.endpoints["claude"])
	if err != nil {
		log.Printf("[vendorclient] claude request error: %v", err)
		return "", false
	}
	if !resp.IsSuccess() {
		log.Printf("[vendorclient] claude non-success status %s: %s", resp.Status(), resp.String())
		return "", false
	}
	if len(body.Content) == 0 {
		log.Printf("[vendorclient] claude: empty content in response")
		return "", false
	}
	return strings.TrimSpace(body.Content[0].Text), true
}

func (c *Client) callGemini(ctx context.Context, apiKey string, messages []Message, model string, temperature float64) (string, bool) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoints["gemini"], model, apiKey)

	contents := make([]map[string]interface{}, 0, len(messages))
	for _, m := range messages {
		role := "model"
		if m.Role == "user" {
			role = "user"
		}
		contents = append(contents, map[string]interface{}{
			"role":  role,
			"parts": []map[string]string{{"text": m.Content}},
		})
	}

	payload := map[string]interface{}{
		"contents": contents,
		"generationConfig": map[string]interface{}{
			"temperature":     temperature,
			"maxOutputTokens": maxOutputTokens,
		},
	}

	var body struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&body).
		Post(url)
	if err != nil {
		log.Printf("[vendorclient] gemini request error: %v", err)
		return "", false
	}
	// Gemini is known to reject some temperature/model combinations with a
	// non-2xx status; propagate that as an ordinary adapter failure rather
	// than clamping the caller's requested temperature.
	if !resp.IsSuccess() {
		log.Printf("[vendorclient] gemini non-success status %s: %s", resp.Status(), resp.String())
		return "", false
	}
	if len(body.Candidates) == 0 || len(body.Candidates[0].Content.Parts) == 0 {
		log.Printf("[vendorclient] gemini: empty candidates in response")
		return "", false
	}
	return strings.TrimSpace(body.Candidates[0].Content.Parts[0].Text), true
}

func toOpenAIMessages(messages []Message) []map[string]string {
	out := make([]map[string]string, len(messages))
	for i, m := range messages {
		out[i] = map[string]string{"role": m.Role, "content": m.Content}
	}
	return out
}
