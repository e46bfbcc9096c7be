// Package ai is the optional conversational collaborator. It answers user
// questions about the generated chart through a hosted language model, it has
// no influence on the conversion itself.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultAPIURL is the hosted inference endpoint of the assistant model.
const DefaultAPIURL = "https://api-inference.huggingface.co/models/HuggingFaceH4/zephyr-7b-beta"

// TokenEnv is the environment variable holding the API token.
const TokenEnv = "HUGGINGFACE_TOKEN"

// DefaultSystemPrompt scopes the assistant to the converter.
const DefaultSystemPrompt = "You are the kube2helm assistant. " +
	"kube2helm converts Kubernetes YAML manifests into Helm charts. " +
	"You can answer questions about Kubernetes, Helm, the conversion process, " +
	"and help users understand the generated chart components " +
	"(Chart.yaml, values.yaml and the templates). " +
	"You cannot read the user's local files, but you can discuss the manifests " +
	"they convert and the charts the tool generates."

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Client talks to the hosted model. It issues one blocking request per turn.
type Client struct {
	APIURL       string
	SystemPrompt string
	token        string
	httpClient   *http.Client
}

// NewClient builds a client from the environment. It fails when the API token
// is not set, the caller is expected to degrade gracefully.
func NewClient(systemPrompt string) (*Client, error) {
	token := os.Getenv(TokenEnv)
	if token == "" {
		return nil, errors.New("api token not provided, set the " + TokenEnv + " environment variable")
	}
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &Client{
		APIURL:       DefaultAPIURL,
		SystemPrompt: systemPrompt,
		token:        token,
		httpClient:   &http.Client{Timeout: 90 * time.Second},
	}, nil
}

type chatRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters chatParameters `json:"parameters"`
	Options    chatOptions    `json:"options"`
}

type chatParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type chatOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

// Chat sends the conversation and returns the assistant reply. A transport or
// format error is returned as is, the caller decides whether the session goes
// on.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	payload := chatRequest{
		Inputs: c.formatPrompt(messages),
		Parameters: chatParameters{
			MaxNewTokens:   250,
			Temperature:    0.7,
			ReturnFullText: false,
		},
		Options: chatOptions{
			WaitForModel: true,
			UseCache:     false,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("api request failed: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(content)))
	}
	return decodeReply(content)
}

// formatPrompt builds the zephyr prompt: a system turn, then the user and
// assistant turns, ending with an open assistant turn.
func (c *Client) formatPrompt(messages []Message) string {
	prompt := strings.Builder{}
	prompt.WriteString("<|system|>\n" + c.SystemPrompt + "</s>\n")
	for _, message := range messages {
		content := strings.TrimSpace(message.Content)
		switch message.Role {
		case "user":
			prompt.WriteString("<|user|>\n" + content + "</s>\n")
		case "assistant":
			prompt.WriteString("<|assistant|>\n" + content + "</s>\n")
		}
	}
	prompt.WriteString("<|assistant|>\n")
	return prompt.String()
}

// decodeReply accepts the response shapes the inference API is known to
// produce: a list of generated_text objects, a single object, or a bare
// string.
func decodeReply(content []byte) (string, error) {
	type generated struct {
		GeneratedText string `json:"generated_text"`
	}

	var list []generated
	if err := json.Unmarshal(content, &list); err == nil && len(list) > 0 {
		return cleanReply(list[0].GeneratedText), nil
	}
	var single generated
	if err := json.Unmarshal(content, &single); err == nil && single.GeneratedText != "" {
		return cleanReply(single.GeneratedText), nil
	}
	var text string
	if err := json.Unmarshal(content, &text); err == nil {
		return cleanReply(text), nil
	}
	return "", fmt.Errorf("unexpected api response format: %s", strings.TrimSpace(string(content)))
}

func cleanReply(text string) string {
	text = strings.TrimSpace(text)
	// the model sometimes echoes the open assistant turn back
	text = strings.TrimPrefix(text, "<|assistant|>")
	return strings.TrimSpace(text)
}
