package oracle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vmdrop/log"
)

const (
	defaultEndpoint = "https://models.github.ai/inference/chat/completions"
	defaultModel    = "openai/gpt-4.1"
	requestTimeout  = 15 * time.Second
)

// Remote asks a hosted chat model for a single-token verdict. The reply
// must be exactly COMPLETE or INCOMPLETE (case-insensitive); anything
// else is an error so the caller falls back to the heuristic.
type Remote struct {
	client *TracedClient
	apiURL string
	model  string
	token  string
}

func NewRemote(token string) *Remote {
	return &Remote{
		client: NewTracedClient(requestTimeout),
		apiURL: defaultEndpoint,
		model:  defaultModel,
		token:  token,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (r *Remote) Judge(text string) (Judgment, error) {
	prompt := fmt.Sprintf("Analyze this voicemail greeting excerpt to determine if the speaker has finished their greeting and is ready for a message.\n\nGreeting excerpt: %q\n\nRespond with ONLY 'COMPLETE' or 'INCOMPLETE'.", text)

	body, err := json.Marshal(chatRequest{
		Model:       r.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.3,
		TopP:        0.9,
		MaxTokens:   20,
	})
	if err != nil {
		return Judgment{}, err
	}

	req, err := http.NewRequest("POST", r.apiURL, bytes.NewReader(body))
	if err != nil {
		return Judgment{}, err
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return Judgment{}, fmt.Errorf("oracle request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Judgment{}, fmt.Errorf("oracle API error %d: %s", resp.StatusCode, string(resp.Body))
	}
	log.OracleRequest(resp.Metrics.Total, resp.Metrics.TTFB, resp.Metrics.ConnReused)

	var parsed chatResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return Judgment{}, fmt.Errorf("oracle response parse: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Judgment{}, fmt.Errorf("oracle response has no choices")
	}

	verdict := strings.ToUpper(strings.TrimSpace(parsed.Choices[0].Message.Content))
	switch verdict {
	case "COMPLETE":
		return Judgment{Complete: true, Raw: verdict}, nil
	case "INCOMPLETE":
		return Judgment{Complete: false, Raw: verdict}, nil
	default:
		return Judgment{}, fmt.Errorf("oracle returned unexpected verdict %q", verdict)
	}
}
