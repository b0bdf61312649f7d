package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"essay-grader-service/internal/config"
	"essay-grader-service/internal/core/domain"
	ports "essay-grader-service/internal/core/ports/output"
)

const collaborator = "text generation"

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
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
	model   string
}

// NewClient creates a chat-completions client for any OpenAI-compatible API.
// Requests are sent once; resty retries stay disabled.
func NewClient(cfg *config.LLMConfig) ports.TextGenerator {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &client{
		http:    resty.New().SetTimeout(timeout).SetRetryCount(0),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
}

func (c *client) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature: req.Temperature,
	}

	var resp chatResponse
	rr, err := c.http.R().SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&resp).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		return "", &domain.CollaboratorError{Collaborator: collaborator, Err: err}
	}
	if rr.IsError() {
		log.WithFields(log.Fields{
			"status": rr.StatusCode(),
			"model":  c.model,
		}).Warn("chat completion rejected")
		return "", &domain.CollaboratorError{
			Collaborator: collaborator,
			Err:          fmt.Errorf("chat completion: %s", rr.Status()),
		}
	}
	if len(resp.Choices) == 0 {
		return "", &domain.CollaboratorError{Collaborator: collaborator, Err: fmt.Errorf("no choices returned")}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
