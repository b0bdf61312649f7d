package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"

	"essay-grader-service/internal/config"
	"essay-grader-service/internal/core/domain"
	ports "essay-grader-service/internal/core/ports/output"
)

const collaborator = "text recognition"

// Google Cloud Vision images:annotate request/response subset.
type annotateRequest struct {
	Requests []imageRequest `json:"requests"`
}

type imageRequest struct {
	Image    imageContent `json:"image"`
	Features []feature    `json:"features"`
}

type imageContent struct {
	Content string `json:"content"`
}

type feature struct {
	Type string `json:"type"`
}

type annotateResponse struct {
	Responses []struct {
		FullTextAnnotation *struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

type client struct {
	http     *resty.Client
	endpoint string
	apiKey   string
}

// NewClient creates a recognizer backed by Vision DOCUMENT_TEXT_DETECTION.
func NewClient(cfg *config.OCRConfig) ports.TextRecognizer {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &client{
		http:     resty.New().SetTimeout(timeout),
		endpoint: cfg.VisionEndpoint,
		apiKey:   cfg.VisionAPIKey,
	}
}

// Recognize returns the full document text, or "" when Vision found none.
func (c *client) Recognize(ctx context.Context, image io.Reader) (string, error) {
	data, err := io.ReadAll(image)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	body := annotateRequest{Requests: []imageRequest{{
		Image:    imageContent{Content: base64.StdEncoding.EncodeToString(data)},
		Features: []feature{{Type: "DOCUMENT_TEXT_DETECTION"}},
	}}}

	var resp annotateResponse
	rr, err := c.http.R().SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&resp).
		Post(c.endpoint)
	if err != nil {
		return "", &domain.CollaboratorError{Collaborator: collaborator, Err: err}
	}
	if rr.IsError() {
		return "", &domain.CollaboratorError{Collaborator: collaborator, Err: fmt.Errorf("annotate: %s", rr.Status())}
	}
	if len(resp.Responses) == 0 {
		return "", nil
	}

	r := resp.Responses[0]
	if r.Error != nil {
		return "", &domain.CollaboratorError{
			Collaborator: collaborator,
			Err:          fmt.Errorf("annotate: code %d: %s", r.Error.Code, r.Error.Message),
		}
	}
	if r.FullTextAnnotation == nil {
		return "", nil
	}
	return r.FullTextAnnotation.Text, nil
}
