package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/basel-ax/reimagine/internal/domain"
)

// Client represents the Gemini generateContent API client
type Client struct {
	client *genai.Client
	model  string
}

// Options configures a Client
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	// HTTPClient overrides the transport used by the SDK
	HTTPClient *http.Client
}

// NewClient creates a new Gemini API client
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: opts.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  opts.Model,
	}, nil
}

// Model returns the model name requests are sent to
func (c *Client) Model() string {
	return c.model
}

// GenerateContent sends the prompt and the input image as a single user turn and
// returns the parts of the first candidate in the order the API produced them.
func (c *Client) GenerateContent(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageGenerationResponse, error) {
	if req.Input == nil {
		return nil, fmt.Errorf("%w: input image is required", domain.ErrGeneration)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(req.Prompt),
			genai.NewPartFromBytes(req.Input.Data, req.Input.MIMEType),
		}, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{domain.ModalityText, domain.ModalityImage},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, classifyError(err)
	}

	result := &domain.ImageGenerationResponse{Model: c.model}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return result, nil
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		p := domain.ResponsePart{Text: part.Text}
		if part.InlineData != nil {
			p.MIMEType = part.InlineData.MIMEType
			p.InlineData = part.InlineData.Data
		}
		result.Parts = append(result.Parts, p)
	}

	return result, nil
}

// classifyError maps SDK errors onto the domain sentinels, keeping the original in the chain
func classifyError(err error) error {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		code = apiErrPtr.Code
	}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w: %w", domain.ErrGeneration, domain.ErrAuthentication, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w: %w", domain.ErrGeneration, domain.ErrQuotaExceeded, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}
}

var _ domain.ImageGenerator = (*Client)(nil)
