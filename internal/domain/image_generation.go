package domain

import (
	"context"
)

// Response modalities requested from the generation API
const (
	ModalityText  = "TEXT"
	ModalityImage = "IMAGE"
)

// ImageGenerationRequest represents the parameters for image generation
type ImageGenerationRequest struct {
	Prompt string
	Input  *InputImage
}

// ResponsePart is a single segment of a generation response, either text or inline data
type ResponsePart struct {
	Text       string
	MIMEType   string
	InlineData []byte
}

// HasInlineData reports whether the part carries a binary payload
func (p ResponsePart) HasInlineData() bool {
	return len(p.InlineData) > 0
}

// ImageGenerationResponse represents the response from the image generation service
type ImageGenerationResponse struct {
	Model string
	Parts []ResponsePart
}

// ImageGenerator defines the interface for the external generation API
type ImageGenerator interface {
	// GenerateContent sends the prompt and image as one request and returns the response parts in order
	GenerateContent(ctx context.Context, req ImageGenerationRequest) (*ImageGenerationResponse, error)
}

// Outcome describes what a generation attempt did to the display slot
type Outcome string

const (
	OutcomeSkipped   Outcome = "Skipped"
	OutcomeNoImage   Outcome = "NoImage"
	OutcomeGenerated Outcome = "Generated"
)

// GenerationResult is the explicit result of one generation attempt
type GenerationResult struct {
	Outcome Outcome
	Image   *GeneratedImage
	Text    []string
	// ExtraImages counts inline parts after the first one, which are dropped
	ExtraImages int
}

// Submission is the state gathered by the input collector for one UI event
type Submission struct {
	Image             *InputImage
	Prompt            string
	GenerateRequested bool
}

// Ready reports whether the submission may trigger an API call
func (s Submission) Ready() bool {
	return s.Image != nil && s.Prompt != "" && s.GenerateRequested
}
