package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/basel-ax/reimagine/internal/domain"
)

// ImageGenerationService turns a collected submission into at most one API call
// and writes the session's display slot on success.
type ImageGenerationService struct {
	generator domain.ImageGenerator
	logger    *zap.Logger
	timeout   time.Duration
}

// NewImageGenerationService creates a new image generation service.
// A zero timeout leaves the call unbounded.
func NewImageGenerationService(generator domain.ImageGenerator, logger *zap.Logger, timeout time.Duration) *ImageGenerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageGenerationService{
		generator: generator,
		logger:    logger,
		timeout:   timeout,
	}
}

// Generate runs one generation attempt for the session. The caller must hold the session lock.
// The display slot is only written when the response carries a decodable inline image.
func (s *ImageGenerationService) Generate(ctx context.Context, sess *domain.Session, sub domain.Submission) (*domain.GenerationResult, error) {
	if !sub.Ready() {
		return &domain.GenerationResult{Outcome: domain.OutcomeSkipped}, nil
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	logger := s.logger.With(zap.String("session_id", sess.ID))
	logger.Info("generating image",
		zap.String("filename", sub.Image.Filename),
		zap.Int("prompt_length", len(sub.Prompt)),
	)

	start := time.Now()
	resp, err := s.generator.GenerateContent(ctx, domain.ImageGenerationRequest{
		Prompt: sub.Prompt,
		Input:  sub.Image,
	})
	if err != nil {
		logger.Error("image generation failed", zap.Error(err), zap.Duration("latency", time.Since(start)))
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}
	if resp == nil {
		resp = &domain.ImageGenerationResponse{}
	}

	result := &domain.GenerationResult{
		Text: lo.FilterMap(resp.Parts, func(p domain.ResponsePart, _ int) (string, bool) {
			return p.Text, p.Text != ""
		}),
	}

	images := lo.Filter(resp.Parts, func(p domain.ResponsePart, _ int) bool {
		return p.HasInlineData()
	})
	if len(images) == 0 {
		logger.Warn("response contained no image part",
			zap.Int("parts", len(resp.Parts)),
			zap.Strings("text", result.Text),
		)
		result.Outcome = domain.OutcomeNoImage
		return result, nil
	}

	generated, err := domain.DecodeGeneratedImage(images[0])
	if err != nil {
		logger.Error("failed to decode generated image", zap.Error(err), zap.String("mime_type", images[0].MIMEType))
		return nil, fmt.Errorf("failed to decode generated image: %w", err)
	}

	sess.SetGenerated(generated)
	result.Outcome = domain.OutcomeGenerated
	result.Image = generated
	result.ExtraImages = len(images) - 1

	bounds := generated.Image.Bounds()
	logger.Info("image generated",
		zap.String("model", resp.Model),
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()),
		zap.Int("dropped_images", result.ExtraImages),
		zap.Duration("latency", time.Since(start)),
	)

	return result, nil
}
