package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pixgen-api/internal/config"
	"github.com/phrazzld/pixgen-api/internal/domain"
	"github.com/phrazzld/pixgen-api/internal/generation"
	"github.com/phrazzld/pixgen-api/internal/redact"
	"google.golang.org/genai"
)

// placeholderAPIKey is substituted when no credential is configured.
// Calls against the real service will fail, but the server still starts.
const placeholderAPIKey = "missing-api-key"

// defaultMIMEType is assumed when the API omits the payload MIME type.
const defaultMIMEType = "image/png"

// BackgroundRemover strips the background from raw image bytes.
// Implementations return the processed bytes or an error; the generator
// falls back to the unprocessed image on any error.
type BackgroundRemover interface {
	Remove(ctx context.Context, data []byte, mimeType string) ([]byte, error)
}

// safetySettings are the fixed content-safety thresholds applied to every
// generation request: block medium-and-above across all four categories.
var safetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
}

// ImageGenerator implements the generation.Generator interface using
// Google's Gemini API to produce stylized images from text prompts.
type ImageGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains generation-specific configuration
	config config.GenerationConfig

	// client is the Gemini API client for making requests
	client *genai.Client

	// remover post-processes generated images
	remover BackgroundRemover

	// model is the name of the Gemini model to use
	model string
}

// NewImageGenerator creates a new instance of ImageGenerator with the
// provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: Generation configuration containing API key and model name
//   - remover: Background-removal post-processor
//
// Returns:
//   - A properly initialized ImageGenerator or an error if initialization fails
func NewImageGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.GenerationConfig,
	remover BackgroundRemover,
) (*ImageGenerator, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}
	if remover == nil {
		return nil, ErrNilRemover
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	apiKey := cfg.GeminiAPIKey
	if apiKey == "" {
		logger.Warn("no Gemini API key configured, using placeholder; generation calls will fail")
		apiKey = placeholderAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &ImageGenerator{
		logger:  logger,
		config:  cfg,
		client:  client,
		remover: remover,
		model:   cfg.ModelName,
	}, nil
}

// buildInstruction wraps the user prompt in the fixed style-constrained
// instruction sent to the model.
func buildInstruction(prompt string) string {
	return fmt.Sprintf(
		"Generate a single square sticker-style illustration of: %s. "+
			"Use bold outlines, flat vibrant colors, and a plain solid background "+
			"suitable for background removal. Return exactly one image.",
		prompt,
	)
}

// GenerateImage produces one stylized image for the given prompt.
//
// It requests a single image-and-text response from Gemini with the fixed
// safety settings, extracts the first inline image payload, attempts
// background removal, and returns an ImageResult whose fullsize and
// thumbnail renditions share one data URL.
func (g *ImageGenerator) GenerateImage(ctx context.Context, prompt string) (*domain.ImageResult, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	g.logger.DebugContext(ctx, "requesting image generation",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(buildInstruction(prompt)),
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
			SafetySettings:     safetySettings,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	data, mimeType, err := extractInlineImage(resp)
	if err != nil {
		return nil, err
	}

	processed, processedMIME := g.removeBackground(ctx, data, mimeType)

	dataURL := fmt.Sprintf("data:%s;base64,%s",
		processedMIME, base64.StdEncoding.EncodeToString(processed))

	result, err := domain.NewImageResult(prompt, dataURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	g.logger.DebugContext(ctx, "image generated",
		"model", g.model,
		"payload_bytes", len(processed))

	return result, nil
}

// extractInlineImage validates the API response and returns the first
// inline image payload with its MIME type.
func extractInlineImage(resp *genai.GenerateContentResponse) ([]byte, string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, "", fmt.Errorf("%w: no candidates in response", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, "", generation.ErrContentBlocked
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, "", fmt.Errorf("%w: invalid response structure", generation.ErrInvalidResponse)
	}

	for _, part := range candidate.Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		mimeType := part.InlineData.MIMEType
		if mimeType == "" {
			mimeType = defaultMIMEType
		}
		return part.InlineData.Data, mimeType, nil
	}

	return nil, "", generation.ErrNoImageGenerated
}

// removeBackground runs the background remover over the image bytes,
// falling back to the unprocessed payload when removal fails. Removal
// output is always PNG (transparency requires an alpha channel).
func (g *ImageGenerator) removeBackground(ctx context.Context, data []byte, mimeType string) ([]byte, string) {
	processed, err := g.remover.Remove(ctx, data, mimeType)
	if err != nil {
		g.logger.WarnContext(ctx, "background removal failed, using unprocessed image",
			"error", redact.Error(err))
		return data, mimeType
	}
	return processed, defaultMIMEType
}
