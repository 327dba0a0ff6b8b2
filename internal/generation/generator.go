package generation

import (
	"context"

	"github.com/phrazzld/pixgen-api/internal/domain"
)

// Generator defines the interface for producing a single stylized image
// from a text prompt. This interface serves as a boundary between the
// application core and external generative-image services, following the
// hexagonal architecture pattern.
type Generator interface {
	// GenerateImage creates one image based on the provided prompt.
	//
	// Parameters:
	//   - ctx: Context for the operation, which can be used for cancellation
	//   - prompt: The text prompt describing the image to generate
	//
	// Returns:
	//   - An ImageResult carrying both renditions of the generated image
	//   - An error if the generation fails for any reason (see errors.go
	//     for specific types)
	GenerateImage(ctx context.Context, prompt string) (*domain.ImageResult, error)
}
