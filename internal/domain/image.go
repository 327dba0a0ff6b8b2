package domain

// Fixed render dimensions for generated images. The generation service
// returns a single asset; both renditions reference the same data URL and
// clients scale to these sizes.
const (
	FullsizeDim  = 1024
	ThumbnailDim = 512
)

// Rendition describes one sized representation of a generated image.
// URL is a base64 data URL embedding the image bytes.
type Rendition struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
}

// ImageResult is a generated artifact: a full-size and a thumbnail
// rendition sharing one data URL, labelled with the originating prompt.
type ImageResult struct {
	Label     string    `json:"label"`
	Fullsize  Rendition `json:"fullsize"`
	Thumbnail Rendition `json:"thumbnail"`
}

// NewImageResult builds an ImageResult for the given prompt and data URL,
// applying the fixed rendition dimensions.
// Returns an error if the data URL is empty.
func NewImageResult(prompt, dataURL string) (*ImageResult, error) {
	if dataURL == "" {
		return nil, ErrEmptyImageData
	}

	return &ImageResult{
		Label: prompt,
		Fullsize: Rendition{
			Width:  FullsizeDim,
			Height: FullsizeDim,
			URL:    dataURL,
		},
		Thumbnail: Rendition{
			Width:  ThumbnailDim,
			Height: ThumbnailDim,
			URL:    dataURL,
		},
	}, nil
}
