package generation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/stemkit/kitbot/pkg/models"
)

const defaultImageModel = "imagen-3.0-generate-002"

// ImageClient generates images with Google's GenAI image models.
type ImageClient struct {
	client *genai.Client
	model  string
}

// NewImageClient creates an image client. The API key is required.
func NewImageClient(ctx context.Context, apiKey, model string) (*ImageClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = defaultImageModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &ImageClient{client: client, model: model}, nil
}

// GenerateImage returns the first image produced for prompt.
func (c *ImageClient) GenerateImage(ctx context.Context, prompt string) (*models.GeneratedImage, error) {
	resp, err := c.client.Models.GenerateImages(ctx, c.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("genai: generate images: %w", err)
	}
	for _, img := range resp.GeneratedImages {
		if img == nil || img.Image == nil || len(img.Image.ImageBytes) == 0 {
			continue
		}
		mime := img.Image.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		return &models.GeneratedImage{MIMEType: mime, Data: img.Image.ImageBytes}, nil
	}
	return nil, fmt.Errorf("genai: no image returned for model %s", c.model)
}

// EnhanceImagePrompt wraps a user prompt in child-safe framing for the given
// style. Unknown styles fall back to an illustration.
func EnhanceImagePrompt(prompt, style string) string {
	prompt = strings.TrimSpace(prompt)
	switch strings.ToLower(strings.TrimSpace(style)) {
	case models.ImageStyleWorksheet:
		return "A printable black-and-white activity worksheet for children aged 8 to 14 about: " + prompt +
			". Clean line art on a white background, large clear labels, space for writing answers, " +
			"no photographs, nothing scary or unsafe."
	default:
		return "A bright, friendly educational illustration for children aged 8 to 14 showing: " + prompt +
			". Simple shapes, soft colours, clearly drawn electronic parts where relevant, " +
			"no text overlays, nothing scary or unsafe."
	}
}
