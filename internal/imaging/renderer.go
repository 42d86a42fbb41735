// Package imaging renders the image prompts of a draft through an image
// generation service, a bounded number at a time, on a best-effort basis.
package imaging

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultModel is the image model used when none is configured.
const DefaultModel = "dall-e-3"

// Renderer turns one prompt into a hosted image URL.
type Renderer interface {
	Render(ctx context.Context, prompt string) (string, error)
}

// OpenAIRenderer renders images with the OpenAI images API or a compatible gateway.
type OpenAIRenderer struct {
	client openai.Client
	Model  string
}

// NewOpenAIRenderer creates a renderer. The SDK's automatic retries are
// disabled; a failed render is simply dropped.
func NewOpenAIRenderer(apiKey, baseURL, model string) (*OpenAIRenderer, error) {
	if apiKey == "" {
		return nil, errors.New("image api key missing")
	}
	if model == "" {
		model = DefaultModel
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIRenderer{client: openai.NewClient(opts...), Model: model}, nil
}

// Render implements Renderer. Models that only return base64 payloads are
// surfaced as data URIs.
func (r *OpenAIRenderer) Render(ctx context.Context, prompt string) (string, error) {
	params := openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(r.Model),
		N:      openai.Int(1),
	}
	if m := openai.ImageModel(r.Model); m == openai.ImageModelDallE2 || m == openai.ImageModelDallE3 {
		params.ResponseFormat = openai.ImageGenerateParamsResponseFormatURL
	}

	resp, err := r.client.Images.Generate(ctx, params)
	if err != nil {
		return "", &RenderError{Prompt: prompt, Message: "image service call failed", Cause: err}
	}
	if len(resp.Data) == 0 {
		return "", &RenderError{Prompt: prompt, Message: "image service returned no data"}
	}

	img := resp.Data[0]
	switch {
	case img.URL != "":
		return img.URL, nil
	case img.B64JSON != "":
		return "data:image/png;base64," + img.B64JSON, nil
	default:
		return "", &RenderError{Prompt: prompt, Message: "image service returned neither url nor payload"}
	}
}
