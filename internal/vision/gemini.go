package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/redmonkez12/wardrobe-api/internal/closet"
)

const processPrompt = `Remove the background from this clothing photo and return a clean product image of the garment alone, centered on a plain white background. Keep the garment's colors, shape and details unchanged.`

// Gemini implements Model on the Gemini API
type Gemini struct {
	client        *genai.Client
	analysisModel string
	imageModel    string
}

type GeminiOption func(*genai.ClientConfig)

// WithBaseURL points the client at another endpoint, such as a test server
func WithBaseURL(url string) GeminiOption {
	return func(c *genai.ClientConfig) { c.HTTPOptions.BaseURL = url }
}

// NewGemini builds the client. An empty apiKey is accepted so the server can
// boot; every call then fails with ErrMissingAPIKey.
func NewGemini(ctx context.Context, apiKey, analysisModel, imageModel string, opts ...GeminiOption) (*Gemini, error) {
	g := &Gemini{analysisModel: analysisModel, imageModel: imageModel}
	if apiKey == "" {
		return g, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	g.client = client

	return g, nil
}

func analysisPrompt() string {
	return fmt.Sprintf(`You are a fashion expert. Analyze the clothing item in this photo and describe it.
Pick the category from: %s.
Give the dominant color, the brand if a logo or label is visible (otherwise "Unknown"), a short descriptive name, the pattern and the overall style.
List the seasons and occasions it suits, and two or three short styling tips.`, strings.Join(closet.Categories, ", "))
}

func analysisSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	list := &genai.Schema{Type: genai.TypeArray, Items: str}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category":     {Type: genai.TypeString, Enum: closet.Categories},
			"color":        str,
			"brand":        str,
			"name":         str,
			"pattern":      str,
			"style":        str,
			"season":       list,
			"occasion":     list,
			"styling_tips": list,
		},
		Required: []string{"category", "color", "brand", "name", "pattern", "style", "season", "occasion", "styling_tips"},
	}
}

func imageContents(img Image, prompt string) []*genai.Content {
	return []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(img.Data, img.MIMEType),
		}, genai.RoleUser),
	}
}

func (g *Gemini) AnalyzeClothing(ctx context.Context, img Image) (*Analysis, error) {
	if g.client == nil {
		return nil, ErrMissingAPIKey
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.analysisModel, imageContents(img, analysisPrompt()), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("GenAI analyze failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}

	return &analysis, nil
}

func (g *Gemini) ProcessClothingImage(ctx context.Context, img Image) (Image, error) {
	if g.client == nil {
		return Image{}, ErrMissingAPIKey
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.imageModel, imageContents(img, processPrompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	})
	if err != nil {
		return Image{}, fmt.Errorf("GenAI image edit failed: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return Image{MIMEType: part.InlineData.MIMEType, Data: part.InlineData.Data}, nil
			}
		}
	}

	return Image{}, ErrNoImage
}
