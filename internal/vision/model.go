package vision

import (
	"context"
	"errors"
)

var (
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not configured")
	ErrEmptyResponse = errors.New("model returned no content")
	ErrNoImage       = errors.New("model returned no image")
)

// Analysis describes one garment
type Analysis struct {
	Category    string   `json:"category"`
	Color       string   `json:"color"`
	Brand       string   `json:"brand"`
	Name        string   `json:"name"`
	Pattern     string   `json:"pattern"`
	Style       string   `json:"style"`
	Season      []string `json:"season"`
	Occasion    []string `json:"occasion"`
	StylingTips []string `json:"styling_tips"`
}

// Model is a multimodal backend. Each method makes exactly one upstream call.
type Model interface {
	AnalyzeClothing(ctx context.Context, img Image) (*Analysis, error)
	ProcessClothingImage(ctx context.Context, img Image) (Image, error)
}
