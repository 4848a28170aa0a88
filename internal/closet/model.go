// Package closet manages the clothing items a user has saved.
package closet

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound    = errors.New("closet item not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNameRequired    = errors.New("item name is required")
)

// Categories is the fixed set an item may be filed under
var Categories = []string{
	"tops",
	"bottoms",
	"dresses",
	"outerwear",
	"shoes",
	"accessories",
	"bags",
	"activewear",
}

func ValidCategory(c string) bool {
	return slices.Contains(Categories, c)
}

type Item struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Color     string    `json:"color"`
	Brand     string    `json:"brand"`
	Pattern   string    `json:"pattern"`
	Style     string    `json:"style"`
	Seasons   []string  `json:"seasons"`
	Occasions []string  `json:"occasions"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemInput mirrors the fields of a clothing analysis so a client can save
// one directly
type ItemInput struct {
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Color     string   `json:"color"`
	Brand     string   `json:"brand"`
	Pattern   string   `json:"pattern"`
	Style     string   `json:"style"`
	Seasons   []string `json:"seasons"`
	Occasions []string `json:"occasions"`
	ImageURL  string   `json:"image_url"`
}
