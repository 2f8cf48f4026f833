package domain

import "strings"

// Item is one catalog entry. Items are loaded once at startup and never
// mutated afterwards; carts and purchases hold references, not copies.
type Item struct {
	Department  string   `json:"department"`
	Name        string   `json:"name"`
	PriceCents  int64    `json:"priceCents"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
}

// Key returns the item's identity string: "brand name", collapsed to the
// bare name when the name already contains the brand (case-insensitive).
func (i Item) Key() string {
	if i.Brand == "" {
		return i.Name
	}
	if strings.Contains(strings.ToLower(i.Name), strings.ToLower(i.Brand)) {
		return i.Name
	}
	return i.Brand + " " + i.Name
}
