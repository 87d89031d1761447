package normalizer

import (
	"github.com/mattn/go-runewidth"

	"ritdining/internal/models"
)

// BuildCard reduces a restaurant to its index summary. When width is positive
// the description is cut to that many display cells.
func BuildCard(r *models.Restaurant, width int) models.Card {
	name := r.Name
	if name == "" {
		name = "Unnamed"
	}

	desc := r.Description
	if width > 0 && runewidth.StringWidth(desc) > width {
		desc = runewidth.Truncate(desc, width, "...")
	}

	return models.Card{
		Name:        name,
		Description: desc,
		Slug:        r.Slug,
		Logo:        r.Logo.Src,
	}
}
