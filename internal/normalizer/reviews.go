package normalizer

import (
	"slices"

	"ritdining/internal/models"
)

// AttachReviews returns the reviews filed under slug, or under key when slug
// has none, newest first. Reviews without a parsable date sort last. A value
// that is not a list yields no reviews and entries that are not objects are
// skipped.
func AttachReviews(all map[string]any, slug, key string) []models.Review {
	raw, ok := all[slug]
	if !ok && key != slug {
		raw, ok = all[key]
	}

	if !ok {
		return []models.Review{}
	}

	list, ok := raw.([]any)
	if !ok {
		return []models.Review{}
	}

	reviews := make([]models.Review, 0, len(list))

	for _, entry := range list {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		date := ParseDate(fields["date"])
		reviews = append(reviews, models.Review{
			Fields:    fields,
			Date:      date,
			Timestamp: date.UnixMilli(),
		})
	}

	SortReviews(reviews)

	return reviews
}

// SortReviews orders reviews by date, newest first, keeping input order for
// ties. Undated reviews compare as the earliest possible date.
func SortReviews(reviews []models.Review) {
	slices.SortStableFunc(reviews, func(a, b models.Review) int {
		switch {
		case a.Date.Valid && b.Date.Valid:
			return b.Date.Time.Compare(a.Date.Time)
		case a.Date.Valid:
			return -1
		case b.Date.Valid:
			return 1
		default:
			return 0
		}
	})
}
