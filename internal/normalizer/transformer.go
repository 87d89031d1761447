package normalizer

import (
	"fmt"
	"strings"
	"time"

	"ritdining/internal/models"
	"ritdining/pkg/utils"
)

// Default external link templates.
const (
	DefaultWebsiteTemplate  = "https://www.rit.edu/dining/location/{slug}"
	DefaultOrderingTemplate = "https://ondemand.rit.edu/menu/{id}"
)

// dateLayouts are the ISO-8601 forms accepted for created_at, updated_at and review dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Transformer derives the scalar fields of the view model.
type Transformer struct {
	websiteTemplate  string
	orderingTemplate string
}

// NewTransformer creates a transformer with the given link templates. Empty
// templates fall back to the defaults.
func NewTransformer(websiteTemplate, orderingTemplate string) *Transformer {
	if websiteTemplate == "" {
		websiteTemplate = DefaultWebsiteTemplate
	}

	if orderingTemplate == "" {
		orderingTemplate = DefaultOrderingTemplate
	}

	return &Transformer{
		websiteTemplate:  websiteTemplate,
		orderingTemplate: orderingTemplate,
	}
}

// OfficialURL returns website_url, then website, then the website_slug link, or "".
func (t *Transformer) OfficialURL(rec models.Record) string {
	if u := rec.String("website_url"); u != "" {
		return u
	}

	if u := rec.String("website"); u != "" {
		return u
	}

	if slug := rec.Text("website_slug"); slug != "" {
		return utils.Expand(t.websiteTemplate, "slug", slug)
	}

	return ""
}

// OrderURL returns the online ordering link when online_ordering_id is set.
func (t *Transformer) OrderURL(rec models.Record) string {
	id := rec.Text("online_ordering_id")
	if id == "" {
		return ""
	}

	return utils.Expand(t.orderingTemplate, "id", id)
}

// NormalizePaymentMethods turns a list of names into a name->true mapping,
// passes a mapping through and maps anything else to an empty mapping.
func NormalizePaymentMethods(raw any) map[string]any {
	switch v := raw.(type) {
	case map[string]any:
		return v
	case models.Record:
		return v
	case []any:
		methods := make(map[string]any, len(v))
		for _, m := range v {
			if m == nil {
				continue
			}

			name := models.Scalar(m)
			if name == "" {
				// Nested values have no scalar form.
				name = fmt.Sprint(m)
			}

			methods[name] = true
		}

		return methods
	default:
		return map[string]any{}
	}
}

// NormalizeTags splits a comma separated string, passes a list through and
// maps anything else to an empty list.
func NormalizeTags(raw any) []string {
	switch v := raw.(type) {
	case string:
		return utils.SplitList(v)
	case []string:
		return v
	case []any:
		tags := make([]string, 0, len(v))
		for _, tag := range v {
			if s, ok := tag.(string); ok {
				tags = append(tags, s)
			} else if text := models.Scalar(tag); text != "" {
				tags = append(tags, text)
			}
		}

		return tags
	default:
		return []string{}
	}
}

// ParseDate parses an ISO-8601 value. Anything that is not a parsable string
// yields an invalid Date. Values without a zone are read as UTC.
func ParseDate(raw any) models.Date {
	s, ok := raw.(string)
	if !ok {
		return models.Date{}
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return models.Date{}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.Date{Time: t, Valid: true}
		}
	}

	return models.Date{}
}
