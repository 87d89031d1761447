package normalizer

import (
	"strings"

	"ritdining/internal/models"
	"ritdining/pkg/utils"
)

// Wildcard hours keys.
const (
	keyWeekdays = "weekdays"
	keyWeekends = "weekends"
	keyEveryday = "everyday"
)

// alwaysOpen holds the lowercased spellings that mean a day never closes.
var alwaysOpen = map[string]bool{
	"24/7":          true,
	"24-7":          true,
	"247":           true,
	"24h":           true,
	"24 hours":      true,
	"open 24/7":     true,
	"open 24 hours": true,
	"always":        true,
	"all day":       true,
}

// midnightToMidnight is the full-day range with every space removed, so that
// "12:00 am - 11:59 pm" and its variants match too.
const midnightToMidnight = "12:00am-11:59pm"

// IsAlwaysOpen reports whether s is one of the always-open spellings.
func IsAlwaysOpen(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	if alwaysOpen[v] {
		return true
	}

	return strings.Join(strings.Fields(v), "") == midnightToMidnight
}

// NormalizeInterval trims one interval description and maps the always-open
// spellings to models.OpenAllDayLabel.
func NormalizeInterval(s string) string {
	if IsAlwaysOpen(s) {
		return models.OpenAllDayLabel
	}

	return utils.NormalizeWhitespace(s)
}

// ExpandHours expands a raw hours object into one entry per weekday.
//
// For each day the first present key wins: the day itself, then weekdays or
// weekends, then everyday. A present key holding null closes the day even when
// a wildcard would have applied. Days matched by no key stay absent.
func ExpandHours(raw any) models.Hours {
	var src map[string]any

	switch h := raw.(type) {
	case map[string]any:
		src = h
	case models.Record:
		src = h
	}

	hours := make(models.Hours, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		hours = append(hours, expandDay(day, src))
	}

	return hours
}

func expandDay(day string, src map[string]any) models.DayHours {
	wildcard := keyWeekdays
	if day == "saturday" || day == "sunday" {
		wildcard = keyWeekends
	}

	for _, key := range []string{day, wildcard, keyEveryday} {
		v, ok := src[key]
		if !ok {
			continue
		}

		return normalizeDay(day, v)
	}

	return models.DayHours{Day: day}
}

func normalizeDay(day string, v any) models.DayHours {
	d := models.DayHours{Day: day, Set: true}

	switch val := v.(type) {
	case nil:
		return d
	case string:
		d.Value = NormalizeInterval(val)
	case []any:
		intervals := make([]string, 0, len(val))

		for _, entry := range val {
			s := NormalizeInterval(models.Scalar(entry))
			if s == "" {
				continue
			}

			if s == models.OpenAllDayLabel {
				return models.DayHours{Day: day, Set: true, Value: models.OpenAllDayLabel}
			}

			intervals = append(intervals, s)
		}

		if len(intervals) > 0 {
			d.Intervals = intervals
		}
	case float64, bool:
		d.Value = NormalizeInterval(models.Scalar(val))
	default:
		// Nested objects carry no usable hours; treat the day as unknown.
		return models.DayHours{Day: day}
	}

	return d
}
