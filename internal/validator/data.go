// Package validator checks the restaurant data files against the site conventions.
package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"ritdining/internal/config"
	"ritdining/internal/models"
	"ritdining/internal/normalizer"
	"ritdining/pkg/utils"
)

var hoursKeys = append(slices.Clone(models.Weekdays), "weekdays", "weekends", "everyday")

// ValidationError represents a validation error with context.
type ValidationError struct {
	Key     string
	Field   string
	Value   string
	Message string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
	Stats    ValidationStats
	IsValid  bool
	invalid  map[string]bool
}

// ValidationStats contains validation statistics.
type ValidationStats struct {
	TotalItems   int
	ValidItems   int
	InvalidItems int
	LocalAssets  int
	RemoteAssets int
	Reviews      int
}

// ItemValid reports whether the entry stored under key passed validation.
func (r *ValidationResult) ItemValid(key string) bool {
	return !r.invalid[key]
}

// DataValidator validates restaurant records.
type DataValidator struct {
	mediaPrefix string
	mediaDir    string
}

// NewDataValidator creates a validator. Local assets are looked up in the
// configured media directory with the media prefix removed, so media/x.png
// resolves to <media_dir>/x.png whatever the directory is called.
func NewDataValidator(cfg *config.Config) *DataValidator {
	dir := ""
	if cfg.Sources.MediaDir != "" {
		dir = filepath.Clean(cfg.Sources.MediaDir)
	}

	return &DataValidator{
		mediaPrefix: cfg.Validation.MediaPrefix,
		mediaDir:    dir,
	}
}

// sourcePath maps a media-prefixed asset reference into the media directory.
func (v *DataValidator) sourcePath(local string) string {
	return filepath.Join(v.mediaDir, filepath.FromSlash(strings.TrimPrefix(local, v.mediaPrefix)))
}

// ValidateRestaurants validates every entry and the slugs across entries.
func (v *DataValidator) ValidateRestaurants(entries []models.Entry) *ValidationResult {
	result := &ValidationResult{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []string{},
		invalid:  map[string]bool{},
	}

	seen := map[string]string{}

	for _, entry := range entries {
		result.Stats.TotalItems++

		var errs []ValidationError

		if entry.Err != nil {
			errs = append(errs, ValidationError{Key: entry.Key, Message: entry.Err.Error()})
		} else {
			errs = v.validateRecord(entry.Key, entry.Record, result)

			slug := normalizer.Slug(entry.Key, entry.Record)
			if other, dup := seen[slug]; dup {
				errs = append(errs, ValidationError{
					Key:     entry.Key,
					Field:   "slug",
					Value:   slug,
					Message: fmt.Sprintf("slug already used by %q", other),
				})
			} else {
				seen[slug] = entry.Key
			}
		}

		if len(errs) > 0 {
			result.IsValid = false
			result.Stats.InvalidItems++
			result.invalid[entry.Key] = true
			result.Errors = append(result.Errors, errs...)
		} else {
			result.Stats.ValidItems++
		}
	}

	return result
}

// ValidateReviews adds warnings for review lists that no entry will pick up
// and for values that are not lists.
func (v *DataValidator) ValidateReviews(result *ValidationResult, entries []models.Entry, reviews map[string]any) {
	owners := map[string]bool{}

	for _, entry := range entries {
		owners[entry.Key] = true
		if entry.Record != nil {
			owners[normalizer.Slug(entry.Key, entry.Record)] = true
		}
	}

	keys := make([]string, 0, len(reviews))
	for key := range reviews {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	for _, key := range keys {
		list, ok := reviews[key].([]any)
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("reviews[%s]: expected a list, got %T", key, reviews[key]))

			continue
		}

		result.Stats.Reviews += len(list)

		if !owners[key] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("reviews[%s]: no restaurant with this slug or key", key))
		}
	}
}

// ValidateSlug checks that slug is usable as a file name.
func ValidateSlug(slug string) error {
	switch {
	case slug == "":
		return ErrEmptySlug
	case slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`):
		return fmt.Errorf("%w: %q", ErrUnsafeSlug, slug)
	}

	return nil
}

func (v *DataValidator) validateRecord(key string, rec models.Record, result *ValidationResult) []ValidationError {
	var errs []ValidationError

	if err := ValidateSlug(normalizer.Slug(key, rec)); err != nil {
		errs = append(errs, ValidationError{Key: key, Field: "slug", Message: err.Error()})
	}

	for _, pair := range []normalizer.FieldPair{normalizer.LogoFields, normalizer.BannerFields} {
		errs = append(errs, v.validateImage(key, rec, pair, result)...)
	}

	for _, field := range []string{"website_url", "website"} {
		if u := rec.String(field); u != "" && !utils.IsValidURL(u) {
			errs = append(errs, ValidationError{Key: key, Field: field, Value: u, Message: "not an http(s) URL"})
		}
	}

	v.warnShapes(key, rec, result)

	return errs
}

func (v *DataValidator) validateImage(key string, rec models.Record, pair normalizer.FieldPair, result *ValidationResult) []ValidationError {
	var errs []ValidationError

	if local := rec.String(pair.Local); local != "" && !utils.IsRemote(local) {
		result.Stats.LocalAssets++

		if !strings.HasPrefix(local, v.mediaPrefix) {
			errs = append(errs, ValidationError{
				Key:     key,
				Field:   pair.Local,
				Value:   local,
				Message: fmt.Sprintf("local asset must live under %q", v.mediaPrefix),
			})
		} else if v.mediaDir != "" && !fileExists(v.sourcePath(local)) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s.%s: %s not found, a placeholder will be used", key, pair.Local, local))
		}
	}

	if remote := rec.String(pair.Remote); remote != "" {
		result.Stats.RemoteAssets++

		if !utils.IsValidURL(remote) {
			errs = append(errs, ValidationError{Key: key, Field: pair.Remote, Value: remote, Message: "not an http(s) URL"})
		}
	}

	return errs
}

func (v *DataValidator) warnShapes(key string, rec models.Record, result *ValidationResult) {
	if raw, ok := rec.Lookup("hours"); ok && raw != nil {
		hours, isMap := raw.(map[string]any)
		if !isMap {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s.hours: expected an object, got %T", key, raw))
		}

		names := make([]string, 0, len(hours))
		for name := range hours {
			names = append(names, name)
		}

		slices.Sort(names)

		for _, name := range names {
			if !slices.Contains(hoursKeys, name) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s.hours: unknown key %q is ignored", key, name))
			}
		}
	}

	switch raw := rec["payment_methods"].(type) {
	case nil, []any, map[string]any:
	default:
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s.payment_methods: expected a list or object, got %T", key, raw))
	}

	switch raw := rec["tags"].(type) {
	case nil, string, []any:
	default:
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s.tags: expected a string or list, got %T", key, raw))
	}

	for _, field := range []string{"created_at", "updated_at"} {
		if raw, ok := rec[field]; ok && raw != nil && !normalizer.ParseDate(raw).Valid {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s.%s: %v is not an ISO-8601 date", key, field, raw))
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

// String returns string representation of validation result.
func (r *ValidationResult) String() string {
	status := "✅ VALID"
	if !r.IsValid {
		status = "❌ INVALID"
	}

	return fmt.Sprintf(
		"%s | Total: %d | Valid: %d | Invalid: %d | Warnings: %d",
		status,
		r.Stats.TotalItems,
		r.Stats.ValidItems,
		r.Stats.InvalidItems,
		len(r.Warnings),
	)
}

// PrintErrors prints validation errors in readable format.
func (r *ValidationResult) PrintErrors() {
	if len(r.Errors) == 0 {
		return
	}

	fmt.Println("❌ Validation Errors:")

	for _, err := range r.Errors {
		if err.Field != "" {
			fmt.Printf("  %s [%s]: %s\n", err.Key, err.Field, err.Message)
		} else {
			fmt.Printf("  %s: %s\n", err.Key, err.Message)
		}

		if err.Value != "" {
			fmt.Printf("    Found: %q\n", err.Value)
		}
	}
}

// PrintWarnings prints validation warnings.
func (r *ValidationResult) PrintWarnings() {
	if len(r.Warnings) == 0 {
		return
	}

	fmt.Println("⚠️  Validation Warnings:")

	for _, warn := range r.Warnings {
		fmt.Printf("  %s\n", warn)
	}
}
