package validator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ritdining/internal/config"
	"ritdining/internal/models"
)

// Helper to create a config whose media dir lives in a temp directory.
func createTestConfig(t *testing.T) (*config.Config, string) {
	t.Helper()

	root := t.TempDir()
	cfg := config.Default()
	cfg.Sources.MediaDir = filepath.Join(root, "media")

	if err := os.MkdirAll(filepath.Join(root, "media", "gracies"), 0755); err != nil {
		t.Fatalf("Failed to create media dir: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "media", "gracies", "logo.png"), []byte("png"), 0644); err != nil {
		t.Fatalf("Failed to write logo: %v", err)
	}

	return cfg, root
}

func hasWarning(result *ValidationResult, substr string) bool {
	for _, w := range result.Warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}

	return false
}

func TestValidateRestaurants_Valid(t *testing.T) {
	cfg, _ := createTestConfig(t)
	v := NewDataValidator(cfg)

	entries := []models.Entry{
		{Key: "gracies", Record: models.Record{
			"name":              "Gracie's",
			"local_logo_path":   "media/gracies/logo.png",
			"remote_banner_url": "https://cdn.example.com/banner.jpg",
			"hours":             map[string]any{"weekdays": "7am-8pm"},
			"website_url":       "https://www.rit.edu/dining",
		}},
		{Key: "alpha", Record: models.Record{"name": "Alpha"}},
	}

	result := v.ValidateRestaurants(entries)
	if !result.IsValid {
		result.PrintErrors()
		t.Fatalf("expected valid result, got %s", result)
	}

	if result.Stats.ValidItems != 2 || result.Stats.LocalAssets != 1 || result.Stats.RemoteAssets != 1 {
		t.Errorf("Stats = %+v", result.Stats)
	}

	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestValidateRestaurants_MediaDirName(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Sources.MediaDir = filepath.Join(root, "data", "assets")

	if err := os.MkdirAll(filepath.Join(root, "data", "assets"), 0755); err != nil {
		t.Fatalf("Failed to create media dir: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "data", "assets", "brick.png"), []byte("png"), 0644); err != nil {
		t.Fatalf("Failed to write logo: %v", err)
	}

	v := NewDataValidator(cfg)
	result := v.ValidateRestaurants([]models.Entry{
		{Key: "brick", Record: models.Record{"local_logo_path": "media/brick.png"}},
		{Key: "ghost", Record: models.Record{"local_logo_path": "media/ghost.png"}},
	})

	if hasWarning(result, "media/brick.png") {
		t.Errorf("existing asset reported missing: %v", result.Warnings)
	}

	if !hasWarning(result, "media/ghost.png not found") {
		t.Errorf("missing asset not reported: %v", result.Warnings)
	}
}

func TestValidateRestaurants_Errors(t *testing.T) {
	cfg, _ := createTestConfig(t)
	v := NewDataValidator(cfg)

	tests := []struct {
		name  string
		entry models.Entry
		field string
	}{
		{"local outside media", models.Entry{Key: "a", Record: models.Record{"local_logo_path": "images/logo.png"}}, "local_logo_path"},
		{"bad remote", models.Entry{Key: "b", Record: models.Record{"remote_banner_url": "ftp://x/y.png"}}, "remote_banner_url"},
		{"bad website", models.Entry{Key: "c", Record: models.Record{"website": "www.example.com"}}, "website"},
		{"unsafe slug", models.Entry{Key: "d", Record: models.Record{"slug": "../etc"}}, "slug"},
		{"not an object", models.Entry{Key: "e", Err: errors.New("entry must be an object")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateRestaurants([]models.Entry{tt.entry})
			if result.IsValid {
				t.Fatal("expected invalid result")
			}

			if result.ItemValid(tt.entry.Key) {
				t.Errorf("ItemValid(%q) = true", tt.entry.Key)
			}

			if got := result.Errors[0].Field; got != tt.field {
				t.Errorf("error field = %q, want %q", got, tt.field)
			}
		})
	}
}

func TestValidateRestaurants_DuplicateSlug(t *testing.T) {
	cfg, _ := createTestConfig(t)
	v := NewDataValidator(cfg)

	result := v.ValidateRestaurants([]models.Entry{
		{Key: "one", Record: models.Record{"slug": "same"}},
		{Key: "same", Record: models.Record{}},
	})

	if result.IsValid {
		t.Fatal("duplicate slug should be invalid")
	}

	if !result.ItemValid("one") || result.ItemValid("same") {
		t.Error("only the second entry should be flagged")
	}
}

func TestValidateRestaurants_Warnings(t *testing.T) {
	cfg, _ := createTestConfig(t)
	v := NewDataValidator(cfg)

	result := v.ValidateRestaurants([]models.Entry{{Key: "w", Record: models.Record{
		"local_banner_path": "media/w/missing.jpg",
		"hours":             map[string]any{"mondays": "9-5"},
		"payment_methods":   "cash",
		"tags":              12.0,
		"created_at":        "last week",
	}}})

	if !result.IsValid {
		t.Fatalf("warnings must not invalidate: %v", result.Errors)
	}

	for _, want := range []string{"missing.jpg not found", `unknown key "mondays"`, "payment_methods", "tags", "created_at"} {
		if !hasWarning(result, want) {
			t.Errorf("missing warning containing %q in %v", want, result.Warnings)
		}
	}
}

func TestValidateReviews(t *testing.T) {
	cfg, _ := createTestConfig(t)
	v := NewDataValidator(cfg)

	entries := []models.Entry{{Key: "k", Record: models.Record{"slug": "gracies"}}}
	result := v.ValidateRestaurants(entries)

	v.ValidateReviews(result, entries, map[string]any{
		"gracies": []any{map[string]any{}},
		"k":       []any{},
		"ghost":   []any{map[string]any{}},
		"bad":     "text",
	})

	if result.Stats.Reviews != 2 {
		t.Errorf("Reviews = %d, want 2", result.Stats.Reviews)
	}

	if !hasWarning(result, "reviews[ghost]") || !hasWarning(result, "reviews[bad]") {
		t.Errorf("warnings = %v", result.Warnings)
	}

	if hasWarning(result, "reviews[gracies]") || hasWarning(result, "reviews[k]") {
		t.Errorf("owned reviews flagged: %v", result.Warnings)
	}
}

func TestValidateSlug(t *testing.T) {
	if err := ValidateSlug("gracies"); err != nil {
		t.Errorf("ValidateSlug(gracies) = %v", err)
	}

	if !errors.Is(ValidateSlug(""), ErrEmptySlug) {
		t.Error("empty slug should fail")
	}

	for _, bad := range []string{"..", "a/b", `a\b`} {
		if !errors.Is(ValidateSlug(bad), ErrUnsafeSlug) {
			t.Errorf("ValidateSlug(%q) should fail", bad)
		}
	}
}
