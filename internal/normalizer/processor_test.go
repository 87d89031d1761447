package normalizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ritdining/internal/models"
)

func TestNewProcessor(t *testing.T) {
	p := NewProcessor(Options{})
	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "gracies", Slug("key", models.Record{"slug": "gracies"}))
	assert.Equal(t, "key", Slug("key", models.Record{"slug": ""}))
	assert.Equal(t, "key", Slug("key", models.Record{}))
}

func TestProcessor_Process_EndToEnd(t *testing.T) {
	root := t.TempDir()
	writeMedia(t, root, "media/crossroads/logo.png")

	p := NewProcessor(Options{AssetRoot: root})

	rec := models.Record{
		"name":            "Crossroads",
		"local_logo_path": "media/crossroads/logo.png",
	}

	r, err := p.Process("crossroads", rec, PageContext{MediaPrefix: "../", SitePrefix: "../"})
	require.NoError(t, err)

	assert.Equal(t, "crossroads", r.Slug)
	assert.Equal(t, "../media/crossroads/logo.png", r.Logo.Src)
	assert.True(t, r.Banner.Placeholder)
	assert.Contains(t, decodePlaceholder(t, r.Banner.Src), "No banner available")
	assert.Contains(t, decodePlaceholder(t, r.LogoPlaceholder), "No logo")

	require.Len(t, r.Hours, 7)
	for _, d := range r.Hours {
		assert.True(t, d.Absent(), "%s should be absent", d.Day)
	}

	assert.Equal(t, map[string]any{}, r.PaymentMethods)
	assert.Equal(t, []string{}, r.Tags)
	assert.Empty(t, r.Reviews)
	assert.Empty(t, r.OfficialURL)
	assert.Empty(t, r.OrderURL)
	assert.False(t, r.CreatedAt.Valid)
}

func TestProcessor_Process_FullRecord(t *testing.T) {
	p := NewProcessor(Options{
		AssetRoot: t.TempDir(),
		Reviews: map[string]any{
			"brick-city": []any{
				map[string]any{"date": "2024-01-01", "rating": 4.0},
				map[string]any{"date": "2024-06-01", "rating": 5.0},
			},
		},
	})

	rec := models.Record{
		"name":               "Brick City Cafe",
		"slug":               "brick-city",
		"description":        "Coffee and bagels",
		"remote_logo_url":    "https://cdn.example.com/logo.png",
		"created_at":         "2024-02-03T04:05:06Z",
		"hours":              map[string]any{"everyday": "24/7"},
		"payment_methods":    []any{"cash", "card"},
		"tags":               "coffee, breakfast",
		"website_slug":       "brick-city-cafe",
		"online_ordering_id": "77",
	}

	r, err := p.Process("bcc", rec, PageContext{})
	require.NoError(t, err)

	assert.Equal(t, "brick-city", r.Slug)
	assert.Equal(t, "bcc", r.Key)
	assert.Equal(t, "https://cdn.example.com/logo.png", r.Logo.Src)
	assert.Equal(t, models.OpenAllDayLabel, r.Hours.Get("sunday").Value)
	assert.Equal(t, map[string]any{"cash": true, "card": true}, r.PaymentMethods)
	assert.Equal(t, []string{"coffee", "breakfast"}, r.Tags)
	assert.Equal(t, "https://www.rit.edu/dining/location/brick-city-cafe", r.OfficialURL)
	assert.Equal(t, "https://ondemand.rit.edu/menu/77", r.OrderURL)
	assert.True(t, r.CreatedAt.Valid)
	require.Len(t, r.Reviews, 2)
	assert.Equal(t, "2024-06-01", r.Reviews[0].Field("date"))
}

func TestProcessor_Process_LargeNumbers(t *testing.T) {
	p := NewProcessor(Options{})

	rec := models.Record{
		"online_ordering_id": 1234567.0,
		"website_slug":       20000000.0,
		"payment_methods":    []any{1000000.0},
		"slug":               7654321.0,
	}

	r, err := p.Process("numeric", rec, PageContext{})
	require.NoError(t, err)

	assert.Equal(t, "7654321", r.Slug)
	assert.Equal(t, "https://ondemand.rit.edu/menu/1234567", r.OrderURL)
	assert.Equal(t, "https://www.rit.edu/dining/location/20000000", r.OfficialURL)
	assert.Equal(t, map[string]any{"1000000": true}, r.PaymentMethods)
}

func TestProcessor_Process_NilRecord(t *testing.T) {
	p := NewProcessor(Options{AssetRoot: t.TempDir()})

	r, err := p.Process("empty", nil, PageContext{})
	require.NoError(t, err)
	assert.Equal(t, "empty", r.Slug)
	assert.Len(t, r.Hours, 7)
}

func TestProcessor_Process_RecoversPerItem(t *testing.T) {
	p := NewProcessor(Options{AssetRoot: t.TempDir()})
	p.images.exists = func(string) bool { panic("disk on fire") }

	r, err := p.Process("bad", models.Record{"local_logo_path": "media/x.png"}, PageContext{})
	assert.Nil(t, r)
	assert.True(t, errors.Is(err, ErrItemFailed))
	assert.Contains(t, err.Error(), "bad")
}

func TestBuildCard(t *testing.T) {
	r := &models.Restaurant{Slug: "s", Description: "A very long description of food", Logo: models.Image{Src: "../media/l.png"}}

	card := BuildCard(r, 0)
	assert.Equal(t, models.Card{Name: "Unnamed", Description: r.Description, Slug: "s", Logo: "../media/l.png"}, card)

	card = BuildCard(r, 10)
	assert.Equal(t, "A very ...", card.Description)

	r.Name = "Gracie's"
	r.Description = "短い説明です"
	assert.Equal(t, "Gracie's", BuildCard(r, 0).Name)
	assert.Equal(t, "短...", BuildCard(r, 6).Description)
	assert.Equal(t, "短い説明です", BuildCard(r, 12).Description)
}
