package normalizer

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ritdining/internal/models"
)

func writeMedia(t *testing.T, root, rel string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("png"), 0644))
}

func decodePlaceholder(t *testing.T, src string) string {
	t.Helper()

	const prefix = "data:image/svg+xml;base64,"
	require.True(t, strings.HasPrefix(src, prefix), "not a data URI: %s", src)

	svg, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(src, prefix))
	require.NoError(t, err)

	return string(svg)
}

func TestImageResolver_Resolve(t *testing.T) {
	root := t.TempDir()
	writeMedia(t, root, "media/gracies/banner.jpg")

	r := NewImageResolver(root)

	t.Run("remote only", func(t *testing.T) {
		rec := models.Record{"remote_banner_url": "https://cdn.example.com/b.jpg"}

		img := r.Resolve(rec, BannerFields, "../", BannerPlaceholder)
		assert.Equal(t, "https://cdn.example.com/b.jpg", img.Src)
		assert.True(t, img.Remote)
	})

	t.Run("protocol relative is remote", func(t *testing.T) {
		rec := models.Record{"local_banner_path": "//cdn.example.com/b.jpg"}

		img := r.Resolve(rec, BannerFields, "../", BannerPlaceholder)
		assert.Equal(t, "//cdn.example.com/b.jpg", img.Src)
	})

	t.Run("missing local gives placeholder", func(t *testing.T) {
		rec := models.Record{"local_banner_path": "media/nope.jpg"}

		img := r.Resolve(rec, BannerFields, "../", BannerPlaceholder)
		assert.True(t, img.Placeholder)
		assert.Contains(t, decodePlaceholder(t, img.Src), "No banner available")
	})

	t.Run("missing local without placeholder is empty", func(t *testing.T) {
		rec := models.Record{"local_logo_path": "media/nope.png"}

		img := r.Resolve(rec, LogoFields, "../", nil)
		assert.True(t, img.Empty())
	})

	t.Run("existing local is prefixed", func(t *testing.T) {
		rec := models.Record{
			"local_banner_path": "media/gracies/banner.jpg",
			"remote_banner_url": "https://cdn.example.com/b.jpg",
		}

		img := r.Resolve(rec, BannerFields, "../", BannerPlaceholder)
		assert.Equal(t, "../media/gracies/banner.jpg", img.Src)
		assert.False(t, img.Remote)
		assert.False(t, img.Placeholder)
	})

	t.Run("missing local does not fall back to remote", func(t *testing.T) {
		rec := models.Record{
			"local_banner_path": "media/nope.jpg",
			"remote_banner_url": "https://cdn.example.com/b.jpg",
		}

		img := r.Resolve(rec, BannerFields, "", BannerPlaceholder)
		assert.True(t, img.Placeholder)
	})

	t.Run("nothing at all", func(t *testing.T) {
		img := r.Resolve(models.Record{}, BannerFields, "", BannerPlaceholder)
		assert.True(t, img.Placeholder)

		img = r.Resolve(models.Record{}, LogoFields, "", nil)
		assert.True(t, img.Empty())
	})

	t.Run("directory is not a file", func(t *testing.T) {
		rec := models.Record{"local_logo_path": "media/gracies"}

		assert.True(t, r.Resolve(rec, LogoFields, "", nil).Empty())
	})
}

func TestPlaceholder_DataURI(t *testing.T) {
	ph := &Placeholder{Width: 300, Height: 120, Caption: `Fish & <Chips>`}

	svg := decodePlaceholder(t, ph.DataURI())
	assert.Contains(t, svg, `width="300"`)
	assert.Contains(t, svg, `height="120"`)
	assert.Contains(t, svg, "Fish &amp; &lt;Chips&gt;")
}

func TestChooseImage(t *testing.T) {
	assert.Equal(t, "media/a.png", ChooseImage(models.Record{
		"local_logo_path": "media/a.png",
		"remote_logo_url": "https://x/b.png",
	}, LogoFields))
	assert.Equal(t, "https://x/b.png", ChooseImage(models.Record{
		"local_logo_path": "  ",
		"remote_logo_url": "https://x/b.png",
	}, LogoFields))
	assert.Empty(t, ChooseImage(models.Record{"local_logo_path": 3.0}, LogoFields))
}

func TestRelPrefix(t *testing.T) {
	tests := []struct {
		page, root, want string
	}{
		{filepath.Join("docs", "restaurants"), "docs", "../"},
		{"docs", "docs", ""},
		{"docs/", "docs", ""},
		{filepath.Join("docs", "a", "b"), "docs", "../../"},
		{"docs", filepath.Join("docs", "media"), "media/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RelPrefix(tt.page, tt.root), "RelPrefix(%q, %q)", tt.page, tt.root)
	}

	abs, err := filepath.Abs("docs")
	require.NoError(t, err)
	assert.Equal(t, "../", RelPrefix(filepath.Join(abs, "restaurants"), "docs"))
}
