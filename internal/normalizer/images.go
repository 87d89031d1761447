package normalizer

import (
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"path/filepath"

	"ritdining/internal/models"
	"ritdining/pkg/utils"
)

// Image field pairs: local path first, remote URL second.
var (
	LogoFields   = FieldPair{Local: "local_logo_path", Remote: "remote_logo_url"}
	BannerFields = FieldPair{Local: "local_banner_path", Remote: "remote_banner_url"}
)

// Default placeholders.
var (
	BannerPlaceholder = &Placeholder{Width: 1200, Height: 300, Caption: "No banner available"}
	LogoPlaceholder   = &Placeholder{Width: 200, Height: 200, Caption: "No logo"}
)

// FieldPair names the local and remote fields of one image.
type FieldPair struct {
	Local  string
	Remote string
}

// Placeholder is a generated stand-in image.
type Placeholder struct {
	Width   int
	Height  int
	Caption string
}

// DataURI renders the placeholder as an inline SVG data URI.
func (p *Placeholder) DataURI() string {
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<rect width="100%%" height="100%%" fill="#e9ecef"/>`+
			`<text x="50%%" y="50%%" dominant-baseline="middle" text-anchor="middle" `+
			`font-family="sans-serif" font-size="%d" fill="#6c757d">%s</text></svg>`,
		p.Width, p.Height, p.Width, p.Height, p.fontSize(), html.EscapeString(p.Caption),
	)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

func (p *Placeholder) fontSize() int {
	size := min(p.Width, p.Height) / 8
	if size < 10 {
		return 10
	}

	return size
}

// ImageResolver picks and checks image references.
type ImageResolver struct {
	root   string
	exists func(path string) bool
}

// NewImageResolver returns a resolver that checks local paths under root.
func NewImageResolver(root string) *ImageResolver {
	return &ImageResolver{root: root, exists: fileExists}
}

// Resolve picks the image for pair from rec.
//
// A non-empty local value beats the remote one. Remote references are
// returned untouched. Local references must exist under the resolver root and
// are returned with prefix prepended; a missing file yields the placeholder,
// or an empty Image when ph is nil.
func (r *ImageResolver) Resolve(rec models.Record, pair FieldPair, prefix string, ph *Placeholder) models.Image {
	ref := ChooseImage(rec, pair)

	switch {
	case ref == "":
	case utils.IsRemote(ref):
		return models.Image{Src: ref, Remote: true}
	case r.exists(filepath.Join(r.root, filepath.FromSlash(ref))):
		return models.Image{Src: prefix + ref}
	}

	if ph == nil {
		return models.Image{}
	}

	return models.Image{Src: ph.DataURI(), Placeholder: true}
}

// ChooseImage returns the preferred raw reference for pair without any checks.
func ChooseImage(rec models.Record, pair FieldPair) string {
	if local := rec.String(pair.Local); local != "" {
		return local
	}

	return rec.String(pair.Remote)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
