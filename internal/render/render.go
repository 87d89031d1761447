// Package render turns view models into HTML through html/template.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"

	"ritdining/internal/models"
)

// Template names the renderer can execute.
const (
	SkeletonTemplate   = "skeleton"
	RestaurantTemplate = "restaurant"
)

// ErrUnknownTemplate is returned for a template name other than the two above.
var ErrUnknownTemplate = errors.New("unknown template")

//go:embed templates/*.html
var embedded embed.FS

// PageData is the fixed set of inputs every page template receives.
type PageData struct {
	Item            *models.Restaurant
	PageTitle       string
	BannerHTML      template.HTML
	LogoURL         template.URL
	ExtraContent    template.HTML
	MediaPrefix     string
	SitePrefix      string
	ItemsDir        string
	OrderURL        string
	OfficialURL     string
	Reviews         []models.Review
	LogoPlaceholder template.URL
}

// Renderer executes the page templates.
type Renderer struct {
	pages     map[string]*template.Template
	fragments *template.Template
}

// New loads skeleton and restaurant templates from dir. An empty dir selects
// the embedded templates.
func New(dir, skeleton, restaurant string) (*Renderer, error) {
	var fsys fs.FS

	if dir == "" {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded templates: %w", err)
		}

		fsys = sub
		skeleton, restaurant = "skeleton.html", "restaurant.html"
	} else {
		fsys = os.DirFS(dir)
	}

	r := &Renderer{pages: map[string]*template.Template{}}

	for name, file := range map[string]string{SkeletonTemplate: skeleton, RestaurantTemplate: restaurant} {
		tpl, err := template.New(path.Base(file)).ParseFS(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to load template %s: %w", file, err)
		}

		r.pages[name] = tpl
	}

	fragments, err := template.ParseFS(embedded, "templates/fragments.html")
	if err != nil {
		return nil, fmt.Errorf("failed to load fragments: %w", err)
	}

	r.fragments = fragments

	return r, nil
}

// Render executes the named template with data.
func (r *Renderer) Render(name string, data PageData) (string, error) {
	tpl, ok := r.pages[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}

	return buf.String(), nil
}

// Banner returns the banner markup for img, or "" when there is no image.
func (r *Renderer) Banner(img models.Image, name string) (template.HTML, error) {
	if img.Empty() {
		return "", nil
	}

	data := struct {
		Src  template.URL
		Name string
	}{template.URL(img.Src), name}

	return r.fragment("banner", data)
}

// Cards returns the card grid for the index page.
func (r *Renderer) Cards(cards []models.Card) (template.HTML, error) {
	return r.fragment("cards", cards)
}

func (r *Renderer) fragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}

	// The fragment was produced by html/template and is already escaped.
	return template.HTML(buf.String()), nil
}
