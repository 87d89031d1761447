// Package site runs the compile pipeline: load, validate, normalize, render, write.
package site

import (
	"errors"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"

	"ritdining/internal/config"
	"ritdining/internal/loader"
	"ritdining/internal/logger"
	"ritdining/internal/models"
	"ritdining/internal/normalizer"
	"ritdining/internal/render"
	"ritdining/internal/validator"
)

// HomepageKey is the source key used for the homepage record.
const HomepageKey = "index"

// Build errors.
var (
	ErrValidationFailed = errors.New("data validation failed")
	ErrDuplicateSlug    = errors.New("slug already written")
)

// PageResult describes one written restaurant page.
type PageResult struct {
	Key      string
	Slug     string
	Name     string
	Path     string
	OpenDays int
	Reviews  int
}

// Report summarizes a build.
type Report struct {
	Pages       []PageResult
	Skipped     []string
	IndexPath   string
	HomePath    string
	MediaCopied int
	Validation  *validator.ValidationResult
}

// Builder compiles the site described by a configuration.
type Builder struct {
	cfg *config.Config
	log *logger.Logger
}

// NewBuilder creates a builder.
func NewBuilder(cfg *config.Config, log *logger.Logger) *Builder {
	return &Builder{cfg: cfg, log: log}
}

// Build runs the whole pipeline once. Problems with a single restaurant are
// logged and the restaurant is skipped; only configuration, primary data and
// output errors abort the build.
func (b *Builder) Build() (*Report, error) {
	cfg := b.cfg

	entries, err := loader.LoadRestaurants(cfg.Sources.Restaurants)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurants: %w", err)
	}

	b.log.Info("Loaded restaurants", "path", cfg.Sources.Restaurants, "count", len(entries))

	reviews := b.loadReviews()

	report := &Report{}

	report.Validation = b.validate(entries, reviews)
	if cfg.Validation.Strict && !report.Validation.IsValid {
		return report, fmt.Errorf("%w: %s", ErrValidationFailed, report.Validation)
	}

	if err := os.MkdirAll(cfg.ItemsPath(), 0755); err != nil {
		return report, fmt.Errorf("failed to create output directory: %w", err)
	}

	report.MediaCopied, err = b.copyMedia()
	if err != nil {
		return report, err
	}

	renderer, err := render.New(cfg.Templates.Dir, cfg.Templates.Skeleton, cfg.Templates.Restaurant)
	if err != nil {
		return report, err
	}

	processor := normalizer.NewProcessor(normalizer.Options{
		AssetRoot:        cfg.Output.MediaRoot,
		WebsiteTemplate:  cfg.URLs.Website,
		OrderingTemplate: cfg.URLs.Ordering,
		Reviews:          reviews,
	})

	writer := NewWriter(cfg.Output.Root, cfg.Output.SignPages)

	itemsPage := normalizer.PageContext{
		MediaPrefix: normalizer.RelPrefix(cfg.ItemsPath(), cfg.Output.MediaRoot),
		SitePrefix:  normalizer.RelPrefix(cfg.ItemsPath(), cfg.Output.Root),
	}

	cards := make([]models.Card, 0, len(entries))
	written := map[string]string{}

	for _, entry := range entries {
		item, err := b.buildItem(entry, processor, renderer, writer, itemsPage, report.Validation, written)
		if err != nil {
			var fatal *writeError
			if errors.As(err, &fatal) {
				return report, fatal.err
			}

			b.log.Warn("Skipping restaurant", "key", entry.Key, "error", err)
			report.Skipped = append(report.Skipped, entry.Key)

			continue
		}

		report.Pages = append(report.Pages, item.result)
		cards = append(cards, normalizer.BuildCard(item.restaurant, cfg.Index.DescriptionWidth))
	}

	report.IndexPath, err = b.buildIndex(cards, renderer, writer, itemsPage)
	if err != nil {
		return report, err
	}

	report.HomePath, err = b.buildHomepage(processor, renderer, writer)
	if err != nil {
		return report, err
	}

	return report, nil
}

type builtItem struct {
	restaurant *models.Restaurant
	result     PageResult
}

// writeError marks failures that must abort the build.
type writeError struct{ err error }

func (e *writeError) Error() string { return e.err.Error() }

func (b *Builder) buildItem(
	entry models.Entry,
	processor *normalizer.Processor,
	renderer *render.Renderer,
	writer *Writer,
	page normalizer.PageContext,
	validation *validator.ValidationResult,
	written map[string]string,
) (*builtItem, error) {
	if entry.Err != nil {
		return nil, entry.Err
	}

	r, err := processor.Process(entry.Key, entry.Record, page)
	if err != nil {
		return nil, err
	}

	if err := validator.ValidateSlug(r.Slug); err != nil {
		return nil, err
	}

	// The first entry with a slug keeps the page.
	if owner, dup := written[r.Slug]; dup {
		return nil, fmt.Errorf("%w: %q by %q", ErrDuplicateSlug, r.Slug, owner)
	}

	banner, err := renderer.Banner(r.Banner, r.Name)
	if err != nil {
		return nil, err
	}

	html, err := renderer.Render(render.RestaurantTemplate, PageData(r, r.Name, banner, b.cfg.Output.ItemsDir))
	if err != nil {
		return nil, err
	}

	rel := path.Join(filepath.ToSlash(b.cfg.Output.ItemsDir), r.Slug+".html")

	file, err := writer.Write(rel, html, validation.ItemValid(entry.Key))
	if err != nil {
		return nil, &writeError{err}
	}

	written[r.Slug] = entry.Key

	b.log.Info("Wrote", "file", file)

	return &builtItem{
		restaurant: r,
		result: PageResult{
			Key:      entry.Key,
			Slug:     r.Slug,
			Name:     r.Name,
			Path:     file,
			OpenDays: r.Hours.OpenDays(),
			Reviews:  len(r.Reviews),
		},
	}, nil
}

func (b *Builder) buildIndex(cards []models.Card, renderer *render.Renderer, writer *Writer, page normalizer.PageContext) (string, error) {
	extra, err := renderer.Cards(cards)
	if err != nil {
		return "", err
	}

	item := &models.Restaurant{
		Name:        b.cfg.Index.Name,
		Description: b.cfg.Index.Description,
		Hours:       normalizer.ExpandHours(nil),
		MediaPrefix: page.MediaPrefix,
		SitePrefix:  page.SitePrefix,
	}

	data := PageData(item, b.cfg.Index.Title, "", b.cfg.Output.ItemsDir)
	data.ExtraContent = extra

	html, err := renderer.Render(render.SkeletonTemplate, data)
	if err != nil {
		return "", err
	}

	rel := path.Join(filepath.ToSlash(b.cfg.Output.ItemsDir), "index.html")

	file, err := writer.Write(rel, html, true)
	if err != nil {
		return "", err
	}

	b.log.Info("Wrote", "file", file, "cards", len(cards))

	return file, nil
}

func (b *Builder) buildHomepage(processor *normalizer.Processor, renderer *render.Renderer, writer *Writer) (string, error) {
	src := b.cfg.Sources.Homepage
	if !loader.Exists(src) {
		b.log.Info("No homepage file found; skipping homepage generation", "path", src)

		return "", nil
	}

	rec, err := loader.LoadHomepage(src)
	if err != nil {
		b.log.Warn("Skipping homepage", "error", err)

		return "", nil
	}

	page := normalizer.PageContext{
		MediaPrefix: normalizer.RelPrefix(b.cfg.Output.Root, b.cfg.Output.MediaRoot),
		SitePrefix:  "",
	}

	home, err := processor.Process(HomepageKey, rec, page)
	if err != nil {
		b.log.Warn("Skipping homepage", "error", err)

		return "", nil
	}

	title := rec.Text("title")
	if title == "" {
		title = home.Name
	}

	banner, err := renderer.Banner(home.Banner, home.Name)
	if err != nil {
		return "", err
	}

	data := PageData(home, title, banner, b.cfg.Output.ItemsDir)
	// extra_content is authored markup from the data file.
	data.ExtraContent = template.HTML(rec.Text("extra_content"))

	html, err := renderer.Render(render.SkeletonTemplate, data)
	if err != nil {
		return "", err
	}

	file, err := writer.Write("index.html", html, true)
	if err != nil {
		return "", err
	}

	b.log.Info("Wrote", "file", file)

	return file, nil
}

func (b *Builder) loadReviews() map[string]any {
	src := b.cfg.Sources.Reviews
	if !loader.Exists(src) {
		b.log.Debug("No reviews file found", "path", src)

		return map[string]any{}
	}

	reviews, err := loader.LoadReviews(src)
	if err != nil {
		b.log.Warn("Ignoring reviews file", "error", err)

		return map[string]any{}
	}

	return reviews
}

func (b *Builder) validate(entries []models.Entry, reviews map[string]any) *validator.ValidationResult {
	v := validator.NewDataValidator(b.cfg)

	result := v.ValidateRestaurants(entries)
	v.ValidateReviews(result, entries, reviews)

	for _, e := range result.Errors {
		b.log.Warn("Invalid data", "key", e.Key, "field", e.Field, "value", e.Value, "error", e.Message)
	}

	for _, w := range result.Warnings {
		b.log.Warn(w)
	}

	return result
}

func (b *Builder) copyMedia() (int, error) {
	src := b.cfg.Sources.MediaDir
	if !b.cfg.ShouldCopyMedia() || src == "" {
		return 0, nil
	}

	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		b.log.Debug("No media directory to copy", "path", src)

		return 0, nil
	}

	dst := filepath.Join(b.cfg.Output.MediaRoot, strings.TrimSuffix(b.cfg.Validation.MediaPrefix, "/"))

	if samePath(src, dst) {
		return 0, nil
	}

	n, err := CopyDir(src, dst)
	if err != nil {
		return n, err
	}

	b.log.Info("Copied media", "from", src, "to", dst, "files", n)

	return n, nil
}

// PageData assembles the template inputs for item r.
func PageData(r *models.Restaurant, title string, banner template.HTML, itemsDir string) render.PageData {
	if title == "" {
		title = r.Slug
	}

	return render.PageData{
		Item:            r,
		PageTitle:       title,
		BannerHTML:      banner,
		LogoURL:         template.URL(r.Logo.Src),
		MediaPrefix:     r.MediaPrefix,
		SitePrefix:      r.SitePrefix,
		ItemsDir:        filepath.ToSlash(itemsDir),
		OrderURL:        r.OrderURL,
		OfficialURL:     r.OfficialURL,
		Reviews:         r.Reviews,
		LogoPlaceholder: template.URL(r.LogoPlaceholder),
	}
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)

	return errA == nil && errB == nil && absA == absB
}
