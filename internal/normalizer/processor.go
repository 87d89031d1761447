// Package normalizer turns loosely structured venue records into render-ready view models.
package normalizer

import (
	"errors"
	"fmt"

	"ritdining/internal/models"
)

// ErrItemFailed is returned when one record could not be normalized.
var ErrItemFailed = errors.New("item normalization failed")

// Options configures a Processor.
type Options struct {
	// AssetRoot is the directory local image paths are checked against.
	AssetRoot        string
	WebsiteTemplate  string
	OrderingTemplate string
	// Reviews maps a slug or source key to its list of review objects.
	Reviews map[string]any
}

// PageContext carries the per-page relative prefixes.
type PageContext struct {
	MediaPrefix string
	SitePrefix  string
}

// Processor normalizes records one at a time.
type Processor struct {
	images      *ImageResolver
	transformer *Transformer
	reviews     map[string]any
}

// NewProcessor creates a new processor instance.
func NewProcessor(opts Options) *Processor {
	reviews := opts.Reviews
	if reviews == nil {
		reviews = map[string]any{}
	}

	return &Processor{
		images:      NewImageResolver(opts.AssetRoot),
		transformer: NewTransformer(opts.WebsiteTemplate, opts.OrderingTemplate),
		reviews:     reviews,
	}
}

// Slug returns the record's slug, falling back to its source key.
func Slug(key string, rec models.Record) string {
	if slug := rec.Text("slug"); slug != "" {
		return slug
	}

	return key
}

// Process builds the view model for the record stored under key. A panic
// while handling the record is reported as ErrItemFailed so that callers can
// carry on with the remaining records.
func (p *Processor) Process(key string, rec models.Record, page PageContext) (r *models.Restaurant, err error) {
	defer func() {
		if rv := recover(); rv != nil {
			r = nil
			err = fmt.Errorf("%w: %s: %v", ErrItemFailed, key, rv)
		}
	}()

	if rec == nil {
		rec = models.Record{}
	}

	slug := Slug(key, rec)

	return &models.Restaurant{
		Key:             key,
		Slug:            slug,
		Name:            rec.Text("name"),
		Description:     rec.Text("description"),
		Logo:            p.images.Resolve(rec, LogoFields, page.MediaPrefix, nil),
		LogoPlaceholder: LogoPlaceholder.DataURI(),
		Banner:          p.images.Resolve(rec, BannerFields, page.MediaPrefix, BannerPlaceholder),
		CreatedAt:       ParseDate(rec["created_at"]),
		UpdatedAt:       ParseDate(rec["updated_at"]),
		Hours:           ExpandHours(rec["hours"]),
		PaymentMethods:  NormalizePaymentMethods(rec["payment_methods"]),
		Tags:            NormalizeTags(rec["tags"]),
		OfficialURL:     p.transformer.OfficialURL(rec),
		OrderURL:        p.transformer.OrderURL(rec),
		Reviews:         AttachReviews(p.reviews, slug, key),
		MediaPrefix:     page.MediaPrefix,
		SitePrefix:      page.SitePrefix,
		Fields:          rec,
	}, nil
}
