// Package importer bulk-shortens the pages listed in a sitemap.
package importer

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/samvad-hq/docut-go/internal/logger"
	"github.com/samvad-hq/docut-go/pkg/docut"
	"github.com/samvad-hq/docut-go/pkg/publishers"
)

// Source describes one import pass.
type Source struct {
	SitemapURL string
	Headers    map[string]string
	Expiration *time.Time
	// Limit caps how many new URLs are shortened; zero means no cap.
	Limit int
}

// Summary counts what happened to the sitemap entries.
type Summary struct {
	Discovered int `json:"discovered"`
	Skipped    int `json:"skipped"`
	Created    int `json:"created"`
	Failed     int `json:"failed"`
}

// Service runs imports against the Docut API.
type Service struct {
	reader    SitemapReader
	links     LinkCreator
	seo       SeoSuggester
	publisher EventPublisher
	log       logger.Logger
	dedupe    Deduper
	delay     time.Duration
}

// Option customizes a Service.
type Option func(*Service)

// WithDelay pauses between link creations.
func WithDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.delay = d
		}
	}
}

// NewService wires an importer. seo, pub and dedupe may be nil.
func NewService(reader SitemapReader, links LinkCreator, seo SeoSuggester, pub EventPublisher, log logger.Logger, dedupe Deduper, opts ...Option) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	s := &Service{
		reader:    reader,
		links:     links,
		seo:       seo,
		publisher: pub,
		log:       log,
		dedupe:    dedupe,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run imports every new URL of src. Per-URL failures are collected and
// returned joined alongside the summary.
func (s *Service) Run(ctx context.Context, src Source) (Summary, error) {
	var summary Summary
	if s == nil || s.reader == nil || s.links == nil {
		return summary, fmt.Errorf("importer service is not initialized")
	}

	urls, err := s.reader.URLs(ctx, src.SitemapURL, src.Headers)
	if err != nil {
		return summary, fmt.Errorf("read sitemap: %w", err)
	}
	summary.Discovered = len(urls)

	fresh := s.filterNew(urls)
	summary.Skipped = len(urls) - len(fresh)
	if src.Limit > 0 && len(fresh) > src.Limit {
		fresh = fresh[:src.Limit]
	}

	limiter := s.newLimiter()
	var errs []error
	for _, pageURL := range fresh {
		if err := limiter.Wait(ctx); err != nil {
			errs = append(errs, err)
			break
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if err := s.importOne(ctx, pageURL, src.Expiration); err != nil {
			summary.Failed++
			errs = append(errs, err)
			s.log.ErrorObj("import failed", "import_error", map[string]any{
				"url":   pageURL,
				"error": err.Error(),
			})
			continue
		}
		summary.Created++
	}

	s.log.InfoObj("import completed", "import_summary", map[string]any{
		"sitemap":    src.SitemapURL,
		"discovered": summary.Discovered,
		"skipped":    summary.Skipped,
		"created":    summary.Created,
		"failed":     summary.Failed,
	})
	return summary, errors.Join(errs...)
}

func (s *Service) importOne(ctx context.Context, pageURL string, expiration *time.Time) error {
	req := docut.CreateLinkRequest{URL: pageURL, Expiration: expiration}
	if s.seo != nil {
		in, err := s.seo.Suggest(ctx, pageURL)
		if err != nil {
			s.log.WarnObj("seo suggestion failed", "seo_error", map[string]any{
				"url":   pageURL,
				"error": err.Error(),
			})
		} else if !in.Empty() {
			req.Seo = &in
		}
	}

	res, err := s.links.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("create link for %s: %w", pageURL, err)
	}
	if apiErr, failed := res.Failure(); failed {
		return fmt.Errorf("create link for %s: status %d: %w", pageURL, res.StatusCode(), apiErr)
	}
	link, _ := res.Data()

	if s.dedupe != nil {
		if err := s.dedupe.Mark(dedupeKey(pageURL)); err != nil {
			s.log.WarnObj("dedupe mark failed", "storage_error", map[string]any{
				"url":   pageURL,
				"error": err.Error(),
			})
		}
	}

	if s.publisher != nil {
		if _, err := s.publisher.Publish(ctx, publishers.NewLinkCreatedEvent(pageURL, link)); err != nil {
			s.log.WarnObj("publish link event failed", "publish_error", map[string]any{
				"url":     pageURL,
				"link_id": link.ID,
				"error":   err.Error(),
			})
		}
	}

	s.log.DebugObj("link created", "import_link", map[string]any{
		"url":     pageURL,
		"link_id": link.ID,
	})
	return nil
}

// filterNew drops URLs already marked in the store. Lookup errors keep the URL.
func (s *Service) filterNew(urls []string) []string {
	if s.dedupe == nil {
		return urls
	}

	out := make([]string, 0, len(urls))
	for _, u := range urls {
		seen, err := s.dedupe.Seen(dedupeKey(u))
		if err != nil {
			s.log.WarnObj("dedupe lookup failed", "storage_error", map[string]any{
				"url":   u,
				"error": err.Error(),
			})
			out = append(out, u)
			continue
		}
		if !seen {
			out = append(out, u)
		}
	}
	return out
}

// newLimiter allows the first creation immediately and one more per delay.
func (s *Service) newLimiter() *rate.Limiter {
	if s.delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(s.delay), 1)
}

func dedupeKey(pageURL string) string {
	sum := sha1.Sum([]byte(pageURL))
	return hex.EncodeToString(sum[:])
}
