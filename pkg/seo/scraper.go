// Package seo suggests link SEO metadata from the destination page's tags.
package seo

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/docut-go/pkg/docut"
	"github.com/samvad-hq/docut-go/pkg/httpclient"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB
	maxSnippetBytes  = 1024
	defaultTimeout   = 15 * time.Second
)

// Scraper fetches destination pages and extracts title/description tags.
type Scraper struct {
	client  httpclient.Fetcher
	headers map[string]string
}

// NewScraper constructs a scraper with the provided fetcher (or a default one).
// headers are sent with every page request (e.g. User-Agent).
func NewScraper(client httpclient.Fetcher, headers map[string]string) *Scraper {
	if client == nil {
		client = httpclient.NewRestyFetcher(defaultTimeout)
	}
	return &Scraper{client: client, headers: headers}
}

// Suggest fetches pageURL and returns SEO fields from its og: tags, falling back
// to <title> and meta description. Fields that are not found stay nil.
func (s *Scraper) Suggest(ctx context.Context, pageURL string) (docut.SeoInput, error) {
	resp, err := s.client.Get(ctx, pageURL, s.headers)
	if err != nil {
		return docut.SeoInput{}, fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		snippet := strings.TrimSpace(string(resp.Body()))
		if len(snippet) > maxSnippetBytes {
			snippet = snippet[:maxSnippetBytes]
		}
		return docut.SeoInput{}, fmt.Errorf("status %d body: %s", resp.StatusCode(), snippet)
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	meta, err := parseMeta(body)
	if err != nil {
		return docut.SeoInput{}, err
	}

	var out docut.SeoInput
	if meta.Title != "" {
		out.Title = &meta.Title
	}
	if meta.Description != "" {
		out.Description = &meta.Description
	}
	return out, nil
}

type pageMeta struct {
	Title       string
	Description string
}

func parseMeta(body []byte) (pageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, fmt.Errorf("parse html: %w", err)
	}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	return pageMeta{
		Title: firstNonEmpty(
			extract(`meta[property="og:title"]`),
			extract(`meta[name="twitter:title"]`),
			doc.Find("title").First().Text(),
		),
		Description: firstNonEmpty(
			extract(`meta[property="og:description"]`),
			extract(`meta[name="description"]`),
		),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
