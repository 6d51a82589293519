// Package sitemap reads page URLs out of XML sitemaps.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samvad-hq/docut-go/pkg/httpclient"
)

const defaultTimeout = 15 * time.Second

type urlSet struct {
	URLs []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc string `xml:"loc"`
}

// Reader downloads and parses sitemaps.
type Reader struct {
	client httpclient.Fetcher
}

// NewReader builds a Reader over client (or a default fetcher).
func NewReader(client httpclient.Fetcher) *Reader {
	if client == nil {
		client = httpclient.NewRestyFetcher(defaultTimeout)
	}
	return &Reader{client: client}
}

// URLs returns the distinct <loc> entries of the sitemap at sitemapURL, in document order.
func (r *Reader) URLs(ctx context.Context, sitemapURL string, headers map[string]string) ([]string, error) {
	if strings.TrimSpace(sitemapURL) == "" {
		return nil, fmt.Errorf("sitemap url is empty")
	}

	raw, err := fetch(ctx, r.client, sitemapURL, headers)
	if err != nil {
		return nil, err
	}

	urls, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("decode sitemap: %w", err)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("sitemap %s returned no records", sitemapURL)
	}
	return urls, nil
}

// Parse extracts trimmed, de-duplicated <loc> values from a <urlset> document.
func Parse(data []byte) ([]string, error) {
	var set urlSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, err
	}

	locs := lo.FilterMap(set.URLs, func(entry urlEntry, _ int) (string, bool) {
		loc := strings.TrimSpace(entry.Loc)
		return loc, loc != ""
	})
	return lo.Uniq(locs), nil
}

func fetch(ctx context.Context, client httpclient.Fetcher, url string, headers map[string]string) ([]byte, error) {
	resp, err := client.Get(ctx, url, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch sitemap %s: %w", url, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("sitemap %s returned status %d body: %s", url, resp.StatusCode(), responseSnippet(body))
	}
	return body, nil
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
