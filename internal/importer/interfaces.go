package importer

import (
	"context"

	"github.com/samvad-hq/docut-go/pkg/docut"
	"github.com/samvad-hq/docut-go/pkg/httpclient"
	"github.com/samvad-hq/docut-go/pkg/publishers"
)

// SitemapReader lists candidate page URLs.
type SitemapReader interface {
	URLs(ctx context.Context, sitemapURL string, headers map[string]string) ([]string, error)
}

// LinkCreator shortens a single URL.
type LinkCreator interface {
	Create(ctx context.Context, req docut.CreateLinkRequest) (httpclient.Result[docut.LinkWithSeo, docut.APIError], error)
}

// SeoSuggester proposes SEO metadata for a destination page.
type SeoSuggester interface {
	Suggest(ctx context.Context, pageURL string) (docut.SeoInput, error)
}

// EventPublisher publishes created links downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper records which source URLs were already imported.
type Deduper interface {
	Seen(key string) (bool, error)
	Mark(key string) error
}
