package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/docut-go/internal/config"
	"github.com/samvad-hq/docut-go/internal/importer"
	"github.com/samvad-hq/docut-go/internal/logger"
	"github.com/samvad-hq/docut-go/internal/storage"
	"github.com/samvad-hq/docut-go/pkg/publishers"
	"github.com/samvad-hq/docut-go/pkg/seo"
	"github.com/samvad-hq/docut-go/pkg/sitemap"
)

// ImportOptions selects optional import stages.
type ImportOptions struct {
	WithSeo bool
}

// Importer owns the resources of a sitemap import: the dedupe store, the
// publishers and the import service wired over them.
type Importer struct {
	cfg    *config.Config
	fanout *publishers.Fanout
	store  storage.Store
	svc    *importer.Service
	log    logger.Logger
}

// NewImporter builds an import runtime from cfg.
func NewImporter(ctx context.Context, cfg *config.Config, log logger.Logger, opts ImportOptions) (*Importer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	fanout, err := loadFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		EntryTTL:        cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"entry_ttl_seconds":        int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	headers := map[string]string{"User-Agent": cfg.UserAgent}
	var suggester importer.SeoSuggester
	if opts.WithSeo {
		suggester = seo.NewScraper(nil, headers)
	}

	sdk := NewSDK(cfg, log)
	svc := importer.NewService(
		sitemap.NewReader(nil),
		sdk.Link,
		suggester,
		fanout,
		log,
		store,
		importer.WithDelay(cfg.ImportDelay),
	)

	return &Importer{
		cfg:    cfg,
		fanout: fanout,
		store:  store,
		svc:    svc,
		log:    log,
	}, nil
}

// Run performs one import of sitemapURL.
func (im *Importer) Run(ctx context.Context, sitemapURL string, expiration *time.Time, limit int) (importer.Summary, error) {
	if im == nil || im.svc == nil {
		return importer.Summary{}, fmt.Errorf("importer is not initialized")
	}

	start := time.Now()
	im.log.InfoObj("import started", "import_meta", map[string]any{
		"sitemap":    sitemapURL,
		"started_at": start.UTC(),
	})
	summary, err := im.svc.Run(ctx, importer.Source{
		SitemapURL: sitemapURL,
		Headers:    map[string]string{"User-Agent": im.cfg.UserAgent},
		Expiration: expiration,
		Limit:      limit,
	})
	tracked, countErr := im.store.Count()
	if countErr != nil {
		im.log.WarnObj("storage count failed", "error", countErr.Error())
	}
	im.log.InfoObj("import finished", "import_meta", map[string]any{
		"sitemap":      sitemapURL,
		"elapsed_ms":   time.Since(start).Milliseconds(),
		"tracked_urls": tracked,
	})
	return summary, err
}

// Close releases the store and publishers.
func (im *Importer) Close() error {
	if im == nil {
		return nil
	}
	var errs []error
	if im.store != nil {
		if err := im.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	if err := im.fanout.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
