package app

import (
	"context"
	"fmt"

	"github.com/samvad-hq/docut-go/internal/config"
	"github.com/samvad-hq/docut-go/internal/logger"
	"github.com/samvad-hq/docut-go/pkg/docut"
	"github.com/samvad-hq/docut-go/pkg/httpclient"
	"github.com/samvad-hq/docut-go/pkg/publishers"
)

// NewSDK builds a Docut client from cfg.
func NewSDK(cfg *config.Config, log logger.Logger) *docut.SDK {
	opts := []httpclient.Option{httpclient.WithTimeout(cfg.HTTPTimeout)}
	if log != nil {
		opts = append(opts, httpclient.WithLogger(log))
	}
	if z, ok := log.(*logger.ZapLogger); ok {
		opts = append(opts, httpclient.WithRestyLogger(z.Sugar()))
	}
	return docut.New(cfg.BaseURL, cfg.APIKey, opts...)
}

// loadFanout builds the enabled publishers of cfg.PublishersFile. An unset
// file yields an empty fanout.
func loadFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	if cfg.PublishersFile == "" {
		log.DebugObj("no publishers file configured", "publishers_file", "")
		return publishers.NewFanout(nil), nil
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabled := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients), nil
}
