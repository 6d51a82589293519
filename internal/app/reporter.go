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

// Reporter collects every analytics breakdown and publishes it as one snapshot.
type Reporter struct {
	analytics *docut.AnalyticService
	fanout    *publishers.Fanout
	log       logger.Logger
}

// NewReporter builds a report runtime from cfg.
func NewReporter(ctx context.Context, cfg *config.Config, log logger.Logger) (*Reporter, error) {
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
	return &Reporter{
		analytics: NewSDK(cfg, log).Analytic,
		fanout:    fanout,
		log:       log,
	}, nil
}

// Run fetches the six breakdowns and publishes a metrics.snapshot event. Any
// API failure aborts before publishing.
func (r *Reporter) Run(ctx context.Context) (publishers.MetricsSnapshot, error) {
	var snap publishers.MetricsSnapshot
	if r == nil || r.analytics == nil {
		return snap, fmt.Errorf("reporter is not initialized")
	}

	visitors, err := fetchBreakdown(ctx, "visitors", r.analytics.GetVisitors)
	if err != nil {
		return snap, err
	}
	devices, err := fetchBreakdown(ctx, "devices", r.analytics.GetDevices)
	if err != nil {
		return snap, err
	}
	osTotals, err := fetchBreakdown(ctx, "os", r.analytics.GetOS)
	if err != nil {
		return snap, err
	}
	countries, err := fetchBreakdown(ctx, "countries", r.analytics.GetCountries)
	if err != nil {
		return snap, err
	}
	browsers, err := fetchBreakdown(ctx, "browsers", r.analytics.GetBrowsers)
	if err != nil {
		return snap, err
	}
	cities, err := fetchBreakdown(ctx, "cities", r.analytics.GetCities)
	if err != nil {
		return snap, err
	}

	snap = publishers.MetricsSnapshot{
		Visitors:  visitors.Data,
		Devices:   devices.Data,
		OS:        osTotals.Data,
		Countries: countries.Data,
		Browsers:  browsers.Data,
		Cities:    cities.Data,
	}

	delivered, err := r.fanout.Publish(ctx, publishers.NewMetricsSnapshotEvent(snap))
	if err != nil {
		return snap, fmt.Errorf("publish metrics snapshot: %w", err)
	}
	r.log.InfoObj("metrics snapshot published", "report_meta", map[string]any{
		"publishers": delivered,
		"visitors":   len(snap.Visitors),
		"countries":  len(snap.Countries),
	})
	return snap, nil
}

// Close releases the publishers.
func (r *Reporter) Close() error {
	if r == nil {
		return nil
	}
	return r.fanout.Close()
}

func fetchBreakdown[T any](ctx context.Context, name string, call func(context.Context) (httpclient.Result[T, docut.APIError], error)) (T, error) {
	var zero T
	res, err := call(ctx)
	if err != nil {
		return zero, fmt.Errorf("fetch %s: %w", name, err)
	}
	if apiErr, failed := res.Failure(); failed {
		return zero, fmt.Errorf("fetch %s: status %d: %w", name, res.StatusCode(), apiErr)
	}
	data, _ := res.Data()
	return data, nil
}
