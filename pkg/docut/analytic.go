package docut

import (
	"context"

	"github.com/samvad-hq/docut-go/pkg/httpclient"
)

const (
	metricsVisitorsPath = "/dashboard/link/metrics/visitors"
	metricsDevicePath   = "/dashboard/link/metrics/device"
	metricsOSPath       = "/dashboard/link/metrics/os"
	metricsCountryPath  = "/dashboard/link/metrics/country"
	metricsBrowserPath  = "/dashboard/link/metrics/browser"
	metricsCityPath     = "/dashboard/link/metrics/city"
)

// Device values reported by the devices breakdown. A nil device means unknown.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
)

// VisitorsPoint is one day of the visitors series. The API sends counts as strings.
type VisitorsPoint struct {
	Date     string `json:"date"`
	Visitors string `json:"visitors"`
	Views    string `json:"views"`
}

// DeviceTotal counts clicks per device class.
type DeviceTotal struct {
	Device *string `json:"device"`
	Total  int64   `json:"total"`
}

// OSTotal counts clicks per operating system.
type OSTotal struct {
	OS    *string `json:"os"`
	Total int64   `json:"total"`
}

// CountryTotal counts clicks per country code.
type CountryTotal struct {
	Country *string `json:"country"`
	Total   int64   `json:"total"`
}

// BrowserTotal counts clicks per browser.
type BrowserTotal struct {
	Browser *string `json:"browser"`
	Total   int64   `json:"total"`
}

// CityTotal counts clicks per city together with its country.
type CityTotal struct {
	City    *string `json:"city"`
	Country *string `json:"country"`
	Total   int64   `json:"total"`
}

// GetVisitorsResponse is the daily visitors series.
type GetVisitorsResponse struct {
	Data []VisitorsPoint `json:"data"`
}

// GetDevicesResponse is the devices breakdown.
type GetDevicesResponse struct {
	Data []DeviceTotal `json:"data"`
}

// GetOSResponse is the operating systems breakdown.
type GetOSResponse struct {
	Data []OSTotal `json:"data"`
}

// GetCountriesResponse is the countries breakdown.
type GetCountriesResponse struct {
	Data []CountryTotal `json:"data"`
}

// GetBrowsersResponse is the browsers breakdown.
type GetBrowsersResponse struct {
	Data []BrowserTotal `json:"data"`
}

// GetCitiesResponse is the cities breakdown.
type GetCitiesResponse struct {
	Data []CityTotal `json:"data"`
}

// AnalyticService exposes the click analytics endpoints.
type AnalyticService struct {
	http *httpclient.Client
}

// NewAnalyticService binds the analytics endpoints to client.
func NewAnalyticService(client *httpclient.Client) *AnalyticService {
	return &AnalyticService{http: client}
}

// GetVisitors fetches unique visitors and views per day.
func (s *AnalyticService) GetVisitors(ctx context.Context) (httpclient.Result[GetVisitorsResponse, APIError], error) {
	return httpclient.Request[GetVisitorsResponse, APIError](ctx, s.http, metricsVisitorsPath, httpclient.Init{})
}

// GetDevices fetches click totals per device.
func (s *AnalyticService) GetDevices(ctx context.Context) (httpclient.Result[GetDevicesResponse, APIError], error) {
	return httpclient.Request[GetDevicesResponse, APIError](ctx, s.http, metricsDevicePath, httpclient.Init{})
}

// GetOS fetches click totals per operating system.
func (s *AnalyticService) GetOS(ctx context.Context) (httpclient.Result[GetOSResponse, APIError], error) {
	return httpclient.Request[GetOSResponse, APIError](ctx, s.http, metricsOSPath, httpclient.Init{})
}

// GetCountries fetches click totals per country.
func (s *AnalyticService) GetCountries(ctx context.Context) (httpclient.Result[GetCountriesResponse, APIError], error) {
	return httpclient.Request[GetCountriesResponse, APIError](ctx, s.http, metricsCountryPath, httpclient.Init{})
}

// GetBrowsers fetches click totals per browser.
func (s *AnalyticService) GetBrowsers(ctx context.Context) (httpclient.Result[GetBrowsersResponse, APIError], error) {
	return httpclient.Request[GetBrowsersResponse, APIError](ctx, s.http, metricsBrowserPath, httpclient.Init{})
}

// GetCities fetches click totals per city.
func (s *AnalyticService) GetCities(ctx context.Context) (httpclient.Result[GetCitiesResponse, APIError], error) {
	return httpclient.Request[GetCitiesResponse, APIError](ctx, s.http, metricsCityPath, httpclient.Init{})
}
