// Package docut is a typed client for the Docut link-shortening API.
//
// Every operation returns an httpclient.Result for any completed HTTP exchange
// (2xx in the success arm, anything else in the failure arm as an APIError)
// and a non-nil error only when the exchange itself could not complete.
//
//	sdk := docut.New(docut.DefaultBaseURL, "your-api-key")
//	res, err := sdk.Link.Get(ctx, docut.GetLinkRequest{ID: "abc123"})
package docut

import "github.com/samvad-hq/docut-go/pkg/httpclient"

const (
	// DefaultBaseURL is the hosted Docut API.
	DefaultBaseURL = "https://docut.xyz/api"
	// APIKeyHeader carries the API key on every request.
	APIKeyHeader = "x-api-key"
)

// SDK groups the Docut services over one shared HTTP client.
type SDK struct {
	http     *httpclient.Client
	Link     *LinkService
	Analytic *AnalyticService
}

// New builds an SDK for baseURL authenticating with apiKey.
func New(baseURL, apiKey string, opts ...httpclient.Option) *SDK {
	client := httpclient.New(baseURL, map[string]string{APIKeyHeader: apiKey}, opts...)
	return &SDK{
		http:     client,
		Link:     NewLinkService(client),
		Analytic: NewAnalyticService(client),
	}
}

// HTTP returns the underlying client for endpoints the SDK does not wrap yet.
func (s *SDK) HTTP() *httpclient.Client { return s.http }
