package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Fetcher abstracts plain page downloads so callers can inject mocks or different transports.
type Fetcher interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

// RestyFetcher adapts resty.Client to the Fetcher interface.
type RestyFetcher struct {
	client *resty.Client
}

// NewRestyFetcher creates a new RestyFetcher with the specified timeout.
func NewRestyFetcher(timeout time.Duration) *RestyFetcher {
	return &RestyFetcher{client: newRestyBaseClient(timeout)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout)
}

// newRestyBaseClient creates a resty.Client with the specified timeout (zero disables it).
// The cookie jar is removed so no state is carried between calls, and resty's own
// logger is silenced until a caller installs one.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetCookieJar(nil)
	c.SetLogger(quietLogger{})
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyFetcher) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }

type quietLogger struct{}

func (quietLogger) Errorf(string, ...interface{}) {}
func (quietLogger) Warnf(string, ...interface{})  {}
func (quietLogger) Debugf(string, ...interface{}) {}
