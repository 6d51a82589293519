// Package httpclient is the request/response dispatch layer of the Docut SDK:
// it builds URLs, merges headers, serializes bodies, issues the call and
// normalizes every completed exchange into a Result.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Logger defines the logging surface the client relies on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

// Client issues requests relative to a fixed base URL with a fixed set of
// default headers. It holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL string
	headers http.Header
	http    *resty.Client
	log     Logger
}

// Option customizes a Client at construction.
type Option func(*options)

type options struct {
	timeout     time.Duration
	resty       *resty.Client
	restyLogger resty.Logger
	log         Logger
}

// WithTimeout bounds every call made by the client. Zero (the default) means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRestyClient supplies the underlying resty client (custom transport, proxies, TLS).
func WithRestyClient(c *resty.Client) Option {
	return func(o *options) { o.resty = c }
}

// WithLogger installs a logger that receives one debug entry per completed call.
func WithLogger(log Logger) Option {
	return func(o *options) { o.log = log }
}

// WithRestyLogger routes resty's internal warnings (e.g. to a zap SugaredLogger).
func WithRestyLogger(l resty.Logger) Option {
	return func(o *options) { o.restyLogger = l }
}

// New builds a Client. headers are applied to every request unless a call overrides them.
func New(baseURL string, headers map[string]string, opts ...Option) *Client {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	rc := o.resty
	if rc == nil {
		rc = newRestyBaseClient(o.timeout)
	} else if o.timeout > 0 {
		rc.SetTimeout(o.timeout)
	}
	if o.restyLogger != nil {
		rc.SetLogger(o.restyLogger)
	}
	if o.log == nil {
		o.log = noopLogger{}
	}

	return &Client{
		baseURL: baseURL,
		headers: mergeHeaders(nil, headers),
		http:    rc,
		log:     o.log,
	}
}

// BaseURL returns the URL every endpoint is appended to.
func (c *Client) BaseURL() string { return c.baseURL }

// Request performs one round trip to endpoint and returns the classified Result.
// A non-2xx status is a failure Result, not an error; error is reserved for
// exchanges that did not complete (bad URL, DNS, refused connection, timeout,
// cancellation, unencodable body).
func Request[S, E any](ctx context.Context, c *Client, endpoint string, init Init) (Result[S, E], error) {
	if c == nil || c.http == nil {
		return Result[S, E]{}, errors.New("httpclient: client is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	built, err := buildRequest(c.baseURL, c.headers, endpoint, init)
	if err != nil {
		return Result[S, E]{}, fmt.Errorf("build %s request: %w", endpoint, err)
	}

	req := c.http.R().SetContext(ctx)
	req.Header = built.header
	if len(init.Cookies) > 0 {
		req.SetCookies(init.Cookies)
	}
	if built.body != nil {
		req.SetBody(built.body)
	}

	start := time.Now()
	resp, err := req.Execute(built.method, built.url)
	if err != nil {
		return Result[S, E]{}, fmt.Errorf("%s %s: %w", built.method, built.url, err)
	}

	body := extractBody(resp.Header().Get("Content-Type"), resp.Body())
	c.log.DebugObj("docut api call completed", "http_call", map[string]any{
		"method":     built.method,
		"url":        built.url,
		"status":     resp.StatusCode(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	return classify[S, E](resp.StatusCode(), body), nil
}
