package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// Param is a single query-string entry. A nil Value (or typed nil pointer) is skipped.
type Param struct {
	Key   string
	Value any
}

// Query is an ordered list of query parameters; encoding preserves insertion order.
type Query []Param

// Add appends a parameter and returns the extended query.
func (q Query) Add(key string, value any) Query {
	return append(q, Param{Key: key, Value: value})
}

// Encode renders the query without the leading '?'. Entries with nil values
// are dropped and the rest are stringified and URL-encoded.
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}
	parts := make([]string, 0, len(q))
	for _, p := range q {
		if isNil(p.Value) {
			continue
		}
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(stringify(p.Value)))
	}
	return strings.Join(parts, "&")
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func stringify(v any) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	v = rv.Interface()
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// Init carries per-call request options. The zero value issues a bodiless GET.
type Init struct {
	// Method defaults to GET.
	Method string
	// Headers override the client's defaults by case-insensitive name.
	Headers map[string]string
	// Body is sent as-is when it is []byte, string or io.Reader; any other
	// non-nil value is JSON-encoded.
	Body  any
	Query Query

	Cookies  []*http.Cookie
	Referrer string
	// Close asks the transport not to reuse the connection.
	Close bool
}

// builtRequest is the fully resolved request handed to the transport.
type builtRequest struct {
	method string
	url    string
	header http.Header
	body   any
}

// buildRequest composes the final request from the client defaults and init.
func buildRequest(baseURL string, defaults http.Header, endpoint string, init Init) (builtRequest, error) {
	target := baseURL + endpoint
	if qs := init.Query.Encode(); qs != "" {
		target += "?" + qs
	}

	header := mergeHeaders(defaults, init.Headers)
	if init.Referrer != "" {
		header.Set("Referer", init.Referrer)
	}
	if init.Close {
		header.Set("Connection", "close")
	}

	method := strings.ToUpper(strings.TrimSpace(init.Method))
	if method == "" {
		method = http.MethodGet
	}

	body, err := encodeBody(init.Body, header)
	if err != nil {
		return builtRequest{}, err
	}

	return builtRequest{
		method: method,
		url:    target,
		header: header,
		body:   body,
	}, nil
}

// mergeHeaders layers per-call headers over the defaults; names are canonicalized
// so the last write wins regardless of case.
func mergeHeaders(defaults http.Header, overrides map[string]string) http.Header {
	out := defaults.Clone()
	if out == nil {
		out = make(http.Header)
	}
	for k, v := range overrides {
		out.Set(k, v)
	}
	return out
}

func encodeBody(body any, header http.Header) (any, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte, string, io.Reader:
		return b, nil
	}
	if isNil(body) {
		return nil, nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	if header.Get("Content-Type") == "" {
		header.Set("Content-Type", jsonContentType)
	}
	return raw, nil
}
