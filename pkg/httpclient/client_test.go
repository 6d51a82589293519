package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type testLink struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Clicks int    `json:"clicks"`
}

type testError struct {
	Message string `json:"message"`
}

func TestRequestSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/dashboard/link/abc123" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "k" {
			t.Errorf("x-api-key = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"abc123","url":"https://x.com","clicks":5}`)
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", map[string]string{"x-api-key": "k"})
	res, err := Request[testLink, testError](context.Background(), c, "/dashboard/link/abc123", Init{})
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if !res.Success() {
		t.Fatalf("expected success result, got %+v", res)
	}
	data, ok := res.Data()
	if !ok || data.ID != "abc123" || data.Clicks != 5 {
		t.Fatalf("unexpected data %+v", data)
	}
	if _, ok := res.Failure(); ok {
		t.Fatalf("failure arm must be empty on success")
	}
	if res.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode())
	}
}

func TestRequestNon2xxIsFailureResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"url":"https://x.com"}` {
			t.Errorf("unexpected body %s", body)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"not found"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	res, err := Request[testLink, testError](context.Background(), c, "/dashboard/link", Init{
		Method: http.MethodPost,
		Body:   map[string]string{"url": "https://x.com"},
	})
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if res.Success() {
		t.Fatalf("expected failure result")
	}
	apiErr, ok := res.Failure()
	if !ok || apiErr.Message != "not found" {
		t.Fatalf("unexpected error arm %+v", apiErr)
	}
	if res.StatusCode() != http.StatusNotFound {
		t.Fatalf("status = %d", res.StatusCode())
	}
}

func TestRequestUndecodableBodiesUseFallback(t *testing.T) {
	cases := []struct {
		name        string
		status      int
		contentType string
		body        string
		success     bool
	}{
		{name: "2xx empty", status: http.StatusOK, contentType: "application/json", success: true},
		{name: "2xx text", status: http.StatusOK, contentType: "text/plain", body: "ok", success: true},
		{name: "5xx html", status: http.StatusBadGateway, contentType: "text/html", body: "<h1>bad</h1>"},
		{name: "4xx malformed", status: http.StatusBadRequest, contentType: "application/json", body: "{"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			res, err := Request[testLink, testError](context.Background(), New(srv.URL, nil), "/", Init{})
			if err != nil {
				t.Fatalf("Request: %v", err)
			}
			if res.Success() != tc.success {
				t.Fatalf("Success() = %v, want %v", res.Success(), tc.success)
			}
			if string(res.Raw()) != `{"message":null}` {
				t.Fatalf("Raw() = %s, want fallback", res.Raw())
			}
		})
	}
}

func TestRequestPerCallHeaderOverridesDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Values("X-Api-Key"); len(got) != 1 || got[0] != "B" {
			t.Errorf("x-api-key = %v, want [B]", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, map[string]string{"x-api-key": "A"})
	if _, err := Request[testLink, testError](context.Background(), c, "/", Init{
		Headers: map[string]string{"x-api-key": "B"},
	}); err != nil {
		t.Fatalf("Request: %v", err)
	}
}

func TestRequestConcurrentCallsStayIndependent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"id":%q,"url":%q,"clicks":0}`, r.Header.Get("X-Call"), r.URL.Path)
	}))
	defer srv.Close()

	c := New(srv.URL, map[string]string{"x-api-key": "shared"})

	const calls = 50
	var wg sync.WaitGroup
	errs := make(chan error, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("call-%d", i)
			path := "/dashboard/link/" + id
			res, err := Request[testLink, testError](context.Background(), c, path, Init{
				Headers: map[string]string{"X-Call": id},
			})
			if err != nil {
				errs <- fmt.Errorf("%s: %w", id, err)
				return
			}
			data, ok := res.Data()
			if !ok || data.ID != id || data.URL != path {
				errs <- fmt.Errorf("%s: got %+v", id, data)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestRequestTransportFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := Request[testLink, testError](context.Background(), New(url, nil), "/", Init{})
	if err == nil {
		t.Fatalf("expected transport error for closed server")
	}
}

func TestRequestCancellationIsError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Request[testLink, testError](ctx, New(srv.URL, nil), "/", Init{})
	if err == nil {
		t.Fatalf("expected error on cancelled context")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestRequestNilClient(t *testing.T) {
	if _, err := Request[testLink, testError](context.Background(), nil, "/", Init{}); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

func TestResultMarshalJSON(t *testing.T) {
	ok := NewSuccess[testLink, testError](testLink{ID: "a"})
	raw, err := ok.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(raw) != `{"success":true,"data":{"id":"a","url":"","clicks":0}}` {
		t.Fatalf("unexpected json %s", raw)
	}

	fail := NewFailure[testLink, testError](testError{Message: "nope"})
	raw, err = fail.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(raw) != `{"success":false,"error":{"message":"nope"}}` {
		t.Fatalf("unexpected json %s", raw)
	}
}
