package sitemap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleSitemap = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"
        xmlns:news="http://www.google.com/schemas/sitemap-news/0.9">
  <url>
    <loc> https://example.com/article-1 </loc>
    <news:news>
      <news:title>Headline 1</news:title>
    </news:news>
  </url>
  <url>
    <loc>https://example.com/article-2</loc>
  </url>
  <url>
    <loc>https://example.com/article-1</loc>
  </url>
  <url>
    <loc></loc>
  </url>
</urlset>`

func TestParseTrimsAndDeduplicates(t *testing.T) {
	urls, err := Parse([]byte(sampleSitemap))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"https://example.com/article-1", "https://example.com/article-2"}
	if len(urls) != len(want) {
		t.Fatalf("expected %d urls, got %v", len(want), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Fatalf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestReaderURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "UA" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(sampleSitemap))
	}))
	defer srv.Close()

	urls, err := NewReader(nil).URLs(context.Background(), srv.URL+"/sitemap.xml", map[string]string{"User-Agent": "UA"})
	if err != nil {
		t.Fatalf("URLs: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %v", urls)
	}
}

func TestReaderErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "non-200", status: http.StatusInternalServerError, body: "boom", wantErr: "status 500"},
		{name: "not xml", status: http.StatusOK, body: "{}", wantErr: "decode sitemap"},
		{name: "empty urlset", status: http.StatusOK, body: `<urlset></urlset>`, wantErr: "no records"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewReader(nil).URLs(context.Background(), srv.URL, nil)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestReaderRejectsEmptyURL(t *testing.T) {
	if _, err := NewReader(nil).URLs(context.Background(), " ", nil); err == nil {
		t.Fatalf("expected error for empty url")
	}
}
