package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/samvad-hq/docut-go/internal/config"
	"github.com/samvad-hq/docut-go/pkg/publishers"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		BaseURL:                baseURL,
		APIKey:                 "key",
		UserAgent:              "docut-test",
		HTTPTimeout:            5 * time.Second,
		StorageType:            "bbolt",
		BBoltPath:              filepath.Join(t.TempDir(), "imported.db"),
		StorageTTL:             time.Hour,
		StorageCleanupInterval: time.Hour,
	}
}

// webhook records the events posted to it.
type webhook struct {
	mu     sync.Mutex
	events []publishers.Event
}

func (w *webhook) handler(t *testing.T) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		var evt publishers.Event
		if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
			t.Errorf("decode event: %v", err)
		}
		w.mu.Lock()
		w.events = append(w.events, evt)
		w.mu.Unlock()
		rw.WriteHeader(http.StatusNoContent)
	}
}

func writePublishersFile(t *testing.T, hookURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "publishers.yaml")
	raw := fmt.Sprintf("publishers:\n  - id: hook\n    type: http\n    http:\n      url: %s\n", hookURL)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write publishers file: %v", err)
	}
	return path
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func metricsHandler(t *testing.T, failPath string) http.HandlerFunc {
	bodies := map[string]string{
		"/dashboard/link/metrics/visitors": `{"data":[{"date":"2025-01-01","visitors":"3","views":"5"}]}`,
		"/dashboard/link/metrics/device":   `{"data":[{"device":"mobile","total":4},{"device":null,"total":1}]}`,
		"/dashboard/link/metrics/os":       `{"data":[{"os":"Android","total":4}]}`,
		"/dashboard/link/metrics/country":  `{"data":[{"country":"IN","total":5}]}`,
		"/dashboard/link/metrics/browser":  `{"data":[{"browser":"Chrome","total":5}]}`,
		"/dashboard/link/metrics/city":     `{"data":[{"city":"Kolkata","country":"IN","total":5}]}`,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "key" {
			t.Errorf("missing api key on %s", r.URL.Path)
		}
		if r.URL.Path == failPath {
			writeJSON(w, http.StatusInternalServerError, `{"message":"metrics unavailable"}`)
			return
		}
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func TestReporterPublishesSnapshot(t *testing.T) {
	api := httptest.NewServer(metricsHandler(t, ""))
	defer api.Close()
	hook := &webhook{}
	hookSrv := httptest.NewServer(hook.handler(t))
	defer hookSrv.Close()

	cfg := testConfig(t, api.URL)
	cfg.PublishersFile = writePublishersFile(t, hookSrv.URL)

	reporter, err := NewReporter(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewReporter: %v", err)
	}
	defer reporter.Close()

	snap, err := reporter.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(snap.Visitors) != 1 || snap.Visitors[0].Views != "5" {
		t.Fatalf("visitors = %#v", snap.Visitors)
	}
	if len(snap.Devices) != 2 || snap.Devices[1].Device != nil {
		t.Fatalf("devices = %#v", snap.Devices)
	}
	if len(snap.Cities) != 1 || *snap.Cities[0].City != "Kolkata" {
		t.Fatalf("cities = %#v", snap.Cities)
	}

	if len(hook.events) != 1 {
		t.Fatalf("expected 1 webhook event, got %d", len(hook.events))
	}
	evt := hook.events[0]
	if evt.Type != publishers.EventMetricsSnapshot || evt.Metrics == nil || len(evt.Metrics.Countries) != 1 {
		t.Fatalf("unexpected event %#v", evt)
	}
}

func TestReporterAbortsOnAPIFailure(t *testing.T) {
	api := httptest.NewServer(metricsHandler(t, "/dashboard/link/metrics/country"))
	defer api.Close()
	hook := &webhook{}
	hookSrv := httptest.NewServer(hook.handler(t))
	defer hookSrv.Close()

	cfg := testConfig(t, api.URL)
	cfg.PublishersFile = writePublishersFile(t, hookSrv.URL)

	reporter, err := NewReporter(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewReporter: %v", err)
	}
	defer reporter.Close()

	_, err = reporter.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "countries") || !strings.Contains(err.Error(), "metrics unavailable") {
		t.Fatalf("expected countries failure, got %v", err)
	}
	if len(hook.events) != 0 {
		t.Fatalf("nothing should be published on failure, got %d events", len(hook.events))
	}
}

func TestImporterSkipsAlreadyImportedURLs(t *testing.T) {
	var mu sync.Mutex
	var created []string

	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "docut-test" {
			t.Errorf("sitemap User-Agent = %q", got)
		}
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprintf(w, `<urlset><url><loc>%[1]s/a</loc></url><url><loc>%[1]s/b</loc></url></urlset>`, srv.URL)
	})
	mux.HandleFunc("/dashboard/link", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var body struct {
			URL string `json:"url"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		created = append(created, body.URL)
		id := len(created)
		mu.Unlock()
		writeJSON(w, http.StatusCreated, fmt.Sprintf(`{"id":"l%d","url":%q,"clicks":0}`, id, body.URL))
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	hook := &webhook{}
	hookSrv := httptest.NewServer(hook.handler(t))
	defer hookSrv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.PublishersFile = writePublishersFile(t, hookSrv.URL)

	run := func() {
		im, err := NewImporter(context.Background(), cfg, nil, ImportOptions{})
		if err != nil {
			t.Fatalf("NewImporter: %v", err)
		}
		defer func() {
			if err := im.Close(); err != nil {
				t.Errorf("Close: %v", err)
			}
		}()
		if _, err := im.Run(context.Background(), srv.URL+"/sitemap.xml", nil, 0); err != nil {
			t.Fatalf("Run: %v", err)
		}
	}

	run()
	run()

	if len(created) != 2 {
		t.Fatalf("expected 2 links created across both runs, got %v", created)
	}
	if len(hook.events) != 2 || hook.events[0].Type != publishers.EventLinkCreated {
		t.Fatalf("unexpected webhook events %#v", hook.events)
	}
}

func TestNewImporterRejectsBadPublishersFile(t *testing.T) {
	cfg := testConfig(t, "https://docut.example")
	cfg.PublishersFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := NewImporter(context.Background(), cfg, nil, ImportOptions{}); err == nil {
		t.Fatalf("expected error for missing publishers file")
	}
}
