package httpclient

import (
	"encoding/json"
	"testing"
)

func TestExtractBodyFallsBack(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		body        string
	}{
		{name: "empty json body", contentType: "application/json", body: ""},
		{name: "malformed json", contentType: "application/json; charset=utf-8", body: `{"id":`},
		{name: "plain text", contentType: "text/plain", body: `{"id":"abc"}`},
		{name: "html", contentType: "text/html", body: "<html></html>"},
		{name: "no content type", contentType: "", body: `{"id":"abc"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractBody(tc.contentType, []byte(tc.body))
			if string(got) != `{"message":null}` {
				t.Fatalf("expected fallback body, got %s", got)
			}
		})
	}
}

func TestExtractBodyKeepsJSON(t *testing.T) {
	got := extractBody("Application/JSON", []byte(`{"id":"abc123","clicks":5}`))
	if string(got) != `{"id":"abc123","clicks":5}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestFallbackBodyIsACopy(t *testing.T) {
	b := FallbackBody()
	b[0] = '['
	if string(FallbackBody()) != `{"message":null}` {
		t.Fatalf("fallback body was mutated through a returned copy")
	}
}

func TestDecodeIntoMismatchedShapeUsesFallback(t *testing.T) {
	type item struct {
		ID string `json:"id"`
	}
	got := decodeInto[[]item](json.RawMessage(`{"id":"x"}`))
	if got != nil {
		t.Fatalf("expected zero slice, got %#v", got)
	}

	type apiError struct {
		Message string `json:"message"`
	}
	e := decodeInto[apiError](json.RawMessage(`{"message":null}`))
	if e.Message != "" {
		t.Fatalf("expected empty message, got %q", e.Message)
	}
}

func TestDecodeIntoKeepsFieldsAroundMistypedOne(t *testing.T) {
	type link struct {
		ID     string `json:"id"`
		URL    string `json:"url"`
		Clicks int    `json:"clicks"`
	}
	got := decodeInto[link](json.RawMessage(`{"id":"abc123","clicks":"5","url":"https://x.com"}`))
	if got.ID != "abc123" || got.URL != "https://x.com" {
		t.Fatalf("expected id and url to survive, got %+v", got)
	}
	if got.Clicks != 0 {
		t.Fatalf("mistyped clicks should stay zero, got %d", got.Clicks)
	}

	type osTotal struct {
		OS    *string `json:"os"`
		Total int64   `json:"total"`
	}
	type osResponse struct {
		Data []osTotal `json:"data"`
	}
	rows := decodeInto[osResponse](json.RawMessage(`{"data":[{"os":"linux","total":3},{"os":null,"total":"12"}]}`))
	if len(rows.Data) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows.Data))
	}
	if rows.Data[0].OS == nil || *rows.Data[0].OS != "linux" || rows.Data[0].Total != 3 {
		t.Fatalf("unexpected first row %+v", rows.Data[0])
	}
	if rows.Data[1].OS != nil || rows.Data[1].Total != 0 {
		t.Fatalf("unexpected second row %+v", rows.Data[1])
	}
}
