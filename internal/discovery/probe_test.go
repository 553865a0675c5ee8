package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestProbeRunsAllStrategies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1beta/models", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models": [{"name": "models/gemini-pro"}]}`))
	})
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "gone"}}`, http.StatusNotFound)
	})
	mux.HandleFunc("/v1beta/openai/models", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"object": "list", "data": [{"id": "models/gemini-pro"}]}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	r := NewResolver(testConfig(ts.URL, true))
	report, err := r.Probe(context.Background(), "test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Attempts) != 3 {
		t.Fatalf("probe must not stop at first success, got %d attempts", len(report.Attempts))
	}
	if !report.Attempts[0].OK || report.Attempts[1].OK || !report.Attempts[2].OK {
		t.Fatalf("unexpected attempt outcomes: %+v", report.Attempts)
	}
	if report.Attempts[1].Trace == "" {
		t.Fatal("failed attempt should carry a trace")
	}
	if !reflect.DeepEqual(report.Models, []string{"models/gemini-pro"}) {
		t.Fatalf("models = %v", report.Models)
	}
}

func TestProbeAllFailuresYieldsEmptyModels(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer ts.Close()

	r := NewResolver(testConfig(ts.URL, true))
	report, err := r.Probe(context.Background(), "test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Models) != 0 {
		t.Fatalf("models = %v, want empty", report.Models)
	}
	if report.Models == nil {
		t.Fatal("models must encode as [] not null")
	}
}

func TestSummarize(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		s := Summarize([]byte(`[1,2,3,4,5,6,7]`))
		if s.Type != "array" || s.Len != 7 {
			t.Fatalf("summary = %+v", s)
		}
		if strings.Count(s.Sample, ",") != 4 {
			t.Fatalf("sample should hold five entries: %q", s.Sample)
		}
	})
	t.Run("object", func(t *testing.T) {
		s := Summarize([]byte(`{"models": [], "nextPageToken": ""}`))
		if s.Type != "object" {
			t.Fatalf("summary = %+v", s)
		}
		if !reflect.DeepEqual(s.Keys, []string{"models", "nextPageToken"}) {
			t.Fatalf("keys = %v", s.Keys)
		}
	})
	t.Run("scalar truncated", func(t *testing.T) {
		s := Summarize([]byte(strings.Repeat("x", 2000)))
		if s.Type != "scalar" {
			t.Fatalf("summary = %+v", s)
		}
		if len(s.Repr) > 1010 || !strings.HasSuffix(s.Repr, "...") {
			t.Fatalf("repr not truncated: len=%d", len(s.Repr))
		}
	})
}
