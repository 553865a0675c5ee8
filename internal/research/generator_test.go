package research

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gemini-research-go/internal/apierrors"
	"gemini-research-go/internal/config"
	"github.com/tidwall/gjson"
)

func generatorConfig(baseURL string) *config.Config {
	cfg := config.Default()
	cfg.Upstream.BaseURL = baseURL
	return cfg
}

func wantCategory(t *testing.T, err error, want apierrors.Category) *apierrors.Error {
	t.Helper()
	var typed *apierrors.Error
	if !errors.As(err, &typed) {
		t.Fatalf("want *apierrors.Error, got %T: %v", err, err)
	}
	if typed.Category != want {
		t.Fatalf("category = %s, want %s", typed.Category, want)
	}
	return typed
}

func TestGenerateSuccess(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		if !gjson.GetBytes(body, "contents.0.parts.0.text").Exists() {
			t.Errorf("request payload missing prompt text: %s", body)
		}
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "generated report"}]}}]}`))
	}))
	defer ts.Close()

	g := NewGenerator(generatorConfig(ts.URL))
	result, err := g.Generate(context.Background(), "test-key", Request{
		Topic: "Future of AI",
		Model: "models/gemini-pro",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "generated report" {
		t.Fatalf("text = %q", result.Text)
	}
	if result.ReportID == "" {
		t.Fatal("missing report ID")
	}
	if gotPath != "/v1beta/models/gemini-pro:generateContent" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestGenerateBareModelGetsModelsPrefix(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"text": "ok"}`))
	}))
	defer ts.Close()

	g := NewGenerator(generatorConfig(ts.URL))
	if _, err := g.Generate(context.Background(), "test-key", Request{Topic: "t", Model: "gemini-pro"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/v1beta/models/gemini-pro:generateContent" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestGenerateErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   apierrors.Category
	}{
		{
			"model not found",
			http.StatusNotFound,
			`{"error": {"message": "models/nope is not found for API version v1beta", "status": "NOT_FOUND"}}`,
			apierrors.CategoryModelUnsupported,
		},
		{
			"quota via 429",
			http.StatusTooManyRequests,
			`{"error": {"message": "slow down", "status": "RESOURCE_EXHAUSTED"}}`,
			apierrors.CategoryQuotaExceeded,
		},
		{
			"anything else",
			http.StatusInternalServerError,
			`{"error": {"message": "backend exploded", "status": "INTERNAL"}}`,
			apierrors.CategoryGenerationFailed,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			g := NewGenerator(generatorConfig(ts.URL))
			_, err := g.Generate(context.Background(), "test-key", Request{Topic: "t", Model: "models/m"})
			typed := wantCategory(t, err, tc.want)
			if tc.want == apierrors.CategoryGenerationFailed && typed.Trace == "" {
				t.Fatal("generic failure should carry a trace")
			}
		})
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	g := NewGenerator(generatorConfig("http://unused.invalid"))

	t.Run("empty topic", func(t *testing.T) {
		_, err := g.Generate(context.Background(), "key", Request{Topic: "  ", Model: "models/m"})
		wantCategory(t, err, apierrors.CategoryInvalidRequest)
	})
	t.Run("empty model", func(t *testing.T) {
		_, err := g.Generate(context.Background(), "key", Request{Topic: "t", Model: ""})
		wantCategory(t, err, apierrors.CategoryInvalidRequest)
	})
	t.Run("placeholder model", func(t *testing.T) {
		_, err := g.Generate(context.Background(), "key", Request{Topic: "t", Model: "(enter API key to load models)"})
		wantCategory(t, err, apierrors.CategoryInvalidRequest)
	})
	t.Run("blank credential", func(t *testing.T) {
		_, err := g.Generate(context.Background(), "", Request{Topic: "t", Model: "models/m"})
		wantCategory(t, err, apierrors.CategoryClientConstruction)
	})
}
