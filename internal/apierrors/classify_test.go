package apierrors

import "testing"

func TestClassifyGeneration(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    Category
	}{
		{"not found", "models/gemini-pro is not found for API version v1beta", CategoryModelUnsupported},
		{"generatecontent unsupported", "model X is Not Supported For GenerateContent", CategoryModelUnsupported},
		{"resource exhausted", "generation failed (RESOURCE_EXHAUSTED)", CategoryQuotaExceeded},
		{"quota word", "Quota exceeded for quota metric", CategoryQuotaExceeded},
		{"bare 429", "429 Too Many Requests", CategoryQuotaExceeded},
		{"unknown", "connection reset by peer", CategoryGenerationFailed},
		{"empty", "", CategoryGenerationFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyGeneration(tc.message, "trace")
			if got.Category != tc.want {
				t.Fatalf("category = %s, want %s", got.Category, tc.want)
			}
			if got.Message != tc.message {
				t.Fatalf("message must be carried verbatim: %q", got.Message)
			}
		})
	}
}

func TestClassifyGenerationRuleOrder(t *testing.T) {
	// Both rule sets match; the first rule in the table wins.
	got := ClassifyGeneration("model not found, quota irrelevant", "")
	if got.Category != CategoryModelUnsupported {
		t.Fatalf("category = %s, want %s", got.Category, CategoryModelUnsupported)
	}
}

func TestClassifyGenerationNeverQuotaForUnrelated(t *testing.T) {
	got := ClassifyGeneration("some backend exploded", "full trace here")
	if got.Category == CategoryQuotaExceeded || got.Category == CategoryModelUnsupported {
		t.Fatalf("unexpected category %s", got.Category)
	}
	if got.Trace != "full trace here" {
		t.Fatalf("trace not carried: %q", got.Trace)
	}
	if got.Hint == "" {
		t.Fatal("generic failures still carry a hint")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[Category]int{
		CategoryClientConstruction: 401,
		CategoryModelUnsupported:   400,
		CategoryInvalidRequest:     400,
		CategoryQuotaExceeded:      429,
		CategoryExportUnavailable:  501,
		CategoryGenerationFailed:   502,
	}
	for cat, want := range cases {
		if got := (&Error{Category: cat}).HTTPStatus(); got != want {
			t.Errorf("%s: status = %d, want %d", cat, got, want)
		}
	}
}
