package server

import (
	"errors"
	"testing"

	"github.com/inkmatch/inkmatch-server/internal/domain"
	apperrors "github.com/inkmatch/inkmatch-server/pkg/errors"
)

func TestParseRequestedStyles(t *testing.T) {
	styles, err := parseRequestedStyles("")
	if err != nil || styles != nil {
		t.Fatalf("empty filter: got (%v, %v), want (nil, nil)", styles, err)
	}

	styles, err = parseRequestedStyles(`["traditional","realism"]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(styles) != 2 || styles[0] != domain.StyleTraditional || styles[1] != domain.StyleRealism {
		t.Fatalf("styles = %v", styles)
	}

	if _, err := parseRequestedStyles(`not json`); err == nil {
		t.Fatal("malformed filter must be rejected")
	}
	if _, err := parseRequestedStyles(`{"style":"traditional"}`); err == nil {
		t.Fatal("non-array filter must be rejected")
	}
}

func TestParseRequestedStylesNormalizesKeys(t *testing.T) {
	styles, err := parseRequestedStyles(`[" Traditional ","REALISM"]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(styles) != 2 || styles[0] != domain.StyleTraditional || styles[1] != domain.StyleRealism {
		t.Fatalf("styles = %v, want normalized keys", styles)
	}
}

func TestParseRequestedStylesReturnsValidationError(t *testing.T) {
	_, err := parseRequestedStyles(`not json`)

	var valErr *apperrors.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("error %T should be a ValidationError", err)
	}
	if valErr.Field != "styles" {
		t.Errorf("field = %q, want styles", valErr.Field)
	}
	if valErr.StatusCode != 400 {
		t.Errorf("status = %d, want 400", valErr.StatusCode)
	}
}

func TestImageDigestDependsOnStyleFilter(t *testing.T) {
	image := []byte("same image bytes")

	plain := imageDigest(image, nil)
	filtered := imageDigest(image, []domain.StyleKey{domain.StyleTraditional})

	if plain == filtered {
		t.Error("filtered and unfiltered requests must not share a cache key")
	}
	if plain != imageDigest(image, nil) {
		t.Error("digest must be stable for identical input")
	}
}

func TestToAnalyzeResponseFormatsConfidence(t *testing.T) {
	result := &domain.Classification{
		MatchedStyle:     domain.StyleTraditional,
		StyleDisplayName: domain.StyleTraditional.DisplayName(),
		ConfidenceScore:  8.5552,
		AlternativeStyles: []domain.StyleScore{
			{Style: domain.StyleJapanese, Confidence: 3.14159},
		},
		Tags: []string{"Color", "Large"},
	}

	resp := toAnalyzeResponse(result)

	if resp.Style != "Traditional" {
		t.Errorf("style = %q", resp.Style)
	}
	if resp.Confidence != "8.56" {
		t.Errorf("confidence = %q, want two decimal places", resp.Confidence)
	}
	if len(resp.AlternativeStyles) != 1 {
		t.Fatalf("alternatives = %+v", resp.AlternativeStyles)
	}
	if resp.AlternativeStyles[0].Style != "Japanese" || resp.AlternativeStyles[0].Confidence != "3.14" {
		t.Errorf("alternative = %+v", resp.AlternativeStyles[0])
	}
	if len(resp.Tags) != 2 {
		t.Errorf("tags = %v", resp.Tags)
	}
}

func TestToAnalyzeResponseEmptyAlternatives(t *testing.T) {
	resp := toAnalyzeResponse(domain.DefaultClassification())

	if resp.AlternativeStyles == nil || len(resp.AlternativeStyles) != 0 {
		t.Errorf("alternatives must serialize as an empty array, got %+v", resp.AlternativeStyles)
	}
	if resp.Style != "Realism" || resp.Confidence != "0.50" {
		t.Errorf("default response = %+v", resp)
	}
}
