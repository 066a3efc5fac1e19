package domain

import "testing"

func TestDisplayNameTotalOverVocabulary(t *testing.T) {
	if len(AllStyles) != 15 {
		t.Fatalf("vocabulary size = %d, want 15", len(AllStyles))
	}
	for _, key := range AllStyles {
		if !key.IsValid() {
			t.Errorf("style %q missing from display-name map", key)
		}
		if key.DisplayName() == "" {
			t.Errorf("style %q has empty display name", key)
		}
	}
}

func TestStyleKeyFromDisplayName(t *testing.T) {
	key, ok := StyleKeyFromDisplayName("Trash Polka")
	if !ok || key != StyleTrashPolka {
		t.Errorf("got (%q, %v)", key, ok)
	}

	key, ok = StyleKeyFromDisplayName("trash polka")
	if !ok || key != StyleTrashPolka {
		t.Error("display-name lookup must be case-insensitive")
	}

	if _, ok := StyleKeyFromDisplayName("Not A Style"); ok {
		t.Error("unknown display name must not resolve")
	}
}

func TestIsValid(t *testing.T) {
	if !StyleBlackwork.IsValid() {
		t.Error("blackwork is in the vocabulary")
	}
	if StyleKey("steampunk").IsValid() {
		t.Error("steampunk is not in the vocabulary")
	}
}

func TestDefaultClassification(t *testing.T) {
	result := DefaultClassification()

	if result.MatchedStyle != StyleRealism {
		t.Errorf("default style = %s, want realism", result.MatchedStyle)
	}
	if result.ConfidenceScore != 0.5 {
		t.Errorf("default confidence = %f, want 0.5", result.ConfidenceScore)
	}
	if len(result.Tags) != 3 {
		t.Errorf("default tags = %v", result.Tags)
	}
	if result.AlternativeStyles == nil {
		t.Error("alternatives must be an empty slice, not nil")
	}
}
