package util

import "testing"

func TestNormalize(t *testing.T) {
	if got := Normalize("  Bold Outline  "); got != "bold outline" {
		t.Errorf("Normalize = %q", got)
	}
}

func TestContainsAny(t *testing.T) {
	needles := []string{"bold", "thick"}

	if !ContainsAny("a thick black line", needles) {
		t.Error("expected match on thick")
	}
	if ContainsAny("fine delicate work", needles) {
		t.Error("unexpected match")
	}
	if ContainsAny("anything", nil) {
		t.Error("no needles can never match")
	}
}

func TestContains(t *testing.T) {
	roles := []string{"client", "artist"}

	if !Contains(roles, "artist") {
		t.Error("expected match on artist")
	}
	if Contains(roles, "admin") {
		t.Error("unexpected match")
	}
	if Contains(nil, "anything") {
		t.Error("empty slice can never match")
	}
}

func TestFirstLine(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Trash Polka\nbecause of the palette", "Trash Polka"},
		{"\n\n  Realism  \nmore", "Realism"},
		{"", ""},
		{"\n \n", ""},
		{"single", "single"},
	}

	for _, tc := range cases {
		if got := FirstLine(tc.in); got != tc.want {
			t.Errorf("FirstLine(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("hello", 10); got != "hello" {
		t.Errorf("short string changed: %q", got)
	}
	if got := TruncateString("hello world", 5); got != "hello..." {
		t.Errorf("TruncateString = %q", got)
	}
}
