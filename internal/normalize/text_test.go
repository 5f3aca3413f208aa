package normalize

import (
	"strings"
	"testing"
)

func TestCanonical_LowercaseAndPunctuation(t *testing.T) {
	got := Canonical("Great, thanks!! Call me at 3PM.")
	want := "great thanks call me at 3pm"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCanonical_ApostrophesSurvive(t *testing.T) {
	got := Canonical("Don't call me")
	if got != "don't call me" {
		t.Errorf("Expected apostrophe preserved, got %q", got)
	}
}

func TestCanonical_Empty(t *testing.T) {
	if got := Canonical("  ...  !!!  "); got != "" {
		t.Errorf("Expected empty string for punctuation-only input, got %q", got)
	}
}

func TestPrepare_ExpandsAbbreviations(t *testing.T) {
	abbrev := map[string]string{
		"thx": "thanks",
		"gr8": "great",
		"ty":  "thank you",
	}

	canon, tokens := Prepare("thx, that's gr8! ty", abbrev)
	if !strings.Contains(canon, "thanks") {
		t.Errorf("Expected 'thx' expanded to 'thanks', got %q", canon)
	}
	if !strings.Contains(canon, "great") {
		t.Errorf("Expected 'gr8' expanded to 'great', got %q", canon)
	}
	// Multi-word expansions split into tokens
	foundThank, foundYou := false, false
	for _, tok := range tokens {
		if tok == "thank" {
			foundThank = true
		}
		if tok == "you" {
			foundYou = true
		}
	}
	if !foundThank || !foundYou {
		t.Errorf("Expected 'ty' expanded into 'thank' and 'you' tokens, got %v", tokens)
	}
}

func TestPrepare_EmptyText(t *testing.T) {
	canon, tokens := Prepare("   ", nil)
	if canon != "" {
		t.Errorf("Expected empty canonical text, got %q", canon)
	}
	if tokens != nil {
		t.Errorf("Expected nil tokens, got %v", tokens)
	}
}

func TestPrepare_StripsHTML(t *testing.T) {
	htmlBody := `<html><body><p>Thanks, this is <b>great</b>!</p><script>alert("x")</script></body></html>`
	canon, _ := Prepare(htmlBody, nil)

	if !strings.Contains(canon, "great") {
		t.Errorf("Expected visible text extracted, got %q", canon)
	}
	if strings.Contains(canon, "alert") {
		t.Errorf("Expected script content removed, got %q", canon)
	}
}

func TestPrepare_PlainTextWithStrayAngle(t *testing.T) {
	canon, _ := Prepare("price < 100 is fine", nil)
	if !strings.Contains(canon, "price") || !strings.Contains(canon, "100") {
		t.Errorf("Expected plain text untouched by HTML stripping, got %q", canon)
	}
}

func TestContainsPhrase_WordBoundaries(t *testing.T) {
	canon := Canonical("please stop texting me")
	if !ContainsPhrase(canon, "stop") {
		t.Error("Expected 'stop' to match on word boundary")
	}

	canon = Canonical("I stopped by yesterday")
	if ContainsPhrase(canon, "stop") {
		t.Error("Expected 'stop' not to match inside 'stopped'")
	}
}

func TestContainsPhrase_MultiWord(t *testing.T) {
	canon := Canonical("Please do not call me again")
	if !ContainsPhrase(canon, "do not call") {
		t.Error("Expected multi-word phrase to match")
	}
	if ContainsPhrase(canon, "do not contact") {
		t.Error("Expected non-present phrase not to match")
	}
}

func TestStripHTML_SkipsNonVisible(t *testing.T) {
	content := `<html><head><style>p{color:red}</style></head><body><p>Visible</p><iframe src="x"></iframe></body></html>`
	got := StripHTML(content)

	if !strings.Contains(got, "Visible") {
		t.Errorf("Expected visible text, got %q", got)
	}
	if strings.Contains(got, "color") {
		t.Errorf("Expected style content removed, got %q", got)
	}
}
