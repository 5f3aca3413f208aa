package semantic

import (
	"testing"
	"time"

	"github.com/stratusdial/convoiq/internal/cache"
	"github.com/stratusdial/convoiq/internal/model"
)

func testMatcher() *Matcher {
	return NewMatcher(model.DefaultConfig().Semantic, nil)
}

func TestMatcher_ExactMatch(t *testing.T) {
	matcher := testMatcher()

	result := matcher.CategorizeDisposition("Interested")

	if result.Category != model.CategoryPositiveOutcome {
		t.Errorf("Expected positive_outcome, got %s", result.Category)
	}
	if result.Confidence != 100 {
		t.Errorf("Expected confidence 100 for exact exemplar match, got %d", result.Confidence)
	}
}

func TestMatcher_LabelVariantsAgree(t *testing.T) {
	matcher := testMatcher()

	// Different literal labels that land in the same category must behave
	// identically for trigger matching
	labels := []string{"Interested", "interested", "Shows Interest", "INTERESTED!!"}
	for _, label := range labels {
		matches, conf := matcher.MatchesCategory(label, model.CategoryPositiveOutcome)
		if !matches {
			t.Errorf("Expected %q to match positive_outcome", label)
		}
		if conf < 35 {
			t.Errorf("Expected meaningful confidence for %q, got %d", label, conf)
		}
	}
}

func TestMatcher_NegativeOutcome(t *testing.T) {
	matcher := testMatcher()

	result := matcher.CategorizeDisposition("Not Interested")

	if result.Category != model.CategoryNegativeOutcome {
		t.Errorf("Expected negative_outcome, got %s", result.Category)
	}

	matches, _ := matcher.MatchesCategory("Not Interested", model.CategoryPositiveOutcome)
	if matches {
		t.Error("Expected 'Not Interested' not to match positive_outcome")
	}
}

func TestMatcher_ContainmentMatch(t *testing.T) {
	matcher := testMatcher()

	// "callback" exemplar is contained in the longer label
	result := matcher.CategorizeDisposition("Customer requested callback")

	if result.Category != model.CategoryNeedsFollowup {
		t.Errorf("Expected needs_followup, got %s", result.Category)
	}
	if result.Confidence != 85 {
		t.Errorf("Expected containment confidence 85, got %d", result.Confidence)
	}
}

func TestMatcher_UnrecognizedLabel(t *testing.T) {
	matcher := testMatcher()

	result := matcher.CategorizeDisposition("zzz flurble")

	if result.Category != model.CategoryUnknown {
		t.Errorf("Expected unknown category, got %s", result.Category)
	}
	if result.Confidence >= 35 {
		t.Errorf("Expected low confidence for unrecognized label, got %d", result.Confidence)
	}
}

func TestMatcher_EmptyLabel(t *testing.T) {
	matcher := testMatcher()

	result := matcher.CategorizeDisposition("")

	if result.Category != model.CategoryUnknown {
		t.Errorf("Expected unknown category for empty label, got %s", result.Category)
	}
	if result.Confidence != 0 {
		t.Errorf("Expected confidence 0 for empty label, got %d", result.Confidence)
	}
}

func TestMatcher_AmbiguousLabel(t *testing.T) {
	cfg := model.SemanticConfig{
		Exemplars: map[string][]string{
			string(model.CategoryPositiveOutcome): {"closed deal done"},
			string(model.CategoryQualifiedLead):   {"closed deal ready"},
		},
		AmbiguityTolerance: 0.10,
		MinScore:           0.35,
	}
	matcher := NewMatcher(cfg, nil)

	// Equal Jaccard overlap with both categories
	result := matcher.CategorizeDisposition("closed deal")

	if !result.IsAmbiguous {
		t.Fatal("Expected ambiguous result for label near two categories")
	}
	if len(result.SuggestedCategories) < 2 {
		t.Fatalf("Expected at least 2 suggested categories, got %d", len(result.SuggestedCategories))
	}
	if result.SuggestedCategories[0] != result.Category {
		t.Error("Expected the top category first in suggestions")
	}

	// An ambiguous label matches any of its suggested categories
	for _, cat := range result.SuggestedCategories {
		matches, _ := matcher.MatchesCategory("closed deal", cat)
		if !matches {
			t.Errorf("Expected ambiguous label to match suggested category %s", cat)
		}
	}
}

func TestMatcher_Memoization(t *testing.T) {
	memo := cache.NewMemoryCache(time.Minute, time.Minute)
	matcher := NewMatcher(model.DefaultConfig().Semantic, memo)

	first := matcher.CategorizeDisposition("Sale Made")
	second := matcher.CategorizeDisposition("Sale Made")

	if first.Category != second.Category || first.Confidence != second.Confidence {
		t.Errorf("Expected identical results from memoized lookup: %+v vs %+v", first, second)
	}
	if first.Category != model.CategoryPositiveOutcome {
		t.Errorf("Expected positive_outcome, got %s", first.Category)
	}
}

func TestSimilarity(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"sale made", "sale made", 1.0},
		{"customer requested callback", "callback", 0.85},
		{"no overlap here", "totally different", 0},
	}
	for _, c := range cases {
		if got := similarity(c.a, c.b); got != c.want {
			t.Errorf("similarity(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
