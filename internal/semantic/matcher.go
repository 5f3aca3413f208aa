package semantic

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/stratusdial/convoiq/internal/cache"
	"github.com/stratusdial/convoiq/internal/model"
	"github.com/stratusdial/convoiq/internal/normalize"
)

// Matcher maps free-form disposition labels onto the fixed semantic category
// taxonomy. Two labels that land in the same category behave identically for
// trigger matching, independent of their literal text.
type Matcher struct {
	exemplars   map[model.SemanticCategory][]string // canonicalized phrases
	tolerance   float64
	minScore    float64
	memo        cache.Cache // optional, nil disables memoization
	fingerprint string
}

// NewMatcher creates a matcher from configuration. The optional cache
// memoizes categorization for repeated labels.
func NewMatcher(cfg model.SemanticConfig, memo cache.Cache) *Matcher {
	tolerance := cfg.AmbiguityTolerance
	if tolerance <= 0 {
		tolerance = 0.10
	}
	minScore := cfg.MinScore
	if minScore <= 0 {
		minScore = 0.35
	}

	exemplars := make(map[model.SemanticCategory][]string, len(cfg.Exemplars))
	var fpParts []string
	for name, phrases := range cfg.Exemplars {
		cat := model.SemanticCategory(name)
		canonical := make([]string, 0, len(phrases))
		for _, p := range phrases {
			if c := normalize.Canonical(p); c != "" {
				canonical = append(canonical, c)
			}
		}
		exemplars[cat] = canonical
		fpParts = append(fpParts, name+":"+strings.Join(canonical, ","))
	}

	return &Matcher{
		exemplars:   exemplars,
		tolerance:   tolerance,
		minScore:    minScore,
		memo:        memo,
		fingerprint: cache.Fingerprint(fpParts...),
	}
}

// CategorizeDisposition scores a label against every category's exemplars and
// returns the best category. Unrecognized labels map to unknown with low
// confidence rather than erroring.
func (m *Matcher) CategorizeDisposition(label string) model.SemanticCategoryResult {
	canon := normalize.Canonical(label)
	if canon == "" {
		return model.SemanticCategoryResult{Category: model.CategoryUnknown, Confidence: 0}
	}

	if m.memo != nil {
		key := cache.Key("disposition", m.fingerprint, canon)
		if data, ok := m.memo.Get(key); ok {
			var cached model.SemanticCategoryResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
		}
		result := m.categorize(canon)
		if data, err := json.Marshal(result); err == nil {
			_ = m.memo.Set(key, data, 24*time.Hour)
		}
		return result
	}

	return m.categorize(canon)
}

// MatchesCategory reports whether a label belongs to the given category,
// along with the confidence of that specific comparison. Labels mapped to the
// same category always agree here.
func (m *Matcher) MatchesCategory(label string, cat model.SemanticCategory) (bool, int) {
	result := m.CategorizeDisposition(label)

	matches := result.Category == cat
	if !matches && result.IsAmbiguous {
		for _, suggested := range result.SuggestedCategories {
			if suggested == cat {
				matches = true
				break
			}
		}
	}
	if !matches {
		return false, result.Confidence
	}

	canon := normalize.Canonical(label)
	score := m.categoryScore(canon, cat)
	return true, int(math.Round(score * 100))
}

func (m *Matcher) categorize(canon string) model.SemanticCategoryResult {
	type scored struct {
		cat   model.SemanticCategory
		score float64
	}

	var ranked []scored
	for _, cat := range model.SemanticCategories() {
		if score := m.categoryScore(canon, cat); score > 0 {
			ranked = append(ranked, scored{cat: cat, score: score})
		}
	}

	if len(ranked) == 0 {
		return model.SemanticCategoryResult{Category: model.CategoryUnknown, Confidence: 10}
	}

	// Stable order: best score first, taxonomy order breaks ties
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].score > ranked[j-1].score; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	top := ranked[0]
	if top.score < m.minScore {
		return model.SemanticCategoryResult{
			Category:   model.CategoryUnknown,
			Confidence: int(math.Round(top.score * 100)),
		}
	}

	result := model.SemanticCategoryResult{
		Category:   top.cat,
		Confidence: int(math.Round(top.score * 100)),
	}

	for _, other := range ranked[1:] {
		if top.score-other.score <= m.tolerance {
			result.SuggestedCategories = append(result.SuggestedCategories, other.cat)
		}
	}
	if len(result.SuggestedCategories) > 0 {
		result.IsAmbiguous = true
		result.SuggestedCategories = append([]model.SemanticCategory{top.cat}, result.SuggestedCategories...)
	}

	return result
}

// categoryScore is the best exemplar similarity for a category
func (m *Matcher) categoryScore(canon string, cat model.SemanticCategory) float64 {
	best := 0.0
	for _, exemplar := range m.exemplars[cat] {
		if s := similarity(canon, exemplar); s > best {
			best = s
		}
	}
	return best
}

// similarity compares two canonical phrases: exact match 1.0, containment
// 0.85, otherwise token overlap (Jaccard)
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if normalize.ContainsPhrase(a, b) || normalize.ContainsPhrase(b, a) {
		return 0.85
	}

	aTokens := strings.Split(a, " ")
	bTokens := strings.Split(b, " ")

	set := make(map[string]bool, len(aTokens))
	for _, t := range aTokens {
		set[t] = true
	}

	shared := 0
	for _, t := range bTokens {
		if set[t] {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}

	union := len(set)
	for _, t := range bTokens {
		if !set[t] {
			union++
		}
	}

	return float64(shared) / float64(union)
}
