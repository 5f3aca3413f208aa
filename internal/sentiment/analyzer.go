package sentiment

import (
	"math"
	"sort"
	"strings"

	"github.com/stratusdial/convoiq/internal/model"
	"github.com/stratusdial/convoiq/internal/normalize"
)

// Analyzer scores interaction text against positive/negative keyword lexicons.
// It holds only immutable configuration and is safe for concurrent use.
type Analyzer struct {
	cfg model.LexiconConfig
}

// NewAnalyzer creates a new sentiment analyzer
func NewAnalyzer(cfg model.LexiconConfig) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze classifies a single piece of text. Empty or whitespace-only text
// yields neutral with confidence 0, never an error. Custom keyword sets are
// merged with the configured lexicons for this call only.
func (a *Analyzer) Analyze(text string, custom ...model.KeywordSet) model.SentimentResult {
	canon, tokens := normalize.Prepare(text, a.cfg.Abbreviations)
	if canon == "" {
		return model.SentimentResult{
			Sentiment:  model.SentimentNeutral,
			Confidence: 0,
		}
	}

	positive := a.cfg.PositiveKeywords
	negative := a.cfg.NegativeKeywords
	for _, set := range custom {
		if len(set.Positive) > 0 {
			positive = append(append([]string{}, positive...), set.Positive...)
		}
		if len(set.Negative) > 0 {
			negative = append(append([]string{}, negative...), set.Negative...)
		}
	}

	// Negative phrases first: a positive keyword embedded in a longer matched
	// negative phrase ("interested" inside "not interested") is not a
	// positive hit.
	var detected []model.DetectedKeyword
	negativeHits := matchKeywords(canon, negative)
	positiveHits := matchKeywords(canon, positive)
	positiveHits = suppressEmbedded(positiveHits, negativeHits)

	for _, kw := range positiveHits {
		detected = append(detected, model.DetectedKeyword{Keyword: kw, Polarity: model.PolarityPositive})
	}
	for _, kw := range negativeHits {
		detected = append(detected, model.DetectedKeyword{Keyword: kw, Polarity: model.PolarityNegative})
	}

	net := len(positiveHits) - len(negativeHits)
	label := model.SentimentNeutral
	if net > 0 {
		label = model.SentimentPositive
	} else if net < 0 {
		label = model.SentimentNegative
	}

	return model.SentimentResult{
		Sentiment:        label,
		Confidence:       confidence(net, len(positiveHits)+len(negativeHits), len(tokens)),
		DetectedKeywords: detected,
		IsMixedSentiment: len(positiveHits) >= 1 && len(negativeHits) >= 1,
		DominantEmotion:  a.dominantEmotion(canon),
	}
}

// confidence derives an integer confidence in [0,100] from hit magnitude and
// hit density. The exact curve is a tunable heuristic; the invariants are the
// range and that it grows with |net| and density.
// Formula: 30 + 12*|net| + min(hits/words * 100, 25), clamped to [0,100].
// Zero hits on non-empty text stay at the neutral floor of 30.
func confidence(net, totalHits, words int) int {
	if totalHits == 0 {
		return 30
	}
	density := float64(totalHits) / float64(words)
	c := 30 + 12*abs(net) + int(math.Min(density*100, 25))
	if c > 100 {
		c = 100
	}
	if c < 0 {
		c = 0
	}
	return c
}

// matchKeywords returns the lexicon entries present in the canonical text,
// each recorded once, in lexicon order
func matchKeywords(canon string, lexicon []string) []string {
	var hits []string
	seen := make(map[string]bool)
	for _, kw := range lexicon {
		key := normalize.Canonical(kw)
		if key == "" || seen[key] {
			continue
		}
		if normalize.ContainsPhrase(canon, key) {
			seen[key] = true
			hits = append(hits, key)
		}
	}
	return hits
}

// suppressEmbedded drops positive hits that only occur as part of a longer
// matched negative phrase
func suppressEmbedded(positiveHits, negativeHits []string) []string {
	if len(positiveHits) == 0 || len(negativeHits) == 0 {
		return positiveHits
	}
	var kept []string
	for _, p := range positiveHits {
		embedded := false
		for _, n := range negativeHits {
			if len(n) > len(p) && strings.Contains(" "+n+" ", " "+p+" ") {
				embedded = true
				break
			}
		}
		if !embedded {
			kept = append(kept, p)
		}
	}
	return kept
}

// dominantEmotion returns the emotion tag with the most keyword hits, or ""
// when nothing matches. Ties resolve to the lexicographically first tag so
// repeated runs stay deterministic.
func (a *Analyzer) dominantEmotion(canon string) string {
	if len(a.cfg.Emotions) == 0 {
		return ""
	}

	names := make([]string, 0, len(a.cfg.Emotions))
	for name := range a.cfg.Emotions {
		names = append(names, name)
	}
	sort.Strings(names)

	best := ""
	bestHits := 0
	for _, name := range names {
		hits := 0
		for _, kw := range a.cfg.Emotions[name] {
			if normalize.ContainsPhrase(canon, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best = name
			bestHits = hits
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
