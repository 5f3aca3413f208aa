package intent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stratusdial/convoiq/internal/model"
	"github.com/stratusdial/convoiq/internal/normalize"
	"github.com/stratusdial/convoiq/internal/sentiment"
)

// optOutConfidence is the fixed confidence assigned when an opt-out phrase is
// present. The phrase itself is near-certain; the small discount covers
// quoted or forwarded text.
const optOutConfidence = 95

// unknownConfidence is assigned when no pattern matches at all
const unknownConfidence = 20

// intentPriority is the stable tie-break order for equal confidences.
// Compliance-sensitive intents outrank commercial ones.
var intentPriority = []model.Intent{
	model.IntentOptOut,
	model.IntentComplaint,
	model.IntentPurchase,
	model.IntentCallback,
	model.IntentObjection,
	model.IntentQuestion,
	model.IntentReferral,
	model.IntentNotQualified,
	model.IntentUnknown,
}

// Detector matches interaction text against per-intent pattern sets.
// Configuration is immutable; the detector is safe for concurrent use.
type Detector struct {
	cfg      model.IntentConfig
	analyzer *sentiment.Analyzer
	abbrev   map[string]string
	rank     map[model.Intent]int
}

// NewDetector creates an intent detector. The sentiment analyzer is used to
// independently score note text when checking for disposition conflicts.
func NewDetector(cfg model.IntentConfig, analyzer *sentiment.Analyzer, abbreviations map[string]string) *Detector {
	rank := make(map[model.Intent]int, len(intentPriority))
	for i, in := range intentPriority {
		rank[in] = i
	}
	return &Detector{cfg: cfg, analyzer: analyzer, abbrev: abbreviations, rank: rank}
}

// DetectIntent classifies text into a primary intent plus ranked secondary
// intents. An opt-out phrase anywhere in the text forces opt_out regardless
// of any other match. The optional disposition label/category pair is checked
// against the independently computed sentiment of the text for conflicts.
func (d *Detector) DetectIntent(text, dispositionLabel, dispositionCategory string) model.IntentResult {
	scores := d.score(text)

	result := model.IntentResult{
		PrimaryIntent:   model.IntentUnknown,
		ConfidenceScore: unknownConfidence,
	}
	if len(scores) > 0 {
		result.PrimaryIntent = scores[0].Intent
		result.ConfidenceScore = scores[0].Confidence
		for _, s := range scores[1:] {
			if s.Confidence > result.ConfidenceScore {
				s.Confidence = result.ConfidenceScore
			}
			result.SecondaryIntents = append(result.SecondaryIntents, s)
		}
	}

	if conflict, reason := d.checkConflict(text, dispositionLabel, dispositionCategory); conflict {
		result.HasConflict = true
		result.ConflictReason = reason
	}

	return result
}

// DetectAllIntents returns every matching intent as its own result, ranked by
// confidence descending with the fixed priority order breaking ties
func (d *Detector) DetectAllIntents(text string) []model.IntentResult {
	scores := d.score(text)
	results := make([]model.IntentResult, 0, len(scores))
	for _, s := range scores {
		results = append(results, model.IntentResult{
			PrimaryIntent:   s.Intent,
			ConfidenceScore: s.Confidence,
		})
	}
	return results
}

// score produces the ranked intent scores for a text. Opt-out short-circuits
// all other pattern matching.
func (d *Detector) score(text string) []model.IntentScore {
	canon, _ := normalize.Prepare(text, d.abbrev)
	if canon == "" {
		return nil
	}

	for _, phrase := range d.cfg.OptOutPhrases {
		if normalize.ContainsPhrase(canon, phrase) {
			return []model.IntentScore{{Intent: model.IntentOptOut, Confidence: optOutConfidence}}
		}
	}

	var scores []model.IntentScore
	for name, phrases := range d.cfg.Patterns {
		in := model.Intent(name)
		hits := 0
		for _, phrase := range phrases {
			if normalize.ContainsPhrase(canon, phrase) {
				hits++
			}
		}
		// A trailing question mark counts as a question signal even though
		// canonicalization strips punctuation.
		if in == model.IntentQuestion && strings.Contains(text, "?") {
			hits++
		}
		if hits == 0 {
			continue
		}
		scores = append(scores, model.IntentScore{
			Intent:     in,
			Confidence: patternConfidence(hits),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Confidence != scores[j].Confidence {
			return scores[i].Confidence > scores[j].Confidence
		}
		return d.rank[scores[i].Intent] < d.rank[scores[j].Intent]
	})

	return scores
}

// patternConfidence maps a phrase hit count onto [0,100]:
// one phrase is a moderate signal, each extra phrase strengthens it.
func patternConfidence(hits int) int {
	c := 45 + 15*(hits-1)
	if c > 90 {
		c = 90
	}
	return c
}

// checkConflict flags a human-entered disposition category that contradicts
// the sentiment of the accompanying notes
func (d *Detector) checkConflict(text, label, category string) (bool, string) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || strings.TrimSpace(text) == "" {
		return false, ""
	}

	s := d.analyzer.Analyze(text)

	switch {
	case category == "positive" && s.Sentiment == model.SentimentNegative:
		return true, conflictReason(label, category, s)
	case category == "negative" && s.Sentiment == model.SentimentPositive:
		return true, conflictReason(label, category, s)
	}
	return false, ""
}

func conflictReason(label, category string, s model.SentimentResult) string {
	name := label
	if name == "" {
		name = category
	}
	return fmt.Sprintf("disposition %q is marked %s but the notes read as %s (confidence %d)",
		name, category, s.Sentiment, s.Confidence)
}
