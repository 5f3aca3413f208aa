package aggregate

import (
	"math"
	"time"

	"github.com/stratusdial/convoiq/internal/model"
)

// Aggregator rolls per-interaction sentiment results into a per-contact
// profile: a confidence-weighted overall score, a change flag, and a trend
// fitted over the score history.
type Aggregator struct {
	cfg model.AggregationConfig
}

// NewAggregator creates an aggregator. Zero-valued tuning fields fall back to
// the documented defaults (threshold 30, 3 trend points, slope 5).
func NewAggregator(cfg model.AggregationConfig) *Aggregator {
	if cfg.ChangeThreshold <= 0 {
		cfg.ChangeThreshold = 30
	}
	if cfg.MinTrendPoints <= 0 {
		cfg.MinTrendPoints = 3
	}
	if cfg.SlopeThreshold <= 0 {
		cfg.SlopeThreshold = 5
	}
	return &Aggregator{cfg: cfg}
}

// RecordInteraction folds one new sentiment result into the profile and
// returns the updated profile. A nil profile means this is the contact's
// first analyzed interaction. Callers must serialize concurrent updates for
// the same contact (the ProfileStore does this).
func (a *Aggregator) RecordInteraction(profile *model.ContactSentimentProfile, s model.SentimentResult, contactID, channel string) *model.ContactSentimentProfile {
	if profile == nil {
		profile = &model.ContactSentimentProfile{
			ContactID: contactID,
			Trend:     model.TrendInsufficientData,
		}
	}

	hadHistory := len(profile.History) > 0
	previousScore := profile.OverallScore

	profile.History = append(profile.History, model.SentimentRecord{
		Score:      s.Sentiment.Score(),
		Confidence: s.Confidence,
		Channel:    channel,
		RecordedAt: time.Now().UTC(),
	})
	if a.cfg.MaxHistory > 0 && len(profile.History) > a.cfg.MaxHistory {
		profile.History = profile.History[len(profile.History)-a.cfg.MaxHistory:]
	}

	profile.OverallScore = weightedScore(profile.History)

	// Change flag compares against the immediately preceding stored score;
	// the very first interaction has no baseline.
	profile.SentimentChangeFlag = hadHistory &&
		abs(profile.OverallScore-previousScore) >= a.cfg.ChangeThreshold

	scores := make([]float64, len(profile.History))
	for i, r := range profile.History {
		scores[i] = float64(r.Score)
	}
	profile.Trend = a.ComputeTrend(scores)
	profile.UpdatedAt = time.Now().UTC()

	return profile
}

// ComputeTrend fits an ordinary least-squares line over (index, score) pairs
// and classifies the slope. Fewer than the minimum points yields
// insufficient_data; a degenerate fit resolves to stable.
func (a *Aggregator) ComputeTrend(history []float64) model.Trend {
	n := len(history)
	if n < a.cfg.MinTrendPoints {
		return model.TrendInsufficientData
	}

	// slope = (n*Σxy - Σx*Σy) / (n*Σx² - (Σx)²) with x = 0..n-1
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range history {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		return model.TrendStable
	}

	slope := (float64(n)*sumXY - sumX*sumY) / denom
	switch {
	case slope > a.cfg.SlopeThreshold:
		return model.TrendImproving
	case slope < -a.cfg.SlopeThreshold:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}

// weightedScore is the confidence-weighted average of the history, rounded to
// the nearest integer. All-zero weights default to neutral 50.
func weightedScore(history []model.SentimentRecord) int {
	var weightedSum, weightSum float64
	for _, r := range history {
		w := float64(r.Confidence) / 100.0
		weightedSum += float64(r.Score) * w
		weightSum += w
	}
	if weightSum == 0 {
		return 50
	}
	return int(math.Round(weightedSum / weightSum))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
