package aggregate

import (
	"testing"

	"github.com/stratusdial/convoiq/internal/model"
)

func testAggregator() *Aggregator {
	return NewAggregator(model.AggregationConfig{
		ChangeThreshold: 30,
		MinTrendPoints:  3,
		SlopeThreshold:  5,
		MaxHistory:      50,
	})
}

func record(sentiment model.SentimentLabel, confidence int) model.SentimentResult {
	return model.SentimentResult{Sentiment: sentiment, Confidence: confidence}
}

func TestAggregator_FirstInteraction(t *testing.T) {
	agg := testAggregator()

	profile := agg.RecordInteraction(nil, record(model.SentimentPositive, 80), "c-1", "sms")

	if profile.ContactID != "c-1" {
		t.Errorf("Expected contact id c-1, got %s", profile.ContactID)
	}
	if profile.OverallScore != 100 {
		t.Errorf("Expected score 100 for single positive record, got %d", profile.OverallScore)
	}
	if profile.SentimentChangeFlag {
		t.Error("Expected no change flag on the first interaction")
	}
	if profile.Trend != model.TrendInsufficientData {
		t.Errorf("Expected insufficient_data with one point, got %s", profile.Trend)
	}
	if len(profile.History) != 1 {
		t.Errorf("Expected 1 history record, got %d", len(profile.History))
	}
}

func TestAggregator_EqualConfidenceBalancesToNeutral(t *testing.T) {
	agg := testAggregator()

	profile := agg.RecordInteraction(nil, record(model.SentimentPositive, 100), "c-1", "sms")
	profile = agg.RecordInteraction(profile, record(model.SentimentNegative, 90), "c-1", "sms")

	// 100*1.0 + 0*0.9 over 1.9 weights = ~53
	if profile.OverallScore < 49 || profile.OverallScore > 55 {
		t.Errorf("Expected near-neutral score for balanced records, got %d", profile.OverallScore)
	}
}

func TestAggregator_ConfidenceWeighting(t *testing.T) {
	agg := testAggregator()

	profile := agg.RecordInteraction(nil, record(model.SentimentPositive, 100), "c-1", "sms")
	profile = agg.RecordInteraction(profile, record(model.SentimentNegative, 10), "c-1", "sms")

	// The low-confidence negative barely moves the average
	if profile.OverallScore <= 70 {
		t.Errorf("Expected high-confidence positive to dominate, got %d", profile.OverallScore)
	}
}

func TestAggregator_ZeroWeightsDefaultNeutral(t *testing.T) {
	agg := testAggregator()

	profile := agg.RecordInteraction(nil, record(model.SentimentNeutral, 0), "c-1", "sms")

	if profile.OverallScore != 50 {
		t.Errorf("Expected neutral 50 when all weights are zero, got %d", profile.OverallScore)
	}
}

func TestAggregator_ChangeFlagInclusiveThreshold(t *testing.T) {
	// First record positive at confidence P, second negative at 100-P: total
	// weight 1.0, so the new score is exactly P and the delta from the
	// baseline 100 is exactly 100-P.
	cases := []struct {
		firstConf int
		delta     int
		flagged   bool
	}{
		{71, 29, false},
		{70, 30, true}, // threshold is inclusive
		{69, 31, true},
	}

	for _, c := range cases {
		agg := testAggregator()

		profile := agg.RecordInteraction(nil, record(model.SentimentPositive, c.firstConf), "c-1", "sms")
		if profile.OverallScore != 100 {
			t.Fatalf("Expected baseline 100, got %d", profile.OverallScore)
		}
		profile = agg.RecordInteraction(profile, record(model.SentimentNegative, 100-c.firstConf), "c-1", "sms")

		if got := 100 - profile.OverallScore; got != c.delta {
			t.Fatalf("Expected delta %d, got %d", c.delta, got)
		}
		if profile.SentimentChangeFlag != c.flagged {
			t.Errorf("delta %d: expected flag %v, got %v", c.delta, c.flagged, profile.SentimentChangeFlag)
		}
	}
}

func TestAggregator_TrendImproving(t *testing.T) {
	agg := testAggregator()

	trend := agg.ComputeTrend([]float64{20, 40, 60, 80})
	if trend != model.TrendImproving {
		t.Errorf("Expected improving trend, got %s", trend)
	}
}

func TestAggregator_TrendDeclining(t *testing.T) {
	agg := testAggregator()

	trend := agg.ComputeTrend([]float64{80, 60, 40, 20})
	if trend != model.TrendDeclining {
		t.Errorf("Expected declining trend, got %s", trend)
	}
}

func TestAggregator_TrendStable(t *testing.T) {
	agg := testAggregator()

	trend := agg.ComputeTrend([]float64{50, 52, 48, 51, 49})
	if trend != model.TrendStable {
		t.Errorf("Expected stable trend, got %s", trend)
	}
}

func TestAggregator_TrendInsufficientData(t *testing.T) {
	agg := testAggregator()

	for _, history := range [][]float64{nil, {50}, {50, 80}} {
		if trend := agg.ComputeTrend(history); trend != model.TrendInsufficientData {
			t.Errorf("Expected insufficient_data for %d points, got %s", len(history), trend)
		}
	}
}

func TestAggregator_MaxHistoryTrim(t *testing.T) {
	agg := NewAggregator(model.AggregationConfig{
		ChangeThreshold: 30,
		MinTrendPoints:  3,
		SlopeThreshold:  5,
		MaxHistory:      5,
	})

	var profile *model.ContactSentimentProfile
	for i := 0; i < 10; i++ {
		profile = agg.RecordInteraction(profile, record(model.SentimentPositive, 80), "c-1", "sms")
	}

	if len(profile.History) != 5 {
		t.Errorf("Expected history trimmed to 5, got %d", len(profile.History))
	}
}

func TestProfile_Clone(t *testing.T) {
	agg := testAggregator()

	profile := agg.RecordInteraction(nil, record(model.SentimentPositive, 80), "c-1", "sms")
	clone := profile.Clone()

	clone.History[0].Score = 0
	clone.OverallScore = 0

	if profile.History[0].Score == 0 {
		t.Error("Expected clone history to be independent of the original")
	}
	if profile.OverallScore == 0 {
		t.Error("Expected clone fields to be independent of the original")
	}
}
