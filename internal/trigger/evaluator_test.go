package trigger

import (
	"strings"
	"testing"

	"github.com/stratusdial/convoiq/internal/model"
)

func testContext() model.AnalysisContext {
	return model.AnalysisContext{
		Sentiment: model.SentimentResult{
			Sentiment:  model.SentimentPositive,
			Confidence: 70,
		},
		Intent: &model.IntentResult{
			PrimaryIntent:   model.IntentPurchase,
			ConfidenceScore: 80,
		},
		Disposition: &model.SemanticCategoryResult{
			Category:   model.CategoryPositiveOutcome,
			Confidence: 90,
		},
	}
}

func leaf(typ model.ConditionType, value string, threshold int) model.TriggerCondition {
	return model.TriggerCondition{Type: typ, Value: value, ConfidenceThreshold: threshold}
}

func TestEvaluator_BareLeafPasses(t *testing.T) {
	e := NewEvaluator()

	cond := leaf(model.ConditionSentiment, "positive", 60)
	result := e.Evaluate(&cond, testContext())

	if !result.Triggered {
		t.Fatal("Expected leaf to trigger")
	}
	if len(result.MatchedConditions) != 1 {
		t.Errorf("Expected 1 matched condition, got %d", len(result.MatchedConditions))
	}
	if result.EvaluationID == "" {
		t.Error("Expected a non-empty evaluation id")
	}
}

func TestEvaluator_ThresholdInclusive(t *testing.T) {
	e := NewEvaluator()
	ctx := testContext() // sentiment confidence 70

	cases := []struct {
		threshold int
		triggered bool
	}{
		{69, true},
		{70, true}, // meeting the threshold exactly passes
		{71, false},
	}
	for _, c := range cases {
		cond := leaf(model.ConditionSentiment, "positive", c.threshold)
		result := e.Evaluate(&cond, ctx)
		if result.Triggered != c.triggered {
			t.Errorf("threshold %d: expected triggered=%v, got %v", c.threshold, c.triggered, result.Triggered)
		}
	}
}

func TestEvaluator_ValueMismatch(t *testing.T) {
	e := NewEvaluator()

	cond := leaf(model.ConditionSentiment, "negative", 0)
	result := e.Evaluate(&cond, testContext())

	if result.Triggered {
		t.Fatal("Expected no trigger on value mismatch")
	}
	if len(result.FailedConditions) != 1 {
		t.Fatalf("Expected 1 failed condition, got %d", len(result.FailedConditions))
	}
	if result.FailedConditions[0].Reason != "value mismatch" {
		t.Errorf("Expected 'value mismatch' reason, got %q", result.FailedConditions[0].Reason)
	}
}

func TestEvaluator_AndRequiresAll(t *testing.T) {
	e := NewEvaluator()

	cond := &model.TriggerCondition{
		Logic: model.LogicAnd,
		Conditions: []model.TriggerCondition{
			leaf(model.ConditionSentiment, "positive", 60),
			leaf(model.ConditionIntent, "complaint", 0), // mismatch
		},
	}

	result := e.Evaluate(cond, testContext())
	if result.Triggered {
		t.Fatal("Expected AND with one failing child not to trigger")
	}
	// The passing child is still recorded for the audit trail
	if len(result.MatchedConditions) != 1 {
		t.Errorf("Expected the passing sibling recorded, got %d matched", len(result.MatchedConditions))
	}
	if len(result.FailedConditions) != 1 {
		t.Errorf("Expected the failing sibling recorded, got %d failed", len(result.FailedConditions))
	}
}

func TestEvaluator_OrRequiresAny(t *testing.T) {
	e := NewEvaluator()

	cond := &model.TriggerCondition{
		Logic: model.LogicOr,
		Conditions: []model.TriggerCondition{
			leaf(model.ConditionSentiment, "negative", 0), // mismatch
			leaf(model.ConditionIntent, "purchase_intent", 50),
		},
	}

	result := e.Evaluate(cond, testContext())
	if !result.Triggered {
		t.Fatal("Expected OR with one passing child to trigger")
	}
	if len(result.FailedConditions) != 1 {
		t.Errorf("Expected the failing sibling recorded, got %d failed", len(result.FailedConditions))
	}
}

func TestEvaluator_NestedTree(t *testing.T) {
	e := NewEvaluator()

	cond := &model.TriggerCondition{
		Logic: model.LogicAnd,
		Conditions: []model.TriggerCondition{
			leaf(model.ConditionSentiment, "positive", 60),
			{
				Logic: model.LogicOr,
				Conditions: []model.TriggerCondition{
					leaf(model.ConditionIntent, "complaint", 0),
					leaf(model.ConditionSemanticCategory, "positive_outcome", 80),
				},
			},
		},
	}

	result := e.Evaluate(cond, testContext())
	if !result.Triggered {
		t.Error("Expected nested AND(leaf, OR(fail, pass)) to trigger")
	}
}

func TestEvaluator_NilTree(t *testing.T) {
	e := NewEvaluator()

	result := e.Evaluate(nil, testContext())
	if result.Triggered {
		t.Fatal("Expected nil tree not to trigger")
	}
	if len(result.FailedConditions) != 1 || !strings.Contains(result.FailedConditions[0].Reason, "missing condition tree") {
		t.Errorf("Expected recorded reason for nil tree, got %+v", result.FailedConditions)
	}
}

func TestEvaluator_EmptyGroup(t *testing.T) {
	e := NewEvaluator()

	cond := &model.TriggerCondition{Logic: model.LogicAnd}
	result := e.Evaluate(cond, testContext())

	if result.Triggered {
		t.Fatal("Expected empty group not to trigger")
	}
	if len(result.FailedConditions) == 0 {
		t.Error("Expected empty group failure recorded")
	}
}

func TestEvaluator_UnknownLogic(t *testing.T) {
	e := NewEvaluator()

	cond := &model.TriggerCondition{
		Logic:      model.LogicOperator("XOR"),
		Conditions: []model.TriggerCondition{leaf(model.ConditionSentiment, "positive", 0)},
	}
	result := e.Evaluate(cond, testContext())

	if result.Triggered {
		t.Fatal("Expected unknown logic operator not to trigger")
	}
	if len(result.FailedConditions) == 0 || !strings.Contains(result.FailedConditions[0].Reason, "unknown logic operator") {
		t.Errorf("Expected unknown-operator reason, got %+v", result.FailedConditions)
	}
}

func TestEvaluator_MalformedLeaf(t *testing.T) {
	e := NewEvaluator()
	ctx := testContext()

	cases := []struct {
		name string
		cond model.TriggerCondition
		want string
	}{
		{"unknown type", leaf(model.ConditionType("weather"), "sunny", 0), "unknown condition type"},
		{"missing value", leaf(model.ConditionSentiment, "", 0), "has no value"},
		{"threshold out of range", leaf(model.ConditionSentiment, "positive", 101), "outside [0,100]"},
	}
	for _, c := range cases {
		result := e.Evaluate(&c.cond, ctx)
		if result.Triggered {
			t.Errorf("%s: expected no trigger", c.name)
		}
		if len(result.FailedConditions) != 1 || !strings.Contains(result.FailedConditions[0].Reason, c.want) {
			t.Errorf("%s: expected reason containing %q, got %+v", c.name, c.want, result.FailedConditions)
		}
	}
}

func TestEvaluator_MissingContextPieces(t *testing.T) {
	e := NewEvaluator()
	ctx := model.AnalysisContext{
		Sentiment: model.SentimentResult{Sentiment: model.SentimentNeutral, Confidence: 30},
	}

	cond := leaf(model.ConditionIntent, "purchase_intent", 0)
	result := e.Evaluate(&cond, ctx)
	if result.Triggered {
		t.Fatal("Expected no trigger without an intent result")
	}
	if !strings.Contains(result.FailedConditions[0].Reason, "no intent result") {
		t.Errorf("Expected missing-intent reason, got %q", result.FailedConditions[0].Reason)
	}

	cond = leaf(model.ConditionSemanticCategory, "positive_outcome", 0)
	result = e.Evaluate(&cond, ctx)
	if result.Triggered {
		t.Fatal("Expected no trigger without a disposition")
	}
}

func TestEvaluator_ConfidenceScoresRecorded(t *testing.T) {
	e := NewEvaluator()

	cond := &model.TriggerCondition{
		Logic: model.LogicAnd,
		Conditions: []model.TriggerCondition{
			leaf(model.ConditionSentiment, "positive", 60),
			leaf(model.ConditionIntent, "complaint", 0), // fails, confidence still recorded
		},
	}

	result := e.Evaluate(cond, testContext())

	if got := result.ConfidenceScores[model.ConditionSentiment]; got != 70 {
		t.Errorf("Expected sentiment confidence 70 recorded, got %d", got)
	}
	if got := result.ConfidenceScores[model.ConditionIntent]; got != 80 {
		t.Errorf("Expected intent confidence 80 recorded despite the failure, got %d", got)
	}
}
