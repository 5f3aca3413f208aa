package trigger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stratusdial/convoiq/internal/model"
)

// Evaluator walks a condition tree against an analysis context and produces a
// fully auditable result. It always returns a well-formed result: malformed
// nodes fail deterministically with a recorded reason, never a panic or an
// aborted walk, because the output feeds compliance logs.
type Evaluator struct{}

// NewEvaluator creates a new trigger evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate runs the condition tree against the context. A bare leaf is
// treated as a single-condition AND; a nil tree never triggers.
func (e *Evaluator) Evaluate(cond *model.TriggerCondition, ctx model.AnalysisContext) model.TriggerEvaluationResult {
	result := model.TriggerEvaluationResult{
		EvaluationID:     uuid.NewString(),
		ConfidenceScores: make(map[model.ConditionType]int),
		EvaluatedAt:      time.Now().UTC(),
	}

	if cond == nil {
		result.FailedConditions = append(result.FailedConditions, model.FailedCondition{
			Reason: "missing condition tree",
		})
		return result
	}

	result.Triggered = e.walk(cond, ctx, &result)
	return result
}

// walk evaluates one node, recording every leaf outcome on the result
func (e *Evaluator) walk(cond *model.TriggerCondition, ctx model.AnalysisContext, result *model.TriggerEvaluationResult) bool {
	if !cond.IsGroup() {
		return e.evalLeaf(cond, ctx, result)
	}

	if len(cond.Conditions) == 0 {
		result.FailedConditions = append(result.FailedConditions, model.FailedCondition{
			Reason: fmt.Sprintf("group node %q has no conditions", cond.Logic),
		})
		return false
	}

	logic := model.LogicOperator(strings.ToUpper(string(cond.Logic)))
	if logic == "" {
		logic = model.LogicAnd
	}

	switch logic {
	case model.LogicAnd:
		// Every child is evaluated even after a failure so the audit trail
		// stays complete.
		all := true
		for i := range cond.Conditions {
			if !e.walk(&cond.Conditions[i], ctx, result) {
				all = false
			}
		}
		return all
	case model.LogicOr:
		any := false
		for i := range cond.Conditions {
			if e.walk(&cond.Conditions[i], ctx, result) {
				any = true
			}
		}
		return any
	default:
		result.FailedConditions = append(result.FailedConditions, model.FailedCondition{
			Reason: fmt.Sprintf("unknown logic operator %q", cond.Logic),
		})
		return false
	}
}

// evalLeaf checks one predicate against the context. A leaf passes when its
// value matches and the observed confidence meets the threshold (inclusive).
func (e *Evaluator) evalLeaf(cond *model.TriggerCondition, ctx model.AnalysisContext, result *model.TriggerEvaluationResult) bool {
	fail := func(observed int, reason string) bool {
		result.FailedConditions = append(result.FailedConditions, model.FailedCondition{
			Type:       cond.Type,
			Value:      cond.Value,
			Confidence: observed,
			Threshold:  cond.ConfidenceThreshold,
			Reason:     reason,
		})
		return false
	}

	if cond.Type == "" {
		return fail(0, "leaf condition has no type")
	}
	if cond.Value == "" {
		return fail(0, fmt.Sprintf("condition type %q has no value", cond.Type))
	}
	if cond.ConfidenceThreshold < 0 || cond.ConfidenceThreshold > 100 {
		return fail(0, fmt.Sprintf("confidence threshold %d outside [0,100]", cond.ConfidenceThreshold))
	}

	var observed int
	var matches bool

	switch cond.Type {
	case model.ConditionSentiment:
		observed = ctx.Sentiment.Confidence
		matches = string(ctx.Sentiment.Sentiment) == strings.ToLower(cond.Value)

	case model.ConditionIntent:
		if ctx.Intent == nil {
			return fail(0, "no intent result in context")
		}
		observed = ctx.Intent.ConfidenceScore
		matches = string(ctx.Intent.PrimaryIntent) == strings.ToLower(cond.Value)

	case model.ConditionSemanticCategory:
		if ctx.Disposition == nil {
			return fail(0, "no disposition category in context")
		}
		observed = ctx.Disposition.Confidence
		matches = string(ctx.Disposition.Category) == strings.ToLower(cond.Value)

	default:
		return fail(0, fmt.Sprintf("unknown condition type %q", cond.Type))
	}

	// Audit queries ask "how confident were we about X at best", so the map
	// keeps the highest observed confidence per type, pass or fail.
	if prev, ok := result.ConfidenceScores[cond.Type]; !ok || observed > prev {
		result.ConfidenceScores[cond.Type] = observed
	}

	if !matches {
		return fail(observed, "value mismatch")
	}
	if observed < cond.ConfidenceThreshold {
		return fail(observed, "confidence below threshold")
	}

	result.MatchedConditions = append(result.MatchedConditions, model.MatchedCondition{
		Type:       cond.Type,
		Value:      cond.Value,
		Confidence: observed,
	})
	return true
}
