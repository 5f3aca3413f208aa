package model

import "time"

// Interaction is one inbound piece of interaction content to analyze
type Interaction struct {
	ContactID           string `json:"contact_id,omitempty"`
	Channel             string `json:"channel,omitempty"` // call, sms, email
	Text                string `json:"text"`
	DispositionLabel    string `json:"disposition_label,omitempty"`    // e.g. "Interested"
	DispositionCategory string `json:"disposition_category,omitempty"` // human-entered: positive, negative, neutral, callback
}

// RuleEvaluation pairs an automation rule with its evaluation outcome
type RuleEvaluation struct {
	RuleID           string                  `json:"rule_id"`
	RuleName         string                  `json:"rule_name"`
	Result           TriggerEvaluationResult `json:"result"`
	Dispatched       bool                    `json:"dispatched"`
	SuppressedReason string                  `json:"suppressed_reason,omitempty"`
}

// Report is the complete analysis output for one interaction
type Report struct {
	EvaluationID string      `json:"evaluation_id"`
	Interaction  Interaction `json:"interaction"`
	AnalyzedAt   time.Time   `json:"analyzed_at"`

	Sentiment   SentimentResult          `json:"sentiment"`
	Intent      *IntentResult            `json:"intent,omitempty"`
	Disposition *SemanticCategoryResult  `json:"disposition,omitempty"`
	Profile     *ContactSentimentProfile `json:"profile,omitempty"`

	Evaluations []RuleEvaluation `json:"evaluations,omitempty"`

	LLM *Narrative `json:"llm,omitempty"` // optional narrative, never affects decisions
}

// Narrative is an optional LLM-generated compliance narrative.
// It is produced after evaluation and can never change a decision.
type Narrative struct {
	Enabled     bool     `json:"enabled"`
	Provider    string   `json:"provider,omitempty"`
	Model       string   `json:"model,omitempty"`
	NarrativeMD string   `json:"narrative_md,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Triggered reports whether any rule evaluation in the report fired
func (r *Report) Triggered() bool {
	for _, e := range r.Evaluations {
		if e.Result.Triggered {
			return true
		}
	}
	return false
}

// TriggeredEvaluations returns the rule evaluations that fired
func (r *Report) TriggeredEvaluations() []RuleEvaluation {
	var fired []RuleEvaluation
	for _, e := range r.Evaluations {
		if e.Result.Triggered {
			fired = append(fired, e)
		}
	}
	return fired
}
