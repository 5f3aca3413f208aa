package model

import "time"

// ConditionType selects which field of the analysis context a leaf tests
type ConditionType string

const (
	ConditionSentiment        ConditionType = "sentiment"
	ConditionIntent           ConditionType = "intent"
	ConditionSemanticCategory ConditionType = "semantic_category"
)

// LogicOperator combines child conditions in a group node
type LogicOperator string

const (
	LogicAnd LogicOperator = "AND"
	LogicOr  LogicOperator = "OR"
)

// TriggerCondition is one node of a condition tree. A node is either a group
// (Logic + Conditions) or a leaf (Type + Value + ConfidenceThreshold); the
// evaluator treats a bare leaf as a single-condition AND.
type TriggerCondition struct {
	// Group fields
	Logic      LogicOperator      `json:"logic,omitempty" yaml:"logic,omitempty"`
	Conditions []TriggerCondition `json:"conditions,omitempty" yaml:"conditions,omitempty"`

	// Leaf fields
	Type                ConditionType `json:"type,omitempty" yaml:"type,omitempty"`
	Value               string        `json:"value,omitempty" yaml:"value,omitempty"`
	ConfidenceThreshold int           `json:"confidence_threshold,omitempty" yaml:"confidence_threshold,omitempty"`
}

// IsGroup reports whether the node carries children instead of a predicate
func (c *TriggerCondition) IsGroup() bool {
	return c.Logic != "" || len(c.Conditions) > 0
}

// MatchedCondition records a leaf that passed, for the audit trail
type MatchedCondition struct {
	Type       ConditionType `json:"type"`
	Value      string        `json:"value"`
	Confidence int           `json:"confidence"`
}

// FailedCondition records a leaf that failed and why. Failed leaves are never
// silently dropped; compliance review needs the full trail.
type FailedCondition struct {
	Type       ConditionType `json:"type"`
	Value      string        `json:"value,omitempty"`
	Confidence int           `json:"confidence"`
	Threshold  int           `json:"threshold"`
	Reason     string        `json:"reason"`
}

// TriggerEvaluationResult is the write-once outcome of one tree evaluation
type TriggerEvaluationResult struct {
	EvaluationID      string                `json:"evaluation_id"`
	Triggered         bool                  `json:"triggered"`
	MatchedConditions []MatchedCondition    `json:"matched_conditions,omitempty"`
	FailedConditions  []FailedCondition     `json:"failed_conditions,omitempty"`
	ConfidenceScores  map[ConditionType]int `json:"confidence_scores,omitempty"`
	EvaluatedAt       time.Time             `json:"evaluated_at"`
}

// AutomationRule binds a condition tree to a configured automation.
// Rules are externally authored configuration; this core only evaluates them.
type AutomationRule struct {
	ID        string            `json:"id" yaml:"id"`
	Name      string            `json:"name" yaml:"name"`
	Channel   string            `json:"channel,omitempty" yaml:"channel,omitempty"` // empty = any channel
	Priority  int               `json:"priority" yaml:"priority"`
	Active    bool              `json:"active" yaml:"active"`
	Cooldown  time.Duration     `json:"cooldown,omitempty" yaml:"cooldown,omitempty"` // 0 = no cooldown
	Condition *TriggerCondition `json:"condition" yaml:"condition"`
}
