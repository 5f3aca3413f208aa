package rules

import (
	"fmt"
	"strings"

	"github.com/stratusdial/convoiq/internal/model"
)

// ValidationError collects every configuration problem found during
// acceptance. Configuration is rejected up front so evaluation never
// discovers an invalid weight or unknown condition type mid-walk.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration (%d problems): %s",
		len(e.Problems), strings.Join(e.Problems, "; "))
}

// ValidateConfig checks the full configuration, returning a *ValidationError
// listing every problem, or nil when the configuration is acceptable
func ValidateConfig(cfg *model.Config) error {
	if cfg == nil {
		return &ValidationError{Problems: []string{"configuration is nil"}}
	}

	var problems []string

	for name := range cfg.Intents.Patterns {
		if !knownIntent(name) {
			problems = append(problems, fmt.Sprintf("intents.patterns: unknown intent %q", name))
		}
	}

	for name := range cfg.Semantic.Exemplars {
		if !knownCategory(name) {
			problems = append(problems, fmt.Sprintf("semantic.exemplars: unknown category %q", name))
		}
	}
	if cfg.Semantic.AmbiguityTolerance < 0 || cfg.Semantic.AmbiguityTolerance > 1 {
		problems = append(problems, fmt.Sprintf("semantic.ambiguity_tolerance %v outside [0,1]", cfg.Semantic.AmbiguityTolerance))
	}
	if cfg.Semantic.MinScore < 0 || cfg.Semantic.MinScore > 1 {
		problems = append(problems, fmt.Sprintf("semantic.min_score %v outside [0,1]", cfg.Semantic.MinScore))
	}

	if cfg.Aggregation.ChangeThreshold < 0 || cfg.Aggregation.ChangeThreshold > 100 {
		problems = append(problems, fmt.Sprintf("aggregation.change_threshold %d outside [0,100]", cfg.Aggregation.ChangeThreshold))
	}

	if cfg.Dispatch.PerContactPerMinute < 0 {
		problems = append(problems, fmt.Sprintf("dispatch.per_contact_per_minute %v is negative", cfg.Dispatch.PerContactPerMinute))
	}

	seen := make(map[string]bool, len(cfg.Rules))
	for i, rule := range cfg.Rules {
		problems = append(problems, ValidateRule(rule, fmt.Sprintf("rules[%d]", i))...)
		if rule.ID != "" && seen[rule.ID] {
			problems = append(problems, fmt.Sprintf("rules[%d]: duplicate rule id %q", i, rule.ID))
		}
		seen[rule.ID] = true
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ValidateRule checks one automation rule; path prefixes each reported problem
func ValidateRule(rule model.AutomationRule, path string) []string {
	var problems []string
	if rule.ID == "" {
		problems = append(problems, path+": rule id is required")
	}
	if rule.Cooldown < 0 {
		problems = append(problems, fmt.Sprintf("%s: cooldown %v is negative", path, rule.Cooldown))
	}
	if rule.Condition == nil {
		problems = append(problems, path+": rule has no condition tree")
		return problems
	}
	return append(problems, validateCondition(rule.Condition, path+".condition")...)
}

// validateCondition recursively checks a condition tree node
func validateCondition(c *model.TriggerCondition, path string) []string {
	var problems []string

	if c.IsGroup() {
		logic := model.LogicOperator(strings.ToUpper(string(c.Logic)))
		if logic != "" && logic != model.LogicAnd && logic != model.LogicOr {
			problems = append(problems, fmt.Sprintf("%s: unknown logic operator %q", path, c.Logic))
		}
		if len(c.Conditions) == 0 {
			problems = append(problems, path+": group has no conditions")
		}
		if c.Type != "" {
			problems = append(problems, path+": node mixes group and leaf fields")
		}
		for i := range c.Conditions {
			problems = append(problems, validateCondition(&c.Conditions[i], fmt.Sprintf("%s.conditions[%d]", path, i))...)
		}
		return problems
	}

	switch c.Type {
	case model.ConditionSentiment, model.ConditionIntent, model.ConditionSemanticCategory:
	case "":
		problems = append(problems, path+": leaf has no type")
	default:
		problems = append(problems, fmt.Sprintf("%s: unknown condition type %q", path, c.Type))
	}

	if c.Value == "" {
		problems = append(problems, path+": leaf has no value")
	} else {
		problems = append(problems, validateValue(c, path)...)
	}

	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 100 {
		problems = append(problems, fmt.Sprintf("%s: confidence threshold %d outside [0,100]", path, c.ConfidenceThreshold))
	}

	return problems
}

// validateValue checks that a leaf's value belongs to its type's enum
func validateValue(c *model.TriggerCondition, path string) []string {
	value := strings.ToLower(c.Value)
	switch c.Type {
	case model.ConditionSentiment:
		switch model.SentimentLabel(value) {
		case model.SentimentPositive, model.SentimentNegative, model.SentimentNeutral:
			return nil
		}
		return []string{fmt.Sprintf("%s: %q is not a sentiment label", path, c.Value)}
	case model.ConditionIntent:
		if knownIntent(value) {
			return nil
		}
		return []string{fmt.Sprintf("%s: %q is not a known intent", path, c.Value)}
	case model.ConditionSemanticCategory:
		if knownCategory(value) {
			return nil
		}
		return []string{fmt.Sprintf("%s: %q is not a semantic category", path, c.Value)}
	}
	return nil
}

func knownIntent(name string) bool {
	switch model.Intent(name) {
	case model.IntentPurchase, model.IntentCallback, model.IntentComplaint,
		model.IntentQuestion, model.IntentReferral, model.IntentObjection,
		model.IntentNotQualified, model.IntentOptOut, model.IntentUnknown:
		return true
	}
	return false
}

func knownCategory(name string) bool {
	if model.SemanticCategory(name) == model.CategoryUnknown {
		return true
	}
	for _, cat := range model.SemanticCategories() {
		if model.SemanticCategory(name) == cat {
			return true
		}
	}
	return false
}
