package model

// SemanticCategory is the fixed taxonomy disposition labels are mapped onto.
// Trigger matching works on categories, never on literal label text.
type SemanticCategory string

const (
	CategoryPositiveOutcome SemanticCategory = "positive_outcome"
	CategoryNegativeOutcome SemanticCategory = "negative_outcome"
	CategoryNeedsFollowup   SemanticCategory = "needs_followup"
	CategoryQualifiedLead   SemanticCategory = "qualified_lead"
	CategoryUnqualifiedLead SemanticCategory = "unqualified_lead"
	CategoryUnknown         SemanticCategory = "unknown"
)

// SemanticCategories lists every known category in a stable order
func SemanticCategories() []SemanticCategory {
	return []SemanticCategory{
		CategoryPositiveOutcome,
		CategoryNegativeOutcome,
		CategoryNeedsFollowup,
		CategoryQualifiedLead,
		CategoryUnqualifiedLead,
	}
}

// SemanticCategoryResult is the output of categorizing a disposition label
type SemanticCategoryResult struct {
	Category            SemanticCategory   `json:"category"`
	Confidence          int                `json:"confidence"` // 0-100
	IsAmbiguous         bool               `json:"is_ambiguous"`
	SuggestedCategories []SemanticCategory `json:"suggested_categories,omitempty"`
}
