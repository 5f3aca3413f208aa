package model

// AnalysisContext is the parameter object handed to the trigger evaluator.
// It is assembled per evaluation call and never persisted.
type AnalysisContext struct {
	Sentiment   SentimentResult
	Intent      *IntentResult
	Disposition *SemanticCategoryResult
	Channel     string
	Profile     *ContactSentimentProfile
}
