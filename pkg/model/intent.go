package model

import "github.com/m-mizutani/goerr/v2"

// Intent is the classified purpose of a user message, drawn from a closed set.
// It is produced per message and never persisted.
type Intent string

const (
	IntentGeneralCareerQuery Intent = "general_career_query"
	IntentSkillMatch         Intent = "skill_match"
	IntentCareerChange       Intent = "career_change"
	IntentSkillDevelopment   Intent = "skill_development"
	IntentMarketTrends       Intent = "market_trends"
	IntentResumeHelp         Intent = "resume_help"
	IntentUnknown            Intent = "unknown"
)

// Validate checks if the intent is a known value
func (x Intent) Validate() error {
	switch x {
	case IntentGeneralCareerQuery, IntentSkillMatch, IntentCareerChange,
		IntentSkillDevelopment, IntentMarketTrends, IntentResumeHelp, IntentUnknown:
		return nil
	default:
		return goerr.New("invalid intent", goerr.V("intent", x))
	}
}

// CatalogRelevant reports whether the intent can be served by catalog
// recommendations. ResumeHelp and Unknown have no catalog relevance.
func (x Intent) CatalogRelevant() bool {
	switch x {
	case IntentGeneralCareerQuery, IntentSkillMatch, IntentCareerChange,
		IntentSkillDevelopment, IntentMarketTrends:
		return true
	default:
		return false
	}
}
