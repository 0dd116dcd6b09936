package advisor

import (
	"fmt"
	"strings"

	"github.com/pathwise-dev/pathwise/pkg/model"
)

// defaultFallbackReplies rotate when no better canned reply applies.
var defaultFallbackReplies = []string{
	"I'm here to help with your career questions! Could you tell me more about what you're looking for?",
	"I'd be happy to provide career guidance. What specific area would you like to explore?",
	"Let me assist you with your career journey. What's your main concern or goal right now?",
	"I'm ready to help with career advice! What would you like to know?",
}

var intentReplies = map[model.Intent]string{
	model.IntentResumeHelp:       "I'd be glad to help with your resume! Are you writing a new resume, updating an existing one, or targeting a specific role?",
	model.IntentSkillMatch:       "To match you with the right careers, tell me a bit about your strongest skills and the kind of work you enjoy.",
	model.IntentCareerChange:     "Changing careers is a big step! What field are you in now, and what draws you toward something new?",
	model.IntentSkillDevelopment: "Developing the right skills is crucial for career success! What field or role are you targeting? I can suggest relevant skills to focus on.",
	model.IntentMarketTrends:     "Job market conditions vary a lot by field and location. Which industry or role are you curious about?",
}

var greetingWords = []string{"hello", "hi", "hey", "greetings"}
var partingWords = []string{"thanks", "thank", "bye", "goodbye"}

// staticReply produces a canned, user-appropriate reply for the static
// fallback route. Deterministic: the rotating generic reply is picked by
// message length.
func (x *Orchestrator) staticReply(it model.Intent, message string) string {
	lowered := strings.ToLower(message)

	if containsAnyWord(lowered, greetingWords) {
		return "Hello! I'm your career guidance assistant. How can I help you with your professional journey today?"
	}
	if containsAnyWord(lowered, partingWords) {
		return "You're welcome! Best of luck with your career journey. Feel free to come back anytime for more guidance!"
	}

	if reply, ok := intentReplies[it]; ok {
		return reply
	}

	return x.fallbackReplies[len(message)%len(x.fallbackReplies)]
}

// containsAnyWord checks whole-word containment, so "this" never counts as a
// "hi" greeting.
func containsAnyWord(lowered string, words []string) bool {
	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r == '\'')
	})
	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}

// ruleOnlyReply serves recommendations without a generative narrative.
func ruleOnlyReply(recs []*model.Recommendation) string {
	var sb strings.Builder
	sb.WriteString("Here are some career paths that match your question:\n")
	sb.WriteString(formatRecommendations(recs))
	sb.WriteString("\nWould you like me to look closer at any of these?")
	return sb.String()
}

// formatRecommendations renders recommendations as a markdown list with
// title, description and salary range.
func formatRecommendations(recs []*model.Recommendation) string {
	var sb strings.Builder
	for i, rec := range recs {
		fmt.Fprintf(&sb, "\n%d. **%s**\n", i+1, rec.Career.Title)
		fmt.Fprintf(&sb, "   - %s\n", rec.Career.Description)
		fmt.Fprintf(&sb, "   - Salary: $%d - $%d\n", rec.Career.SalaryMin, rec.Career.SalaryMax)
		fmt.Fprintf(&sb, "   - %s\n", rec.Rationale)
	}
	return sb.String()
}
