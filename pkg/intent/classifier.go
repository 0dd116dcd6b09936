package intent

import (
	"strings"

	"github.com/pathwise-dev/pathwise/pkg/model"
)

// trigger vocabularies per intent. Matching is case-insensitive substring
// containment of the whole phrase.
var triggers = map[model.Intent][]string{
	model.IntentSkillMatch: {
		"what skills", "skills do i need", "skills for", "based on my skills",
		"qualifications", "requirements for", "am i qualified", "skill match",
	},
	model.IntentCareerChange: {
		"career change", "change career", "change my career", "switch careers",
		"switching careers", "transition", "new field", "pivot",
	},
	model.IntentSkillDevelopment: {
		"learn", "improve", "upskill", "training", "course", "certification",
		"develop my", "get better at", "practice",
	},
	model.IntentMarketTrends: {
		"market", "trends", "demand", "outlook", "growing", "future of",
		"salary", "pay", "compensation", "in demand",
	},
	model.IntentGeneralCareerQuery: {
		"career", "job", "work", "profession", "recommend", "suggest",
		"advice", "guidance", "find careers", "career path",
	},
}

// hardTriggers route straight to ResumeHelp before span scoring, so that any
// message mentioning a resume gets resume guidance regardless of what else
// it matches.
var hardTriggers = []string{"resume", "cv", "cover letter"}

// tiePriority resolves equal matched spans. Earlier entries win.
var tiePriority = []model.Intent{
	model.IntentSkillMatch,
	model.IntentCareerChange,
	model.IntentSkillDevelopment,
	model.IntentMarketTrends,
	model.IntentResumeHelp,
	model.IntentGeneralCareerQuery,
}

// Classifier maps a free-text user message to an intent. It is stateless and
// deterministic: a pure function of the message text. It never fails;
// IntentUnknown is the total-function default.
type Classifier struct{}

func New() *Classifier {
	return &Classifier{}
}

// Classify picks the intent whose triggers cover the longest total span of
// matched phrase text. Ties resolve by fixed priority: SkillMatch >
// CareerChange > SkillDevelopment > MarketTrends > ResumeHelp >
// GeneralCareerQuery. ResumeHelp hard triggers ("resume", "cv",
// "cover letter") short-circuit the span scoring.
func (x *Classifier) Classify(text string) model.Intent {
	lowered := strings.ToLower(text)

	for _, phrase := range hardTriggers {
		if containsToken(lowered, phrase) {
			return model.IntentResumeHelp
		}
	}

	spans := make(map[model.Intent]int)
	for it, phrases := range triggers {
		for _, phrase := range phrases {
			if strings.Contains(lowered, phrase) {
				spans[it] += len(phrase)
			}
		}
	}

	best := model.IntentUnknown
	bestSpan := 0
	for _, it := range tiePriority {
		if spans[it] > bestSpan {
			best = it
			bestSpan = spans[it]
		}
	}
	return best
}

// containsToken reports whether phrase occurs in text on word boundaries.
// Plain substring matching would classify "civil" as a CV mention.
func containsToken(text, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}
