package rules

import (
	"fmt"
	"strings"

	"github.com/pathwise-dev/pathwise/pkg/catalog"
	"github.com/pathwise-dev/pathwise/pkg/model"
)

// MaxRecommendations caps the number of recommendations per request.
const MaxRecommendations = 5

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "can": true, "could": true,
	"do": true, "does": true, "for": true, "from": true, "get": true,
	"have": true, "how": true, "i": true, "in": true, "into": true,
	"is": true, "it": true, "me": true, "my": true, "need": true,
	"of": true, "on": true, "or": true, "should": true, "so": true,
	"some": true, "that": true, "the": true, "this": true, "to": true,
	"want": true, "what": true, "which": true, "who": true, "will": true,
	"with": true, "would": true, "you": true, "your": true,
}

// Engine produces deterministic catalog recommendations for a user message.
type Engine struct {
	catalog *catalog.Catalog
}

func New(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Recommend extracts query terms from the message, matches them against the
// catalog, and returns up to MaxRecommendations scored recommendations.
// MatchScore is the matched-term count normalized by the query-term count.
// Intents with no catalog relevance (ResumeHelp, Unknown) and messages with
// no matches both yield an empty result; absence of matches is a valid
// outcome, never an error.
func (x *Engine) Recommend(it model.Intent, text string) []*model.Recommendation {
	if !it.CatalogRelevant() {
		return nil
	}

	terms := ExtractTerms(text)
	if len(terms) == 0 {
		return nil
	}

	matches := x.catalog.FindByTerms(terms)
	if len(matches) > MaxRecommendations {
		matches = matches[:MaxRecommendations]
	}

	recs := make([]*model.Recommendation, 0, len(matches))
	for _, m := range matches {
		recs = append(recs, &model.Recommendation{
			Career:       m.Record,
			MatchScore:   float64(len(m.Terms)) / float64(len(terms)),
			Rationale:    rationale(m),
			MatchedTerms: m.Terms,
		})
	}
	return recs
}

// ExtractTerms lowercases the message, splits it on non-alphanumeric runes
// and strips stopwords. Duplicates are removed, first occurrence order kept.
func ExtractTerms(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})

	seen := make(map[string]bool, len(words))
	var terms []string
	for _, w := range words {
		if len(w) < 2 || stopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		terms = append(terms, w)
	}
	return terms
}

func rationale(m *catalog.Match) string {
	return fmt.Sprintf("%s matches your question on: %s",
		m.Record.Title, strings.Join(m.Terms, ", "))
}
