package rules_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pathwise-dev/pathwise/pkg/catalog"
	"github.com/pathwise-dev/pathwise/pkg/model"
	"github.com/pathwise-dev/pathwise/pkg/rules"
)

const testCSV = `id,title,description,required_skills,salary_min,salary_max,category
1,Data Scientist,Apply statistics and machine learning to data science problems,python;statistics,90000,140000,technology
2,Software Engineer,Develop and maintain software applications,programming;problem solving,70000,120000,technology
3,Registered Nurse,Provide patient care in clinical settings,patient care;clinical judgment,60000,95000,healthcare
`

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(strings.NewReader(testCSV))
	gt.NoError(t, err)
	return c
}

func TestRecommendDataScience(t *testing.T) {
	engine := rules.New(loadCatalog(t))

	recs := engine.Recommend(model.IntentSkillMatch, "What skills do I need for data science?")
	gt.A(t, recs).Longer(0)
	gt.Equal(t, recs[0].Career.ID, model.CareerID("1"))
	gt.S(t, recs[0].Rationale).Contains("data")
	gt.Number(t, recs[0].MatchScore).Greater(0)
}

func TestRecommendScoreNormalized(t *testing.T) {
	engine := rules.New(loadCatalog(t))

	// Both "python" and "statistics" match record 1
	recs := engine.Recommend(model.IntentSkillMatch, "python statistics")
	gt.A(t, recs).Longer(0)
	gt.Equal(t, recs[0].Career.ID, model.CareerID("1"))
	gt.Number(t, recs[0].MatchScore).Equal(1.0)
}

func TestRecommendNoCatalogRelevance(t *testing.T) {
	engine := rules.New(loadCatalog(t))

	gt.A(t, engine.Recommend(model.IntentResumeHelp, "help with my resume")).Length(0)
	gt.A(t, engine.Recommend(model.IntentUnknown, "python statistics")).Length(0)
}

func TestRecommendNoMatches(t *testing.T) {
	engine := rules.New(loadCatalog(t))

	// No matches is a valid outcome, not an error
	recs := engine.Recommend(model.IntentGeneralCareerQuery, "underwater basket weaving")
	gt.A(t, recs).Length(0)
}

func TestRecommendEmptyCatalog(t *testing.T) {
	c, err := catalog.Load(strings.NewReader("id,title,description,required_skills,salary_min,salary_max,category\n"))
	gt.NoError(t, err)
	engine := rules.New(c)

	gt.A(t, engine.Recommend(model.IntentSkillMatch, "python statistics")).Length(0)
}

func TestRecommendCapped(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("id,title,description,required_skills,salary_min,salary_max,category\n")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&sb, "%d,Python Role %d,Works with python daily,python,50000,90000,technology\n", i, i)
	}
	c, err := catalog.Load(strings.NewReader(sb.String()))
	gt.NoError(t, err)

	engine := rules.New(c)
	recs := engine.Recommend(model.IntentSkillMatch, "python jobs")
	gt.A(t, recs).Length(rules.MaxRecommendations)
}

func TestExtractTerms(t *testing.T) {
	terms := rules.ExtractTerms("What skills do I need for Data Science?")
	gt.A(t, terms).Length(3)
	gt.Equal(t, terms[0], "skills")
	gt.Equal(t, terms[1], "data")
	gt.Equal(t, terms[2], "science")
}

func TestExtractTermsDeduplicates(t *testing.T) {
	terms := rules.ExtractTerms("python python PYTHON")
	gt.A(t, terms).Length(1)
	gt.Equal(t, terms[0], "python")
}

func TestExtractTermsEmpty(t *testing.T) {
	gt.A(t, rules.ExtractTerms("")).Length(0)
	gt.A(t, rules.ExtractTerms("a of the")).Length(0)
}
