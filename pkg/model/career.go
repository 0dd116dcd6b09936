package model

import (
	"github.com/m-mizutani/goerr/v2"
)

type CareerID string

type Category string

const (
	CategoryTechnology Category = "technology"
	CategoryBusiness   Category = "business"
	CategoryCreative   Category = "creative"
	CategoryHealthcare Category = "healthcare"
	CategoryEducation  Category = "education"
	CategoryOther      Category = "other"
)

// Validate checks if the category is a known value. Unknown categories are
// normalized to CategoryOther by the catalog loader, so this only rejects
// the empty string.
func (c Category) Validate() error {
	if c == "" {
		return goerr.New("category is empty")
	}
	return nil
}

// CareerRecord is a single entry of the career catalog. Records are immutable
// after the catalog is loaded.
type CareerRecord struct {
	ID             CareerID `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	SalaryMin      int      `json:"salary_min"`
	SalaryMax      int      `json:"salary_max"`
	Category       Category `json:"category"`
}

// Recommendation is one scored catalog match produced per request. It is
// transient and never stored.
type Recommendation struct {
	Career       *CareerRecord `json:"career"`
	MatchScore   float64       `json:"match_score"`
	Rationale    string        `json:"rationale"`
	MatchedTerms []string      `json:"matched_terms"`
}
