package catalog

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathwise-dev/pathwise/pkg/model"
)

// ErrDataLoad indicates the catalog source is unreadable or malformed. It is
// fatal at start-up: without a valid catalog the rule path cannot serve.
var ErrDataLoad = goerr.New("career catalog load failed")

var requiredColumns = []string{
	"id", "title", "description", "required_skills",
	"salary_min", "salary_max", "category",
}

const skillDelimiter = ";"

// Catalog is an in-memory, read-only table of career records. The insertion
// order of the source is preserved and used as the tie-break order of
// FindByTerms.
type Catalog struct {
	records []*model.CareerRecord
}

// LoadFile loads a catalog from a CSV file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(ErrDataLoad, "failed to open catalog source", goerr.V("path", path), goerr.V("cause", err.Error()))
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load catalog", goerr.V("path", path))
	}
	return c, nil
}

// Load reads a catalog from CSV data with a header row. Required columns:
// id, title, description, required_skills, salary_min, salary_max, category.
// required_skills is a ";" separated list. Any malformed row fails the whole
// load with its row index.
func Load(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	columns, err := readHeader(reader)
	if err != nil {
		return nil, err
	}

	var records []*model.CareerRecord
	seen := make(map[model.CareerID]int)

	for row := 1; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(ErrDataLoad, "malformed catalog row", goerr.V("row", row), goerr.V("cause", err.Error()))
		}

		rec, err := parseRecord(fields, columns)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid catalog row", goerr.V("row", row))
		}

		if prev, ok := seen[rec.ID]; ok {
			return nil, goerr.Wrap(ErrDataLoad, "duplicate career id",
				goerr.V("id", rec.ID), goerr.V("row", row), goerr.V("first_row", prev))
		}
		seen[rec.ID] = row
		records = append(records, rec)
	}

	return &Catalog{records: records}, nil
}

func readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, goerr.Wrap(ErrDataLoad, "failed to read catalog header", goerr.V("cause", err.Error()))
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, goerr.Wrap(ErrDataLoad, "missing required column", goerr.V("column", name))
		}
	}
	return columns, nil
}

// Problem is one row-level defect found while auditing a catalog source.
type Problem struct {
	Row int
	Err error
}

// Audit reads the whole catalog source and collects every row-level problem
// instead of stopping at the first, so a data author can fix a bad file in
// one pass. Header problems stay fatal: without the column layout no row can
// be interpreted. The returned catalog holds the rows that did parse.
func Audit(r io.Reader) (*Catalog, []Problem, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	columns, err := readHeader(reader)
	if err != nil {
		return nil, nil, err
	}

	var records []*model.CareerRecord
	var problems []Problem
	seen := make(map[model.CareerID]int)

	for row := 1; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			problems = append(problems, Problem{Row: row, Err: err})
			// Field-count mismatches are recoverable; anything else is not
			if !errors.Is(err, csv.ErrFieldCount) {
				break
			}
			continue
		}

		rec, err := parseRecord(fields, columns)
		if err != nil {
			problems = append(problems, Problem{Row: row, Err: err})
			continue
		}

		if prev, ok := seen[rec.ID]; ok {
			problems = append(problems, Problem{Row: row, Err: goerr.Wrap(ErrDataLoad, "duplicate career id",
				goerr.V("id", rec.ID), goerr.V("first_row", prev))})
			continue
		}
		seen[rec.ID] = row
		records = append(records, rec)
	}

	return &Catalog{records: records}, problems, nil
}

// AuditFile audits a CSV catalog file on disk.
func AuditFile(path string) (*Catalog, []Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, goerr.Wrap(ErrDataLoad, "failed to open catalog source", goerr.V("path", path), goerr.V("cause", err.Error()))
	}
	defer f.Close()

	return Audit(f)
}

func parseRecord(fields []string, columns map[string]int) (*model.CareerRecord, error) {
	get := func(name string) string {
		idx := columns[name]
		if idx >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[idx])
	}

	id := get("id")
	if id == "" {
		return nil, goerr.Wrap(ErrDataLoad, "empty career id")
	}
	title := get("title")
	if title == "" {
		return nil, goerr.Wrap(ErrDataLoad, "empty career title", goerr.V("id", id))
	}

	salaryMin, err := strconv.Atoi(get("salary_min"))
	if err != nil {
		return nil, goerr.Wrap(ErrDataLoad, "non-numeric salary_min", goerr.V("id", id), goerr.V("value", get("salary_min")))
	}
	salaryMax, err := strconv.Atoi(get("salary_max"))
	if err != nil {
		return nil, goerr.Wrap(ErrDataLoad, "non-numeric salary_max", goerr.V("id", id), goerr.V("value", get("salary_max")))
	}
	if salaryMin > salaryMax {
		return nil, goerr.Wrap(ErrDataLoad, "salary_min exceeds salary_max", goerr.V("id", id))
	}

	var skills []string
	for _, s := range strings.Split(get("required_skills"), skillDelimiter) {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	category := model.Category(strings.ToLower(get("category")))
	switch category {
	case model.CategoryTechnology, model.CategoryBusiness, model.CategoryCreative,
		model.CategoryHealthcare, model.CategoryEducation:
	default:
		category = model.CategoryOther
	}

	return &model.CareerRecord{
		ID:             model.CareerID(id),
		Title:          title,
		Description:    get("description"),
		RequiredSkills: skills,
		SalaryMin:      salaryMin,
		SalaryMax:      salaryMax,
		Category:       category,
	}, nil
}

// Size returns the number of loaded records.
func (c *Catalog) Size() int {
	return len(c.records)
}

// Records returns the loaded records in source order. Callers must not mutate
// the returned records.
func (c *Catalog) Records() []*model.CareerRecord {
	return c.records
}

// Get looks up a record by id.
func (c *Catalog) Get(id model.CareerID) (*model.CareerRecord, bool) {
	for _, rec := range c.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return nil, false
}

// Match is a catalog record paired with the query terms it matched.
type Match struct {
	Record *model.CareerRecord
	Terms  []string
}

// FindByTerms performs case-insensitive substring matching of each term
// against title, description and required skills. Results are ordered by
// matched term count descending; ties keep catalog insertion order. The
// catalog is read-only, so identical inputs always yield identical results.
func (c *Catalog) FindByTerms(terms []string) []*Match {
	var matches []*Match
	for _, rec := range c.records {
		haystack := recordText(rec)
		var matched []string
		for _, term := range terms {
			t := strings.ToLower(strings.TrimSpace(term))
			if t == "" {
				continue
			}
			if strings.Contains(haystack, t) {
				matched = append(matched, t)
			}
		}
		if len(matched) > 0 {
			matches = append(matches, &Match{Record: rec, Terms: matched})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return len(matches[i].Terms) > len(matches[j].Terms)
	})
	return matches
}

func recordText(rec *model.CareerRecord) string {
	parts := []string{rec.Title, rec.Description}
	parts = append(parts, rec.RequiredSkills...)
	return strings.ToLower(strings.Join(parts, "\n"))
}
