package services

import (
	"cmp"
	"slices"
	"strings"

	"github.com/justsurfingit/job-catalog/internal/dtos"
	apperrors "github.com/justsurfingit/job-catalog/internal/errors"
	"github.com/justsurfingit/job-catalog/internal/models"
)

// NormalizeSkillTerm trims term and rejects it when nothing is left.
func NormalizeSkillTerm(term string) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", apperrors.InvalidInput("search term must not be empty", nil)
	}
	return term, nil
}

// SearchBySkill keeps the postings with at least one skill entry containing
// term (case-insensitive), flags the matching entries and ranks postings by
// match count, highest first. Equal counts keep their input order.
func SearchBySkill(postings []models.Posting, term string) (dtos.SkillSearchResult, error) {
	term, err := NormalizeSkillTerm(term)
	if err != nil {
		return dtos.SkillSearchResult{}, err
	}
	needle := strings.ToLower(term)

	results := make([]dtos.SkillMatch, 0)
	for _, p := range postings {
		annotated := make([]dtos.AnnotatedSkill, 0, len(p.Requirements.Skills))
		matches := 0
		for _, s := range p.Requirements.Skills {
			hit := strings.Contains(strings.ToLower(s), needle)
			if hit {
				matches++
			}
			annotated = append(annotated, dtos.AnnotatedSkill{Value: s, Matched: hit})
		}
		if matches == 0 {
			continue
		}

		results = append(results, dtos.SkillMatch{
			ID:           p.ID,
			EmployerName: p.Employer.Name,
			Title:        p.Title,
			Skills:       annotated,
			TotalSkills:  len(p.Requirements.Skills),
			MatchCount:   matches,
		})
	}

	slices.SortStableFunc(results, func(a, b dtos.SkillMatch) int {
		return cmp.Compare(b.MatchCount, a.MatchCount)
	})

	return dtos.SkillSearchResult{
		Term:         term,
		TotalResults: len(results),
		Results:      results,
	}, nil
}
