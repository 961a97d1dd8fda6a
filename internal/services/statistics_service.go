package services

import (
	"cmp"
	"fmt"
	"math/big"
	"slices"

	"github.com/justsurfingit/job-catalog/internal/dtos"
	"github.com/justsurfingit/job-catalog/internal/models"
)

const topSkillsLimit = 5

// ComputeStatistics aggregates the full posting set. It is a pure function of
// its input; ties in every ranking go to the value seen first.
func ComputeStatistics(postings []models.Posting) dtos.StatisticsSnapshot {
	total := len(postings)
	if total == 0 {
		return dtos.StatisticsSnapshot{TotalPostings: 0}
	}

	// Sums are exact; a handful of large salaries would overflow int64.
	salarySum, experienceSum := new(big.Int), new(big.Int)
	var employers, skills, titles orderedCounter
	minSalary, maxSalary := postings[0].MonthlySalary, postings[0].MonthlySalary

	for _, p := range postings {
		salarySum.Add(salarySum, big.NewInt(int64(p.MonthlySalary)))
		experienceSum.Add(experienceSum, big.NewInt(int64(p.ExperienceYears)))
		minSalary = min(minSalary, p.MonthlySalary)
		maxSalary = max(maxSalary, p.MonthlySalary)

		employers.add(p.Employer.Name)
		titles.add(p.Title)
		for _, s := range p.Requirements.Skills {
			skills.add(s)
		}
	}

	return dtos.StatisticsSnapshot{
		TotalPostings: total,
		PostingStatistics: &dtos.PostingStatistics{
			AverageSalary:     formatRatio(salarySum, int64(total), 2),
			AverageExperience: formatRatio(experienceSum, int64(total), 1),
			MaxSalary:         maxSalary,
			MinSalary:         minSalary,
			TopEmployer:       topEmployer(&employers),
			TopSkills:         topSkills(&skills, total),
			TitleDistribution: titleDistribution(&titles),
		},
	}
}

func topEmployer(c *orderedCounter) dtos.EmployerCount {
	var best dtos.EmployerCount
	for _, e := range c.entries {
		if e.count > best.Count {
			best = dtos.EmployerCount{Name: e.key, Count: e.count}
		}
	}
	return best
}

func topSkills(c *orderedCounter, totalPostings int) []dtos.SkillCount {
	ranked := slices.Clone(c.entries)
	slices.SortStableFunc(ranked, func(a, b counterEntry) int {
		return cmp.Compare(b.count, a.count)
	})
	if len(ranked) > topSkillsLimit {
		ranked = ranked[:topSkillsLimit]
	}

	out := make([]dtos.SkillCount, 0, len(ranked))
	for _, e := range ranked {
		out = append(out, dtos.SkillCount{
			Skill:      e.key,
			Count:      e.count,
			Percentage: formatRatio(big.NewInt(int64(e.count)*100), int64(totalPostings), 1) + "%",
		})
	}
	return out
}

func titleDistribution(c *orderedCounter) []dtos.TitleCount {
	out := make([]dtos.TitleCount, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, dtos.TitleCount{Title: e.key, Count: e.count})
	}
	return out
}

// formatRatio renders num/den with a fixed number of decimals, rounding halves
// of the exact fraction up. num is non-negative and den is positive. Only the
// remainder is scaled, so the result is exact for any num.
func formatRatio(num *big.Int, den int64, decimals int) string {
	scale := int64(1)
	for range decimals {
		scale *= 10
	}

	q, r := new(big.Int).QuoRem(num, big.NewInt(den), new(big.Int))
	frac := (r.Int64()*scale*2 + den) / (2 * den)
	if frac == scale {
		q.Add(q, big.NewInt(1))
		frac = 0
	}
	return fmt.Sprintf("%s.%0*d", q.String(), decimals, frac)
}

type counterEntry struct {
	key   string
	count int
}

// orderedCounter counts keys and remembers the order they were first seen in.
type orderedCounter struct {
	index   map[string]int
	entries []counterEntry
}

func (c *orderedCounter) add(key string) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[key]; ok {
		c.entries[i].count++
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, counterEntry{key: key, count: 1})
}
