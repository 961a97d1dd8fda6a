package services

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"testing"

	"github.com/justsurfingit/job-catalog/internal/dtos"
	"github.com/justsurfingit/job-catalog/internal/models"
)

func posting(id int64, title, employer string, salary, experience int, skills ...string) models.Posting {
	return models.Posting{
		ID:              id,
		Title:           title,
		Employer:        models.Employer{Name: employer},
		Requirements:    models.Requirements{Skills: skills},
		ExperienceYears: experience,
		MonthlySalary:   salary,
		ExpirationDate:  "2030-12-31",
	}
}

func TestComputeStatistics_Empty(t *testing.T) {
	got := ComputeStatistics(nil)
	if got.TotalPostings != 0 || got.PostingStatistics != nil {
		t.Fatalf("expected zero snapshot, got %+v", got)
	}

	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"totalPostings":0}` {
		t.Fatalf("empty snapshot must only carry totalPostings, got %s", raw)
	}
}

func TestComputeStatistics_SalaryScenario(t *testing.T) {
	got := ComputeStatistics([]models.Posting{
		posting(1, "Dev", "A", 1000, 1),
		posting(2, "Dev", "A", 2000, 2),
		posting(3, "Dev", "B", 3000, 4),
	})

	if got.TotalPostings != 3 {
		t.Fatalf("expected 3 postings, got %d", got.TotalPostings)
	}
	if got.AverageSalary != "2000.00" {
		t.Errorf("averageSalary: want 2000.00, got %s", got.AverageSalary)
	}
	if got.MinSalary != 1000 || got.MaxSalary != 3000 {
		t.Errorf("min/max: want 1000/3000, got %d/%d", got.MinSalary, got.MaxSalary)
	}
	if got.AverageExperience != "2.3" {
		t.Errorf("averageExperience: want 2.3, got %s", got.AverageExperience)
	}
}

func TestComputeStatistics_TopEmployerTieGoesToFirstSeen(t *testing.T) {
	got := ComputeStatistics([]models.Posting{
		posting(1, "Dev", "Globex", 1000, 1),
		posting(2, "Dev", "Acme", 1000, 1),
		posting(3, "Dev", "Acme", 1000, 1),
		posting(4, "Dev", "Globex", 1000, 1),
	})

	want := dtos.EmployerCount{Name: "Globex", Count: 2}
	if got.TopEmployer != want {
		t.Fatalf("topEmployer: want %+v, got %+v", want, got.TopEmployer)
	}
}

func TestComputeStatistics_TopSkills(t *testing.T) {
	// Go and SQL tie at 3; Go was seen first.
	got := ComputeStatistics([]models.Posting{
		posting(1, "Dev", "A", 1000, 1, "Go", "SQL", "Docker", "Git"),
		posting(2, "Dev", "A", 1000, 1, "Python", "SQL", "Git", "Linux"),
		posting(3, "Dev", "A", 1000, 1, "Go", "SQL", "Kubernetes", "Go"),
	})

	want := []dtos.SkillCount{
		{Skill: "Go", Count: 3, Percentage: "100.0%"},
		{Skill: "SQL", Count: 3, Percentage: "100.0%"},
		{Skill: "Git", Count: 2, Percentage: "66.7%"},
		{Skill: "Docker", Count: 1, Percentage: "33.3%"},
		{Skill: "Python", Count: 1, Percentage: "33.3%"},
	}

	if !reflect.DeepEqual(got.TopSkills, want) {
		t.Fatalf("topSkills:\nwant %+v\n got %+v", want, got.TopSkills)
	}
}

func TestComputeStatistics_TopSkillsShorterThanLimit(t *testing.T) {
	got := ComputeStatistics([]models.Posting{
		posting(1, "Dev", "A", 1000, 1, "Go"),
		posting(2, "Dev", "A", 1000, 1),
	})
	if len(got.TopSkills) != 1 || got.TopSkills[0].Percentage != "50.0%" {
		t.Fatalf("unexpected topSkills: %+v", got.TopSkills)
	}

	none := ComputeStatistics([]models.Posting{posting(1, "Dev", "A", 1000, 1)})
	if none.TopSkills == nil || len(none.TopSkills) != 0 {
		t.Fatalf("postings without skills should yield an empty, non-nil list: %#v", none.TopSkills)
	}
}

func TestComputeStatistics_TitleDistributionKeepsFirstSeenOrder(t *testing.T) {
	got := ComputeStatistics([]models.Posting{
		posting(1, "QA", "A", 1000, 1),
		posting(2, "Backend", "A", 1000, 1),
		posting(3, "Backend", "A", 1000, 1),
		posting(4, "Designer", "A", 1000, 1),
		posting(5, "QA", "A", 1000, 1),
	})

	want := []dtos.TitleCount{
		{Title: "QA", Count: 2},
		{Title: "Backend", Count: 2},
		{Title: "Designer", Count: 1},
	}
	if !reflect.DeepEqual(got.TitleDistribution, want) {
		t.Fatalf("titleDistribution: want %+v, got %+v", want, got.TitleDistribution)
	}
}

func TestComputeStatistics_Properties(t *testing.T) {
	sets := [][]models.Posting{
		{posting(1, "A", "X", 0, 0)},
		{posting(1, "A", "X", 999, 3), posting(2, "B", "Y", 1001, 5)},
		{posting(1, "A", "X", 1, 0), posting(2, "A", "X", 2, 0), posting(3, "C", "Z", 2, 10)},
		{
			posting(1, "A", "X", 1500, 1, "a", "b", "c"),
			posting(2, "B", "X", 2700, 2, "d", "e", "f", "a"),
			posting(3, "C", "Y", 3100, 3, "g", "h"),
			posting(4, "A", "Y", 1200, 4, "b", "b"),
		},
	}

	for i, postings := range sets {
		first := ComputeStatistics(postings)
		second := ComputeStatistics(postings)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("[%d] not idempotent", i)
		}

		avg, err := strconv.ParseFloat(first.AverageSalary, 64)
		if err != nil {
			t.Fatalf("[%d] averageSalary not numeric: %v", i, err)
		}
		if avg < float64(first.MinSalary) || avg > float64(first.MaxSalary) {
			t.Errorf("[%d] average %v outside [%d, %d]", i, avg, first.MinSalary, first.MaxSalary)
		}

		sum := 0
		for _, tc := range first.TitleDistribution {
			sum += tc.Count
		}
		if sum != first.TotalPostings {
			t.Errorf("[%d] title distribution sums to %d, want %d", i, sum, first.TotalPostings)
		}

		if len(first.TopSkills) > 5 {
			t.Errorf("[%d] more than 5 top skills", i)
		}
		for _, sc := range first.TopSkills {
			want := strconv.FormatFloat(float64(sc.Count)/float64(first.TotalPostings)*100, 'f', 1, 64) + "%"
			if sc.Percentage != want {
				t.Errorf("[%d] %s percentage: want %s, got %s", i, sc.Skill, want, sc.Percentage)
			}
		}
	}
}

func TestComputeStatistics_DoesNotMutateInput(t *testing.T) {
	in := []models.Posting{
		posting(1, "B", "X", 10, 1, "z", "a"),
		posting(2, "A", "Y", 20, 1, "a"),
	}
	snapshot := []models.Posting{in[0].Clone(), in[1].Clone()}

	_ = ComputeStatistics(in)

	if !reflect.DeepEqual(in, snapshot) {
		t.Fatalf("input mutated")
	}
}

func TestFormatRatio(t *testing.T) {
	cases := []struct {
		num, den int64
		decimals int
		want     string
	}{
		{6000, 3, 2, "2000.00"},
		{7, 3, 1, "2.3"},
		{1, 8, 2, "0.13"},
		{200, 3, 1, "66.7"},
		{0, 5, 2, "0.00"},
		{100, 1, 1, "100.0"},
		{23, 20, 1, "1.2"},
		{199, 100, 1, "2.0"},
		{math.MaxInt64, 1, 2, "9223372036854775807.00"},
		{math.MaxInt64, 3, 2, "3074457345618258602.33"},
	}
	for _, tc := range cases {
		if got := formatRatio(big.NewInt(tc.num), tc.den, tc.decimals); got != tc.want {
			t.Errorf("formatRatio(%d, %d, %d) = %s, want %s", tc.num, tc.den, tc.decimals, got, tc.want)
		}
	}
}

func TestComputeStatistics_LargeSalaries(t *testing.T) {
	huge := math.MaxInt64 / 2
	got := ComputeStatistics([]models.Posting{
		posting(1, "Dev", "A", 50_000_000_000_000_000, 1),
		posting(2, "Dev", "A", huge, 1),
		posting(3, "Dev", "A", huge, 1),
		posting(4, "Dev", "A", huge, 1),
	})

	// (5e16 + 3*4611686018427387903) / 4, computed without the int64 sum.
	want := "3471264513820540927.25"
	if got.AverageSalary != want {
		t.Fatalf("averageSalary: want %s, got %s", want, got.AverageSalary)
	}
	if got.MinSalary != 50_000_000_000_000_000 || got.MaxSalary != huge {
		t.Fatalf("min/max: got %d/%d", got.MinSalary, got.MaxSalary)
	}

	single := ComputeStatistics([]models.Posting{posting(1, "Dev", "A", 50_000_000_000_000_000, 1)})
	if single.AverageSalary != "50000000000000000.00" {
		t.Fatalf("single large salary: got %s", single.AverageSalary)
	}
}
