package dtos

import (
	"strings"

	"github.com/justsurfingit/job-catalog/internal/models"
)

type EmployerRequest struct {
	Name     string `json:"name" binding:"required,notblank"`
	Address  string `json:"address"`
	District string `json:"district"`
}

type RequirementsRequest struct {
	Education string   `json:"education"`
	Skills    []string `json:"skills"`
}

// PostingRequest is the body of create and replace calls. Pointer fields are
// required, so a zero salary or zero years of experience is still accepted.
// Salary and experience are capped so stored values stay plausible.
type PostingRequest struct {
	Title           string               `json:"title" binding:"required,notblank"`
	Employer        *EmployerRequest     `json:"employer" binding:"required"`
	Requirements    *RequirementsRequest `json:"requirements" binding:"required"`
	ExperienceYears *int                 `json:"experienceYears" binding:"required,gte=0,lte=100"`
	MonthlySalary   *int                 `json:"monthlySalary" binding:"required,gte=0,lte=1000000000"`
	ExpirationDate  string               `json:"expirationDate" binding:"required,datetime=2006-01-02"`
}

// ToModel builds a Posting from a request that already passed binding.
func (r *PostingRequest) ToModel() models.Posting {
	p := models.Posting{
		Title:          strings.TrimSpace(r.Title),
		ExpirationDate: strings.TrimSpace(r.ExpirationDate),
	}
	if r.Employer != nil {
		p.Employer = models.Employer{
			Name:     strings.TrimSpace(r.Employer.Name),
			Address:  strings.TrimSpace(r.Employer.Address),
			District: strings.TrimSpace(r.Employer.District),
		}
	}
	if r.Requirements != nil {
		p.Requirements = models.Requirements{
			Education: strings.TrimSpace(r.Requirements.Education),
			Skills:    cleanSkills(r.Requirements.Skills),
		}
	}
	if r.ExperienceYears != nil {
		p.ExperienceYears = *r.ExperienceYears
	}
	if r.MonthlySalary != nil {
		p.MonthlySalary = *r.MonthlySalary
	}
	return p
}

// cleanSkills trims entries and drops blank ones. Duplicates are kept.
func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

type PostingCreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ExtractionRequest struct {
	RawText string `json:"raw_text" binding:"required"`
}
