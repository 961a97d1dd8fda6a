package models

import (
	"time"
)

// ExpirationDateLayout is the text format expiration dates are stored and exchanged in.
const ExpirationDateLayout = "2006-01-02"

type Employer struct {
	Name     string `gorm:"not null" json:"name"`
	Address  string `json:"address"`
	District string `gorm:"index" json:"district"`
}

type Requirements struct {
	Education string `json:"education"`
	// Entries are free text and may repeat.
	Skills []string `gorm:"type:jsonb;serializer:json" json:"skills"`
}

// Posting is a single job listing. ID is assigned by the database on insert and
// never changes afterwards.
type Posting struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Title        string       `gorm:"not null;index" json:"title"`
	Employer     Employer     `gorm:"embedded;embeddedPrefix:employer_" json:"employer"`
	Requirements Requirements `gorm:"embedded;embeddedPrefix:requirements_" json:"requirements"`

	ExperienceYears int    `gorm:"not null" json:"experienceYears"`
	MonthlySalary   int    `gorm:"not null;index" json:"monthlySalary"`
	ExpirationDate  string `gorm:"type:varchar(10);not null" json:"expirationDate"`
}

func (Posting) TableName() string {
	return "postings"
}

// Clone returns a copy that shares no memory with p.
func (p Posting) Clone() Posting {
	out := p
	if p.Requirements.Skills != nil {
		out.Requirements.Skills = append([]string(nil), p.Requirements.Skills...)
	}
	return out
}
