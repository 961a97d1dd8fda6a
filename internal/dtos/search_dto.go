package dtos

type AnnotatedSkill struct {
	Value   string `json:"value"`
	Matched bool   `json:"matched"`
}

// SkillMatch is one posting that contains the searched skill at least once.
type SkillMatch struct {
	ID           int64            `json:"id"`
	EmployerName string           `json:"employerName"`
	Title        string           `json:"title"`
	Skills       []AnnotatedSkill `json:"skills"`
	TotalSkills  int              `json:"totalSkills"`
	MatchCount   int              `json:"matchCount"`
}

type SkillSearchResult struct {
	Term         string       `json:"term"`
	TotalResults int          `json:"totalResults"`
	Results      []SkillMatch `json:"results"`
}
