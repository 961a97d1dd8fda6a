package dtos

// StatisticsSnapshot is recomputed on every request. When there are no postings
// only TotalPostings is set and the embedded details are omitted from the JSON.
type StatisticsSnapshot struct {
	TotalPostings int `json:"totalPostings"`
	*PostingStatistics
}

type PostingStatistics struct {
	AverageSalary     string        `json:"averageSalary"`
	AverageExperience string        `json:"averageExperience"`
	MaxSalary         int           `json:"maxSalary"`
	MinSalary         int           `json:"minSalary"`
	TopEmployer       EmployerCount `json:"topEmployer"`
	TopSkills         []SkillCount  `json:"topSkills"`
	TitleDistribution []TitleCount  `json:"titleDistribution"`
}

type EmployerCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type SkillCount struct {
	Skill      string `json:"skill"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

type TitleCount struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}
