package models

// StructuredProfile is the record extracted from a resume. Every field is
// always present; a section missing from the source text is an empty slice,
// never a nil-vs-omitted distinction the caller has to care about.
type StructuredProfile struct {
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Skills     []string          `json:"skills"`
	Projects   []ProjectEntry    `json:"projects"`
	Languages  []string          `json:"languages"`
}

// EducationEntry is one degree line from the resume.
type EducationEntry struct {
	Degree    string `json:"degree"`
	School    string `json:"school"`
	Location  string `json:"location"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ExperienceEntry is one employment line from the resume.
type ExperienceEntry struct {
	Company   string `json:"company"`
	Title     string `json:"title"`
	Location  string `json:"location"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ProjectEntry is one project line from the resume.
type ProjectEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// NewStructuredProfile returns a profile with all five sections initialized
// to empty slices.
func NewStructuredProfile() *StructuredProfile {
	return &StructuredProfile{
		Education:  []EducationEntry{},
		Experience: []ExperienceEntry{},
		Skills:     []string{},
		Projects:   []ProjectEntry{},
		Languages:  []string{},
	}
}

// IsEmpty reports whether no section contains any data.
func (p *StructuredProfile) IsEmpty() bool {
	return len(p.Education) == 0 && len(p.Experience) == 0 &&
		len(p.Skills) == 0 && len(p.Projects) == 0 && len(p.Languages) == 0
}
