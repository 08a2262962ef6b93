package resumes

import "time"

// Templates lists the accepted layout names; the first is the default.
var Templates = []string{"modern", "creative", "tech", "executive"}

const (
	DefaultTemplate = "modern"
	DefaultTitle    = "My Resume"
)

// Resume is a stored resume document owned by one user.
type Resume struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Fields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Fields holds everything a client may write on create or update.
type Fields struct {
	Title          string          `json:"title"`
	Template       string          `json:"template" validate:"oneof=modern creative tech executive"`
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Experience     []Experience    `json:"experience" validate:"dive"`
	Education      []Education     `json:"education" validate:"dive"`
	Skills         Skills          `json:"skills"`
	Projects       []Project       `json:"projects" validate:"dive"`
	Certifications []Certification `json:"certifications"`
	AISuggestions  *AISuggestions  `json:"aiSuggestions,omitempty"`
}

type PersonalInfo struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

type Experience struct {
	Company      string   `json:"company" validate:"required"`
	Position     string   `json:"position" validate:"required"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate" validate:"required"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements"`
}

type Education struct {
	Institution  string   `json:"institution" validate:"required"`
	Degree       string   `json:"degree" validate:"required"`
	Field        string   `json:"field,omitempty"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	GPA          string   `json:"gpa,omitempty"`
	Achievements []string `json:"achievements"`
}

// Skills groups skill names by kind.
type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Languages []string `json:"languages"`
	Tools     []string `json:"tools"`
}

type Project struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
	GitHub       string   `json:"github,omitempty"`
}

type Certification struct {
	Name         string `json:"name,omitempty"`
	Issuer       string `json:"issuer,omitempty"`
	Date         string `json:"date,omitempty"`
	CredentialID string `json:"credentialId,omitempty"`
}

// AISuggestions is advisory feedback a client may store with the document.
// It is never written by the server on its own.
type AISuggestions struct {
	SummaryScore    *float64 `json:"summaryScore,omitempty" validate:"omitempty,min=0,max=100"`
	SkillsScore     *float64 `json:"skillsScore,omitempty" validate:"omitempty,min=0,max=100"`
	ExperienceScore *float64 `json:"experienceScore,omitempty" validate:"omitempty,min=0,max=100"`
	OverallScore    *float64 `json:"overallScore,omitempty" validate:"omitempty,min=0,max=100"`
	Suggestions     []string `json:"suggestions"`
}
