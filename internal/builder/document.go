// Package builder holds the editable resume document and its
// field-level mutation operations. Collections are ordered by an
// explicit DisplayOrder key that stays dense across removals and moves.
package builder

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Tab names for the builder's sections; the last active tab is kept in
// the settings blob so the editor reopens where the user left off.
const (
	TabPersonal       = "personal"
	TabSummary        = "summary"
	TabExperience     = "experience"
	TabEducation      = "education"
	TabSkills         = "skills"
	TabProjects       = "projects"
	TabCertifications = "certifications"
)

// DefaultSectionOrder is the initial presentation order of sections.
var DefaultSectionOrder = []string{
	TabSummary, TabExperience, TabEducation, TabSkills, TabProjects, TabCertifications,
}

// PersonalInfo is the contact block of the document. All fields are
// plain strings; required fields are enforced only at save time.
type PersonalInfo struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`
	LinkedinURL  string `json:"linkedin_url"`
	GithubURL    string `json:"github_url"`
	PortfolioURL string `json:"portfolio_url"`
}

// ExperienceEntry is one work history record in the builder.
type ExperienceEntry struct {
	ID           string   `json:"id"`
	CompanyName  string   `json:"company_name"`
	JobTitle     string   `json:"job_title"`
	Location     string   `json:"location"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	IsCurrent    bool     `json:"is_current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
	SkillsUsed   []string `json:"skills_used"`
	DisplayOrder int      `json:"display_order"`
}

// EducationEntry is one schooling record in the builder.
type EducationEntry struct {
	ID                 string   `json:"id"`
	InstitutionName    string   `json:"institution_name"`
	DegreeType         string   `json:"degree_type"`
	FieldOfStudy       string   `json:"field_of_study"`
	Location           string   `json:"location"`
	StartDate          string   `json:"start_date"`
	EndDate            string   `json:"end_date"`
	IsCurrent          bool     `json:"is_current"`
	GPA                string   `json:"gpa"`
	Achievements       []string `json:"achievements"`
	RelevantCoursework []string `json:"relevant_coursework"`
	DisplayOrder       int      `json:"display_order"`
}

// SkillEntry is one skill record in the builder.
type SkillEntry struct {
	ID                string `json:"id"`
	SkillName         string `json:"skill_name"`
	SkillCategory     string `json:"skill_category"`
	ProficiencyLevel  string `json:"proficiency_level"`
	YearsOfExperience string `json:"years_of_experience"`
	IsPrimary         bool   `json:"is_primary"`
	DisplayOrder      int    `json:"display_order"`
}

// ProjectEntry is one project record in the builder.
type ProjectEntry struct {
	ID               string   `json:"id"`
	ProjectName      string   `json:"project_name"`
	Role             string   `json:"role"`
	Description      string   `json:"description"`
	TechnologiesUsed []string `json:"technologies_used"`
	ProjectURL       string   `json:"project_url"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	IsCurrent        bool     `json:"is_current"`
	Achievements     []string `json:"achievements"`
	DisplayOrder     int      `json:"display_order"`
}

// CertificationEntry is one credential record in the builder.
type CertificationEntry struct {
	ID                  string `json:"id"`
	CertificationName   string `json:"certification_name"`
	IssuingOrganization string `json:"issuing_organization"`
	IssueDate           string `json:"issue_date"`
	ExpiryDate          string `json:"expiry_date"`
	CredentialID        string `json:"credential_id"`
	CredentialURL       string `json:"credential_url"`
	DisplayOrder        int    `json:"display_order"`
}

// Document is the editable aggregate for one resume version.
// ID is empty until the document is first persisted to the backend.
type Document struct {
	ID       string       `json:"id,omitempty"`
	Personal PersonalInfo `json:"personal"`
	Summary  string       `json:"summary"`

	Experiences    []ExperienceEntry    `json:"experiences"`
	Education      []EducationEntry     `json:"education"`
	Skills         []SkillEntry         `json:"skills"`
	Projects       []ProjectEntry       `json:"projects"`
	Certifications []CertificationEntry `json:"certifications"`

	TemplateID   string   `json:"template_id,omitempty"`
	SectionOrder []string `json:"section_order"`
	VersionName  string   `json:"version_name"`
	IsPrimary    bool     `json:"is_primary"`
}

// NewDocument returns an empty document with the default section order.
func NewDocument() *Document {
	return &Document{
		SectionOrder: append([]string(nil), DefaultSectionOrder...),
	}
}

// newRecordID mints an identifier for a sub-record.
func newRecordID() string {
	return uuid.NewString()
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	data, err := json.Marshal(d)
	if err != nil {
		// The document is plain data; marshalling cannot fail.
		panic(err)
	}
	var out Document
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return &out
}
