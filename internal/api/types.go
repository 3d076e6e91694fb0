// Package api provides a typed HTTP client for the OptiHire backend REST API.
package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the processing state reported for an uploaded resume.
type Status string

// Processing status values reported by the backend.
const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusCompleted  Status = "Completed"
	StatusFailed     Status = "Failed"
)

// IsTerminal reports whether no further status changes are expected.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// UnmarshalJSON normalizes the status casing. Older backend versions
// reported lowercase values; title case is authoritative.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch strings.ToLower(raw) {
	case "pending":
		*s = StatusPending
	case "processing":
		*s = StatusProcessing
	case "completed":
		*s = StatusCompleted
	case "failed":
		*s = StatusFailed
	default:
		*s = Status(raw)
	}
	return nil
}

// Number is a decimal value that the backend may serialize as either a
// JSON number or a quoted string.
type Number float64

// UnmarshalJSON accepts both quoted and bare numeric forms.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*n = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// SectionOrder is the stored ordering of resume sections. The backend
// persists it as a JSON object with a single "sections" key.
type SectionOrder struct {
	Sections []string `json:"sections"`
}

// Resume is the flat resume record returned by GET /resumes/{id}.
type Resume struct {
	ID                  uuid.UUID     `json:"id"`
	UserID              uuid.UUID     `json:"user_id"`
	VersionName         string        `json:"version_name"`
	TemplateID          *uuid.UUID    `json:"template_id"`
	IsPrimary           bool          `json:"is_primary"`
	SectionOrder        *SectionOrder `json:"section_order"`
	ContentHash         *string       `json:"content_hash"`
	FullName            *string       `json:"full_name"`
	Email               *string       `json:"email"`
	Phone               *string       `json:"phone"`
	Location            *string       `json:"location"`
	LinkedinURL         *string       `json:"linkedin_url"`
	GithubURL           *string       `json:"github_url"`
	PortfolioURL        *string       `json:"portfolio_url"`
	ProfessionalSummary *string       `json:"professional_summary"`
	RawText             *string       `json:"raw_text,omitempty"`
	ProcessingStatus    Status        `json:"processing_status"`
	ErrorMessage        *string       `json:"error_message"`
	LastAnalyzedAt      *time.Time    `json:"last_analyzed_at"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
	DeletedAt           *time.Time    `json:"deleted_at"`
}

// ResumeListItem is the lightweight shape returned by GET /resumes.
type ResumeListItem struct {
	ID               uuid.UUID `json:"id"`
	VersionName      string    `json:"version_name"`
	IsPrimary        bool      `json:"is_primary"`
	FullName         *string   `json:"full_name"`
	ProcessingStatus Status    `json:"processing_status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Experience is a work history entry on a complete resume.
// Dates are ISO strings (YYYY-MM-DD) as sent by the backend.
type Experience struct {
	ID           uuid.UUID `json:"id"`
	ResumeID     uuid.UUID `json:"resume_id"`
	CompanyName  string    `json:"company_name"`
	JobTitle     string    `json:"job_title"`
	Location     *string   `json:"location"`
	StartDate    string    `json:"start_date"`
	EndDate      *string   `json:"end_date"`
	IsCurrent    bool      `json:"is_current"`
	Description  *string   `json:"description"`
	Achievements []string  `json:"achievements"`
	SkillsUsed   []string  `json:"skills_used"`
	DisplayOrder int       `json:"display_order"`
}

// Education is a schooling entry on a complete resume.
type Education struct {
	ID                 uuid.UUID `json:"id"`
	ResumeID           uuid.UUID `json:"resume_id"`
	InstitutionName    string    `json:"institution_name"`
	DegreeType         *string   `json:"degree_type"`
	FieldOfStudy       *string   `json:"field_of_study"`
	Location           *string   `json:"location"`
	StartDate          *string   `json:"start_date"`
	EndDate            *string   `json:"end_date"`
	IsCurrent          bool      `json:"is_current"`
	GPA                *Number   `json:"gpa"`
	Achievements       []string  `json:"achievements"`
	RelevantCoursework []string  `json:"relevant_coursework"`
	DisplayOrder       int       `json:"display_order"`
}

// Skill is a single skill entry on a complete resume.
type Skill struct {
	ID                uuid.UUID `json:"id"`
	ResumeID          uuid.UUID `json:"resume_id"`
	SkillName         string    `json:"skill_name"`
	SkillCategory     *string   `json:"skill_category"`
	ProficiencyLevel  *string   `json:"proficiency_level"`
	YearsOfExperience *Number   `json:"years_of_experience"`
	IsPrimary         bool      `json:"is_primary"`
	DisplayOrder      int       `json:"display_order"`
}

// Certification is a credential entry on a complete resume.
type Certification struct {
	ID                  uuid.UUID `json:"id"`
	ResumeID            uuid.UUID `json:"resume_id"`
	CertificationName   string    `json:"certification_name"`
	IssuingOrganization *string   `json:"issuing_organization"`
	IssueDate           *string   `json:"issue_date"`
	ExpiryDate          *string   `json:"expiry_date"`
	CredentialID        *string   `json:"credential_id"`
	CredentialURL       *string   `json:"credential_url"`
	DisplayOrder        int       `json:"display_order"`
}

// Project is a project entry on a complete resume.
type Project struct {
	ID               uuid.UUID `json:"id"`
	ResumeID         uuid.UUID `json:"resume_id"`
	ProjectName      string    `json:"project_name"`
	Role             *string   `json:"role"`
	Description      *string   `json:"description"`
	TechnologiesUsed []string  `json:"technologies_used"`
	ProjectURL       *string   `json:"project_url"`
	StartDate        *string   `json:"start_date"`
	EndDate          *string   `json:"end_date"`
	IsCurrent        bool      `json:"is_current"`
	Achievements     []string  `json:"achievements"`
	DisplayOrder     int       `json:"display_order"`
}

// ResumeComplete is the full resume with all related sections,
// as returned by GET /resumes/{id}/complete.
type ResumeComplete struct {
	Resume
	Experiences    []Experience    `json:"experiences"`
	Education      []Education     `json:"education"`
	Skills         []Skill         `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
}

// ParseStatus is the response of GET /resumes/parse-status/{id}.
type ParseStatus struct {
	ID           uuid.UUID `json:"id"`
	Status       Status    `json:"status"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ErrorDetails *string   `json:"error_details"`
}

// UploadResult is the response of POST /resumes/upload.
type UploadResult struct {
	ID               uuid.UUID `json:"id"`
	URL              string    `json:"url"`
	Filename         string    `json:"filename"`
	StoredName       string    `json:"stored_name"`
	UserID           uuid.UUID `json:"user_id"`
	ProcessingStatus Status    `json:"processing_status"`
	Message          string    `json:"message"`
}

// CreateResumeRequest is the body of POST /resumes.
type CreateResumeRequest struct {
	UserID              uuid.UUID  `json:"user_id"`
	VersionName         string     `json:"version_name"`
	TemplateID          *uuid.UUID `json:"template_id,omitempty"`
	IsPrimary           bool       `json:"is_primary"`
	FullName            string     `json:"full_name,omitempty"`
	Email               string     `json:"email,omitempty"`
	Phone               string     `json:"phone,omitempty"`
	Location            string     `json:"location,omitempty"`
	LinkedinURL         string     `json:"linkedin_url,omitempty"`
	GithubURL           string     `json:"github_url,omitempty"`
	PortfolioURL        string     `json:"portfolio_url,omitempty"`
	ProfessionalSummary string     `json:"professional_summary,omitempty"`
}

// UpdateResumeRequest is the body of PUT /resumes/{id}.
// Only non-nil fields are sent, matching the backend's partial update.
type UpdateResumeRequest struct {
	VersionName         *string    `json:"version_name,omitempty"`
	TemplateID          *uuid.UUID `json:"template_id,omitempty"`
	IsPrimary           *bool         `json:"is_primary,omitempty"`
	SectionOrder        *SectionOrder `json:"section_order,omitempty"`
	FullName            *string    `json:"full_name,omitempty"`
	Email               *string    `json:"email,omitempty"`
	Phone               *string    `json:"phone,omitempty"`
	Location            *string    `json:"location,omitempty"`
	LinkedinURL         *string    `json:"linkedin_url,omitempty"`
	GithubURL           *string    `json:"github_url,omitempty"`
	PortfolioURL        *string    `json:"portfolio_url,omitempty"`
	ProfessionalSummary *string    `json:"professional_summary,omitempty"`
}

// Download is a rendered PDF returned by GET /resumes/{id}/download.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}
