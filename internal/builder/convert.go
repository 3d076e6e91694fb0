package builder

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/optihire/internal/api"
)

// FromComplete hydrates a builder document from a backend complete
// resume. Collections are normalized so DisplayOrder is dense regardless
// of the order the backend returned them in.
func FromComplete(rc *api.ResumeComplete) *Document {
	doc := NewDocument()
	doc.ID = rc.ID.String()
	doc.VersionName = rc.VersionName
	doc.IsPrimary = rc.IsPrimary
	if rc.TemplateID != nil {
		doc.TemplateID = rc.TemplateID.String()
	}
	if rc.SectionOrder != nil && len(rc.SectionOrder.Sections) > 0 {
		doc.SectionOrder = append([]string(nil), rc.SectionOrder.Sections...)
	}

	doc.Personal = PersonalInfo{
		FullName:     deref(rc.FullName),
		Email:        deref(rc.Email),
		Phone:        deref(rc.Phone),
		Location:     deref(rc.Location),
		LinkedinURL:  deref(rc.LinkedinURL),
		GithubURL:    deref(rc.GithubURL),
		PortfolioURL: deref(rc.PortfolioURL),
	}
	doc.Summary = deref(rc.ProfessionalSummary)

	for _, e := range rc.Experiences {
		doc.Experiences = append(doc.Experiences, ExperienceEntry{
			ID:           e.ID.String(),
			CompanyName:  e.CompanyName,
			JobTitle:     e.JobTitle,
			Location:     deref(e.Location),
			StartDate:    e.StartDate,
			EndDate:      deref(e.EndDate),
			IsCurrent:    e.IsCurrent,
			Description:  deref(e.Description),
			Achievements: append([]string(nil), e.Achievements...),
			SkillsUsed:   append([]string(nil), e.SkillsUsed...),
			DisplayOrder: e.DisplayOrder,
		})
	}
	for _, e := range rc.Education {
		doc.Education = append(doc.Education, EducationEntry{
			ID:                 e.ID.String(),
			InstitutionName:    e.InstitutionName,
			DegreeType:         deref(e.DegreeType),
			FieldOfStudy:       deref(e.FieldOfStudy),
			Location:           deref(e.Location),
			StartDate:          deref(e.StartDate),
			EndDate:            deref(e.EndDate),
			IsCurrent:          e.IsCurrent,
			GPA:                formatNumber(e.GPA),
			Achievements:       append([]string(nil), e.Achievements...),
			RelevantCoursework: append([]string(nil), e.RelevantCoursework...),
			DisplayOrder:       e.DisplayOrder,
		})
	}
	for _, s := range rc.Skills {
		doc.Skills = append(doc.Skills, SkillEntry{
			ID:                s.ID.String(),
			SkillName:         s.SkillName,
			SkillCategory:     deref(s.SkillCategory),
			ProficiencyLevel:  deref(s.ProficiencyLevel),
			YearsOfExperience: formatNumber(s.YearsOfExperience),
			IsPrimary:         s.IsPrimary,
			DisplayOrder:      s.DisplayOrder,
		})
	}
	for _, p := range rc.Projects {
		doc.Projects = append(doc.Projects, ProjectEntry{
			ID:               p.ID.String(),
			ProjectName:      p.ProjectName,
			Role:             deref(p.Role),
			Description:      deref(p.Description),
			TechnologiesUsed: append([]string(nil), p.TechnologiesUsed...),
			ProjectURL:       deref(p.ProjectURL),
			StartDate:        deref(p.StartDate),
			EndDate:          deref(p.EndDate),
			IsCurrent:        p.IsCurrent,
			Achievements:     append([]string(nil), p.Achievements...),
			DisplayOrder:     p.DisplayOrder,
		})
	}
	for _, c := range rc.Certifications {
		doc.Certifications = append(doc.Certifications, CertificationEntry{
			ID:                  c.ID.String(),
			CertificationName:   c.CertificationName,
			IssuingOrganization: deref(c.IssuingOrganization),
			IssueDate:           deref(c.IssueDate),
			ExpiryDate:          deref(c.ExpiryDate),
			CredentialID:        deref(c.CredentialID),
			CredentialURL:       deref(c.CredentialURL),
			DisplayOrder:        c.DisplayOrder,
		})
	}

	doc.Normalize()
	return doc
}

// ToCreateRequest builds the POST /resumes body for a first-time save.
func (d *Document) ToCreateRequest(userID uuid.UUID) *api.CreateResumeRequest {
	req := &api.CreateResumeRequest{
		UserID:              userID,
		VersionName:         d.VersionName,
		IsPrimary:           d.IsPrimary,
		FullName:            d.Personal.FullName,
		Email:               d.Personal.Email,
		Phone:               d.Personal.Phone,
		Location:            d.Personal.Location,
		LinkedinURL:         d.Personal.LinkedinURL,
		GithubURL:           d.Personal.GithubURL,
		PortfolioURL:        d.Personal.PortfolioURL,
		ProfessionalSummary: d.Summary,
	}
	if d.TemplateID != "" {
		if id, err := uuid.Parse(d.TemplateID); err == nil {
			req.TemplateID = &id
		}
	}
	return req
}

// ToUpdateRequest builds the PUT /resumes/{id} body for a re-save.
func (d *Document) ToUpdateRequest() *api.UpdateResumeRequest {
	req := &api.UpdateResumeRequest{
		VersionName:         ptr(d.VersionName),
		IsPrimary:           ptr(d.IsPrimary),
		FullName:            ptr(d.Personal.FullName),
		Email:               ptr(d.Personal.Email),
		Phone:               ptr(d.Personal.Phone),
		Location:            ptr(d.Personal.Location),
		LinkedinURL:         ptr(d.Personal.LinkedinURL),
		GithubURL:           ptr(d.Personal.GithubURL),
		PortfolioURL:        ptr(d.Personal.PortfolioURL),
		ProfessionalSummary: ptr(d.Summary),
	}
	if len(d.SectionOrder) > 0 {
		req.SectionOrder = &api.SectionOrder{Sections: append([]string(nil), d.SectionOrder...)}
	}
	if d.TemplateID != "" {
		if id, err := uuid.Parse(d.TemplateID); err == nil {
			req.TemplateID = &id
		}
	}
	return req
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr[T any](v T) *T {
	return &v
}

func formatNumber(n *api.Number) string {
	if n == nil {
		return ""
	}
	return strconv.FormatFloat(float64(*n), 'f', -1, 64)
}
