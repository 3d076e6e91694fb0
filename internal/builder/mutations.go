package builder

// Collection helpers shared by the five section types. Every operation
// that removes or reorders entries renormalizes DisplayOrder to a dense
// 0..n-1 sequence; storage order is never authoritative.

func removeEntry[T any](items []T, id string, getID func(*T) string, setOrder func(*T, int)) ([]T, bool) {
	for i := range items {
		if getID(&items[i]) == id {
			items = append(items[:i], items[i+1:]...)
			renumber(items, setOrder)
			return items, true
		}
	}
	return items, false
}

func moveEntry[T any](items []T, id string, toIndex int, getID func(*T) string, getOrder func(*T) int, setOrder func(*T, int)) bool {
	sortByOrder(items, getOrder)

	from := -1
	for i := range items {
		if getID(&items[i]) == id {
			from = i
			break
		}
	}
	if from == -1 {
		return false
	}
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex >= len(items) {
		toIndex = len(items) - 1
	}
	if from == toIndex {
		renumber(items, setOrder)
		return true
	}

	entry := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items, entry)
	copy(items[toIndex+1:], items[toIndex:len(items)-1])
	items[toIndex] = entry
	renumber(items, setOrder)
	return true
}

func renumber[T any](items []T, setOrder func(*T, int)) {
	for i := range items {
		setOrder(&items[i], i)
	}
}

func sortByOrder[T any](items []T, getOrder func(*T) int) {
	// Insertion sort keeps the original relative order for equal keys;
	// collections are small enough that this is never a concern.
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && getOrder(&items[j]) < getOrder(&items[j-1]); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

// ---- Personal / summary / metadata ----

// SetPersonal replaces the contact block.
func (d *Document) SetPersonal(p PersonalInfo) {
	d.Personal = p
}

// SetSummary replaces the professional summary text.
func (d *Document) SetSummary(summary string) {
	d.Summary = summary
}

// SetVersionName sets the display name of this resume version.
func (d *Document) SetVersionName(name string) {
	d.VersionName = name
}

// SetTemplate sets the presentation template id.
func (d *Document) SetTemplate(templateID string) {
	d.TemplateID = templateID
}

// SetPrimary marks or unmarks this version as the primary resume.
func (d *Document) SetPrimary(primary bool) {
	d.IsPrimary = primary
}

// SetSectionOrder replaces the presentation order of sections.
func (d *Document) SetSectionOrder(order []string) {
	d.SectionOrder = append([]string(nil), order...)
}

// ---- Experiences ----

// AddExperience appends a new entry and returns its generated id.
func (d *Document) AddExperience(entry ExperienceEntry) string {
	entry.ID = newRecordID()
	entry.DisplayOrder = len(d.Experiences)
	d.Experiences = append(d.Experiences, entry)
	return entry.ID
}

// UpdateExperience applies mutate to the entry with the given id.
// Returns false when no entry matches.
func (d *Document) UpdateExperience(id string, mutate func(*ExperienceEntry)) bool {
	for i := range d.Experiences {
		if d.Experiences[i].ID == id {
			mutate(&d.Experiences[i])
			d.Experiences[i].ID = id // id is not editable
			return true
		}
	}
	return false
}

// RemoveExperience deletes the entry with the given id and renumbers
// the remaining entries.
func (d *Document) RemoveExperience(id string) bool {
	var ok bool
	d.Experiences, ok = removeEntry(d.Experiences, id,
		func(e *ExperienceEntry) string { return e.ID },
		func(e *ExperienceEntry, n int) { e.DisplayOrder = n })
	return ok
}

// MoveExperience moves the entry with the given id to toIndex.
func (d *Document) MoveExperience(id string, toIndex int) bool {
	return moveEntry(d.Experiences, id, toIndex,
		func(e *ExperienceEntry) string { return e.ID },
		func(e *ExperienceEntry) int { return e.DisplayOrder },
		func(e *ExperienceEntry, n int) { e.DisplayOrder = n })
}

// ---- Education ----

// AddEducation appends a new entry and returns its generated id.
func (d *Document) AddEducation(entry EducationEntry) string {
	entry.ID = newRecordID()
	entry.DisplayOrder = len(d.Education)
	d.Education = append(d.Education, entry)
	return entry.ID
}

// UpdateEducation applies mutate to the entry with the given id.
func (d *Document) UpdateEducation(id string, mutate func(*EducationEntry)) bool {
	for i := range d.Education {
		if d.Education[i].ID == id {
			mutate(&d.Education[i])
			d.Education[i].ID = id
			return true
		}
	}
	return false
}

// RemoveEducation deletes the entry with the given id.
func (d *Document) RemoveEducation(id string) bool {
	var ok bool
	d.Education, ok = removeEntry(d.Education, id,
		func(e *EducationEntry) string { return e.ID },
		func(e *EducationEntry, n int) { e.DisplayOrder = n })
	return ok
}

// MoveEducation moves the entry with the given id to toIndex.
func (d *Document) MoveEducation(id string, toIndex int) bool {
	return moveEntry(d.Education, id, toIndex,
		func(e *EducationEntry) string { return e.ID },
		func(e *EducationEntry) int { return e.DisplayOrder },
		func(e *EducationEntry, n int) { e.DisplayOrder = n })
}

// ---- Skills ----

// AddSkill appends a new entry and returns its generated id.
func (d *Document) AddSkill(entry SkillEntry) string {
	entry.ID = newRecordID()
	entry.DisplayOrder = len(d.Skills)
	d.Skills = append(d.Skills, entry)
	return entry.ID
}

// UpdateSkill applies mutate to the entry with the given id.
func (d *Document) UpdateSkill(id string, mutate func(*SkillEntry)) bool {
	for i := range d.Skills {
		if d.Skills[i].ID == id {
			mutate(&d.Skills[i])
			d.Skills[i].ID = id
			return true
		}
	}
	return false
}

// RemoveSkill deletes the entry with the given id.
func (d *Document) RemoveSkill(id string) bool {
	var ok bool
	d.Skills, ok = removeEntry(d.Skills, id,
		func(e *SkillEntry) string { return e.ID },
		func(e *SkillEntry, n int) { e.DisplayOrder = n })
	return ok
}

// MoveSkill moves the entry with the given id to toIndex.
func (d *Document) MoveSkill(id string, toIndex int) bool {
	return moveEntry(d.Skills, id, toIndex,
		func(e *SkillEntry) string { return e.ID },
		func(e *SkillEntry) int { return e.DisplayOrder },
		func(e *SkillEntry, n int) { e.DisplayOrder = n })
}

// ---- Projects ----

// AddProject appends a new entry and returns its generated id.
func (d *Document) AddProject(entry ProjectEntry) string {
	entry.ID = newRecordID()
	entry.DisplayOrder = len(d.Projects)
	d.Projects = append(d.Projects, entry)
	return entry.ID
}

// UpdateProject applies mutate to the entry with the given id.
func (d *Document) UpdateProject(id string, mutate func(*ProjectEntry)) bool {
	for i := range d.Projects {
		if d.Projects[i].ID == id {
			mutate(&d.Projects[i])
			d.Projects[i].ID = id
			return true
		}
	}
	return false
}

// RemoveProject deletes the entry with the given id.
func (d *Document) RemoveProject(id string) bool {
	var ok bool
	d.Projects, ok = removeEntry(d.Projects, id,
		func(e *ProjectEntry) string { return e.ID },
		func(e *ProjectEntry, n int) { e.DisplayOrder = n })
	return ok
}

// MoveProject moves the entry with the given id to toIndex.
func (d *Document) MoveProject(id string, toIndex int) bool {
	return moveEntry(d.Projects, id, toIndex,
		func(e *ProjectEntry) string { return e.ID },
		func(e *ProjectEntry) int { return e.DisplayOrder },
		func(e *ProjectEntry, n int) { e.DisplayOrder = n })
}

// ---- Certifications ----

// AddCertification appends a new entry and returns its generated id.
func (d *Document) AddCertification(entry CertificationEntry) string {
	entry.ID = newRecordID()
	entry.DisplayOrder = len(d.Certifications)
	d.Certifications = append(d.Certifications, entry)
	return entry.ID
}

// UpdateCertification applies mutate to the entry with the given id.
func (d *Document) UpdateCertification(id string, mutate func(*CertificationEntry)) bool {
	for i := range d.Certifications {
		if d.Certifications[i].ID == id {
			mutate(&d.Certifications[i])
			d.Certifications[i].ID = id
			return true
		}
	}
	return false
}

// RemoveCertification deletes the entry with the given id.
func (d *Document) RemoveCertification(id string) bool {
	var ok bool
	d.Certifications, ok = removeEntry(d.Certifications, id,
		func(e *CertificationEntry) string { return e.ID },
		func(e *CertificationEntry, n int) { e.DisplayOrder = n })
	return ok
}

// MoveCertification moves the entry with the given id to toIndex.
func (d *Document) MoveCertification(id string, toIndex int) bool {
	return moveEntry(d.Certifications, id, toIndex,
		func(e *CertificationEntry) string { return e.ID },
		func(e *CertificationEntry) int { return e.DisplayOrder },
		func(e *CertificationEntry, n int) { e.DisplayOrder = n })
}

// Normalize sorts every collection by DisplayOrder and renumbers it
// densely. Used after hydrating from an external source that does not
// guarantee storage order.
func (d *Document) Normalize() {
	sortByOrder(d.Experiences, func(e *ExperienceEntry) int { return e.DisplayOrder })
	renumber(d.Experiences, func(e *ExperienceEntry, n int) { e.DisplayOrder = n })

	sortByOrder(d.Education, func(e *EducationEntry) int { return e.DisplayOrder })
	renumber(d.Education, func(e *EducationEntry, n int) { e.DisplayOrder = n })

	sortByOrder(d.Skills, func(e *SkillEntry) int { return e.DisplayOrder })
	renumber(d.Skills, func(e *SkillEntry, n int) { e.DisplayOrder = n })

	sortByOrder(d.Projects, func(e *ProjectEntry) int { return e.DisplayOrder })
	renumber(d.Projects, func(e *ProjectEntry, n int) { e.DisplayOrder = n })

	sortByOrder(d.Certifications, func(e *CertificationEntry) int { return e.DisplayOrder })
	renumber(d.Certifications, func(e *CertificationEntry, n int) { e.DisplayOrder = n })
}
