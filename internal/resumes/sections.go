package resumes

// Section identifiers. The order of a content's Sections field is the order
// the renderer lays them out in.
const (
	SectionPersonalInfo   = "personalInfo"
	SectionWorkExperience = "workExperience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionHobbies        = "hobbies"
)

var knownSections = map[string]bool{
	SectionPersonalInfo:   true,
	SectionWorkExperience: true,
	SectionEducation:      true,
	SectionSkills:         true,
	SectionProjects:       true,
	SectionCertifications: true,
	SectionHobbies:        true,
}

// DefaultSections is the section set a fresh editing session starts with.
func DefaultSections() []string {
	return []string{SectionPersonalInfo, SectionWorkExperience, SectionEducation, SectionSkills}
}

// KnownSection reports whether id names a resume section.
func KnownSection(id string) bool {
	return knownSections[id]
}

// NormalizeSections deduplicates ids, drops unknown ones and guarantees that
// personalInfo is present. personalInfo is required and cannot be removed.
func NormalizeSections(ids []string) []string {
	out := make([]string, 0, len(ids)+1)
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !knownSections[id] || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if !seen[SectionPersonalInfo] {
		out = append([]string{SectionPersonalInfo}, out...)
	}
	return out
}
