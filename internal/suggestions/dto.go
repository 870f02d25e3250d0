package suggestions

import "resume-builder/internal/resumes"

type JobDescriptionRequest struct {
	Position string `json:"position"`
	Company  string `json:"company"`
	Industry string `json:"industry"`
}

type ProjectDescriptionRequest struct {
	Name         string   `json:"name"`
	Technologies []string `json:"technologies"`
	ProjectType  string   `json:"projectType"`
}

type SummaryRequest struct {
	PersonalInfo resumes.PersonalInfo `json:"personalInfo"`
	Experience   []resumes.Experience `json:"experience"`
	Skills       []string             `json:"skills"`
}

type SkillsRequest struct {
	Industry      string   `json:"industry"`
	CurrentSkills []string `json:"currentSkills"`
}

type CoverLetterRequest struct {
	Content        resumes.Content `json:"content"`
	JobTitle       string          `json:"jobTitle"`
	CompanyName    string          `json:"companyName"`
	JobDescription string          `json:"jobDescription"`
}

type ATSRequest struct {
	Content        resumes.Content `json:"content"`
	JobDescription string          `json:"jobDescription"`
}
