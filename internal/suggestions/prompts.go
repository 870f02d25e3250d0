package suggestions

import (
	"fmt"
	"strings"

	"resume-builder/internal/resumes"
)

// JobDescriptionPrompt asks for bullet points describing a role.
func JobDescriptionPrompt(position, company, industry string) string {
	industryClause := ""
	if industry != "" {
		industryClause = fmt.Sprintf(" in the %s industry", industry)
	}
	return fmt.Sprintf(`Generate a professional job description for a %s position at %s%s.

Format the response as bullet points highlighting key responsibilities and achievements. Focus on:
- Specific technical skills and accomplishments
- Leadership and collaboration experiences
- Quantifiable results and impact
- Industry-relevant keywords

Keep it concise and professional, around 3-4 bullet points.`, position, company, industryClause)
}

// ProjectDescriptionPrompt asks for a short project blurb.
func ProjectDescriptionPrompt(name string, technologies []string, projectType string) string {
	techStack := "modern web technologies"
	if len(technologies) > 0 {
		techStack = strings.Join(technologies, ", ")
	}
	typeClause := ""
	if projectType != "" {
		typeClause = fmt.Sprintf(", a %s project", projectType)
	}
	return fmt.Sprintf(`Generate a professional project description for "%s"%s built with %s.

Include:
- Brief overview of the project's purpose and functionality
- Key technical features and implementations
- Your role and contributions
- Impact or results achieved

Keep it concise and professional, around 2-3 sentences.`, name, typeClause, techStack)
}

// SummaryPrompt asks for a professional summary tailored to the resume.
func SummaryPrompt(info resumes.PersonalInfo, experience []resumes.Experience, skills []string) string {
	name := info.FullName()
	experienceClause := ""
	if len(experience) > 0 {
		positions := make([]string, 0, len(experience))
		for _, exp := range experience {
			positions = append(positions, exp.Position)
		}
		experienceClause = fmt.Sprintf("with experience in %s", strings.Join(positions, ", "))
	}
	skillsClause := ""
	if len(skills) > 0 {
		top := skills
		if len(top) > 5 {
			top = top[:5]
		}
		skillsClause = fmt.Sprintf(" and skilled in %s", strings.Join(top, ", "))
	}
	return fmt.Sprintf(`Generate a professional summary for %s, a professional %s%s.

The summary should:
- Be 2-3 sentences long
- Highlight key strengths and expertise
- Be engaging and professional
- Include relevant industry keywords
- Focus on value proposition to employers

Make it compelling and tailored for resume use.`, name, experienceClause, skillsClause)
}

// SkillsPrompt asks for comma-separated skill suggestions.
func SkillsPrompt(industry string, currentSkills []string) string {
	if industry == "" {
		industry = "technology"
	}
	return fmt.Sprintf(`Suggest 10 relevant professional skills for someone in the %s industry.

Current skills to avoid duplicating: %s

Provide a mix of:
- Technical skills
- Soft skills
- Industry-specific skills

Return only the skill names, separated by commas.`, industry, strings.Join(currentSkills, ", "))
}

// CoverLetterPrompt asks for a full cover letter grounded in the resume.
func CoverLetterPrompt(content resumes.Content, jobTitle, companyName, jobDescription string) string {
	name := content.PersonalInfo.FullName()
	if jobTitle == "" {
		jobTitle = "the advertised position"
	}
	if companyName == "" {
		companyName = "your company"
	}
	recentExperience := "Various professional roles"
	if len(content.WorkExperience) > 0 {
		recentExperience = content.WorkExperience[0].Position + " at " + content.WorkExperience[0].Company
	}
	keySkills := "Technical expertise"
	if len(content.Skills.Technical) > 0 {
		top := content.Skills.Technical
		if len(top) > 5 {
			top = top[:5]
		}
		keySkills = strings.Join(top, ", ")
	}
	jdClause := ""
	if jobDescription != "" {
		jdClause = "\n- Job requirements: " + jobDescription
	}
	return fmt.Sprintf(`Generate a professional cover letter for %s applying for the position of %s at %s.

Use this information:
- Name: %s
- Email: %s
- Recent experience: %s
- Key skills: %s%s

The cover letter should:
- Be professional and engaging
- Highlight relevant experience and skills
- Show enthusiasm for the role and company
- Be around 3-4 paragraphs
- Include proper business letter formatting

Make it personalized and compelling.`, name, jobTitle, companyName, name, content.PersonalInfo.Email, recentExperience, keySkills, jdClause)
}

// ATSPrompt asks for applicant-tracking-system optimization suggestions.
func ATSPrompt(content resumes.Content, jobDescription string) string {
	summary := content.PersonalInfo.Summary
	if summary == "" {
		summary = "No summary provided"
	}
	roles := make([]string, 0, len(content.WorkExperience))
	for _, exp := range content.WorkExperience {
		roles = append(roles, fmt.Sprintf("%s at %s", exp.Position, exp.Company))
	}
	skills := "No skills listed"
	if len(content.Skills.Technical) > 0 {
		skills = strings.Join(content.Skills.Technical, ", ")
	}
	jdClause := ""
	if jobDescription != "" {
		jdClause = "\nJob Description: " + jobDescription
	}
	return fmt.Sprintf(`Analyze this resume data and suggest improvements for ATS (Applicant Tracking System) optimization:

Resume Summary: %s
Experience: %s
Skills: %s%s

Provide specific suggestions for:
1. Keywords to include
2. Skills to emphasize
3. Summary improvements
4. Formatting recommendations

Keep suggestions actionable and specific.`, summary, strings.Join(roles, ", "), skills, jdClause)
}

// ParseSkills splits a comma-separated model response into clean skill names.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if skill := strings.TrimSpace(p); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}
