package exports

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"resume-builder/internal/resumes"
)

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// RenderDOCX builds a minimal WordprocessingML package: one document part with
// styled paragraphs, no styles.xml. Word and LibreOffice both open it.
func RenderDOCX(title string, content resumes.Content) ([]byte, error) {
	var doc bytes.Buffer
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	doc.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	name := content.PersonalInfo.FullName()
	if name == "" {
		name = title
	}
	writeParagraph(&doc, name, 36, true)
	if contact := contactLine(content.PersonalInfo); contact != "" {
		writeParagraph(&doc, contact, 18, false)
	}

	for _, section := range content.ActiveSections() {
		switch section {
		case resumes.SectionPersonalInfo:
			if s := strings.TrimSpace(content.PersonalInfo.Summary); s != "" {
				writeParagraph(&doc, "SUMMARY", 24, true)
				writeParagraph(&doc, s, 20, false)
			}
		case resumes.SectionWorkExperience:
			if len(content.WorkExperience) > 0 {
				writeParagraph(&doc, "WORK EXPERIENCE", 24, true)
				for _, exp := range content.WorkExperience {
					heading := exp.Position
					if exp.Company != "" {
						heading += " - " + exp.Company
					}
					if ts := timespan(exp.StartDate, exp.EndDate, exp.Current); ts != "" {
						heading += " (" + ts + ")"
					}
					writeParagraph(&doc, heading, 22, true)
					writeParagraph(&doc, exp.Description, 20, false)
				}
			}
		case resumes.SectionEducation:
			if len(content.Education) > 0 {
				writeParagraph(&doc, "EDUCATION", 24, true)
				for _, edu := range content.Education {
					heading := edu.Degree
					if edu.Field != "" {
						heading += ", " + edu.Field
					}
					if edu.Institution != "" {
						heading += " - " + edu.Institution
					}
					if ts := timespan(edu.StartDate, edu.EndDate, edu.Current); ts != "" {
						heading += " (" + ts + ")"
					}
					writeParagraph(&doc, heading, 22, true)
					writeParagraph(&doc, edu.Description, 20, false)
				}
			}
		case resumes.SectionSkills:
			if lines := skillLines(content.Skills); len(lines) > 0 {
				writeParagraph(&doc, "SKILLS", 24, true)
				for _, line := range lines {
					writeParagraph(&doc, line, 20, false)
				}
			}
		case resumes.SectionProjects:
			if len(content.Projects) > 0 {
				writeParagraph(&doc, "PROJECTS", 24, true)
				for _, p := range content.Projects {
					heading := p.Name
					if len(p.Technologies) > 0 {
						heading += " (" + strings.Join(p.Technologies, ", ") + ")"
					}
					writeParagraph(&doc, heading, 22, true)
					writeParagraph(&doc, p.Description, 20, false)
				}
			}
		case resumes.SectionCertifications:
			if len(content.Certifications) > 0 {
				writeParagraph(&doc, "CERTIFICATIONS", 24, true)
				for _, cert := range content.Certifications {
					line := cert.Name
					if cert.Issuer != "" {
						line += " - " + cert.Issuer
					}
					if cert.Date != "" {
						line += " (" + cert.Date + ")"
					}
					writeParagraph(&doc, line, 20, false)
				}
			}
		case resumes.SectionHobbies:
			if len(content.Hobbies) > 0 {
				writeParagraph(&doc, "HOBBIES", 24, true)
				writeParagraph(&doc, strings.Join(content.Hobbies, ", "), 20, false)
			}
		}
	}

	doc.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", doc.String()},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeParagraph emits one paragraph with a single run. Size is in half-points.
func writeParagraph(buf *bytes.Buffer, text string, halfPoints int, bold bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	boldTag := ""
	if bold {
		boldTag = `<w:b/>`
	}
	fmt.Fprintf(buf,
		`<w:p><w:r><w:rPr>%s<w:sz w:val="%d"/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		boldTag, halfPoints, escapeXML(text))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
