package exports

import (
	"bytes"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"resume-builder/internal/resumes"
)

const (
	pdfMarginLeft = 18.0
	pdfMarginTop  = 16.0
	pdfBodyWidth  = 174.0 // A4 width minus symmetric margins
)

// RenderPDF lays the resume out as a single-column A4 document. The template
// id only picks the accent color; layout is shared across templates.
func RenderPDF(title string, content resumes.Content) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginLeft)
	pdf.SetAutoPageBreak(true, pdfMarginTop)
	pdf.AddPage()

	r, g, b := accentColor(content.Template)

	// Header: name, contact line.
	name := content.PersonalInfo.FullName()
	if name == "" {
		name = title
	}
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(pdfBodyWidth, 10, name, "", 1, "L", false, 0, "")

	if contact := contactLine(content.PersonalInfo); contact != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(pdfBodyWidth, 5, contact, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	for _, section := range content.ActiveSections() {
		switch section {
		case resumes.SectionPersonalInfo:
			if s := strings.TrimSpace(content.PersonalInfo.Summary); s != "" {
				sectionHeading(pdf, "Summary", r, g, b)
				bodyText(pdf, s)
			}
		case resumes.SectionWorkExperience:
			if len(content.WorkExperience) > 0 {
				sectionHeading(pdf, "Work Experience", r, g, b)
				for _, exp := range content.WorkExperience {
					entryHeading(pdf, exp.Position, exp.Company, timespan(exp.StartDate, exp.EndDate, exp.Current))
					bodyText(pdf, exp.Description)
				}
			}
		case resumes.SectionEducation:
			if len(content.Education) > 0 {
				sectionHeading(pdf, "Education", r, g, b)
				for _, edu := range content.Education {
					degree := edu.Degree
					if edu.Field != "" {
						degree += ", " + edu.Field
					}
					entryHeading(pdf, degree, edu.Institution, timespan(edu.StartDate, edu.EndDate, edu.Current))
					bodyText(pdf, edu.Description)
				}
			}
		case resumes.SectionSkills:
			if lines := skillLines(content.Skills); len(lines) > 0 {
				sectionHeading(pdf, "Skills", r, g, b)
				for _, line := range lines {
					bodyText(pdf, line)
				}
			}
		case resumes.SectionProjects:
			if len(content.Projects) > 0 {
				sectionHeading(pdf, "Projects", r, g, b)
				for _, p := range content.Projects {
					entryHeading(pdf, p.Name, strings.Join(p.Technologies, ", "), "")
					bodyText(pdf, p.Description)
				}
			}
		case resumes.SectionCertifications:
			if len(content.Certifications) > 0 {
				sectionHeading(pdf, "Certifications", r, g, b)
				for _, cert := range content.Certifications {
					entryHeading(pdf, cert.Name, cert.Issuer, cert.Date)
				}
			}
		case resumes.SectionHobbies:
			if len(content.Hobbies) > 0 {
				sectionHeading(pdf, "Hobbies", r, g, b)
				bodyText(pdf, strings.Join(content.Hobbies, ", "))
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sectionHeading(pdf *gofpdf.Fpdf, text string, r, g, b int) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(pdfBodyWidth, 7, strings.ToUpper(text), "", 1, "L", false, 0, "")
	pdf.SetDrawColor(r, g, b)
	x, y := pdf.GetX(), pdf.GetY()
	pdf.Line(x, y, x+pdfBodyWidth, y)
	pdf.Ln(2)
}

func entryHeading(pdf *gofpdf.Fpdf, primary, secondary, dates string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(30, 30, 30)
	if dates != "" {
		pdf.CellFormat(pdfBodyWidth-40, 5, primary, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(40, 5, dates, "", 1, "R", false, 0, "")
	} else {
		pdf.CellFormat(pdfBodyWidth, 5, primary, "", 1, "L", false, 0, "")
	}
	if secondary != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(80, 80, 80)
		pdf.CellFormat(pdfBodyWidth, 5, secondary, "", 1, "L", false, 0, "")
	}
}

func bodyText(pdf *gofpdf.Fpdf, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		pdf.Ln(1)
		return
	}
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(50, 50, 50)
	pdf.MultiCell(pdfBodyWidth, 4.5, text, "", "L", false)
	pdf.Ln(1)
}

func contactLine(p resumes.PersonalInfo) string {
	parts := make([]string, 0, 5)
	for _, v := range []string{p.Email, p.Phone, p.Address, p.LinkedIn, p.Website} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "  |  ")
}

func timespan(start, end string, current bool) string {
	if start == "" && end == "" && !current {
		return ""
	}
	if current {
		end = "Present"
	}
	if end == "" {
		return start
	}
	return start + " - " + end
}

func skillLines(s resumes.Skills) []string {
	var out []string
	if len(s.Technical) > 0 {
		out = append(out, "Technical: "+strings.Join(s.Technical, ", "))
	}
	if len(s.Soft) > 0 {
		out = append(out, "Soft: "+strings.Join(s.Soft, ", "))
	}
	if len(s.Languages) > 0 {
		out = append(out, "Languages: "+strings.Join(s.Languages, ", "))
	}
	return out
}

func accentColor(template string) (int, int, int) {
	switch template {
	case "classic":
		return 20, 20, 20
	case "creative":
		return 142, 68, 173
	case "minimal":
		return 100, 100, 100
	case "corporate":
		return 21, 67, 96
	default: // modern
		return 41, 128, 185
	}
}
