// Package resumes defines the semantic shape of a resume document's content
// blob. The document store treats content as opaque; validation happens here,
// at the boundary where content is produced and consumed.
package resumes

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultTemplate is the rendering variant a fresh session starts with.
const DefaultTemplate = "modern"

// Templates lists the known rendering variants. The template id selects visual
// presentation only and does not affect persisted semantics.
var Templates = []string{"modern", "classic", "creative", "minimal", "corporate"}

var monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// PersonalInfo holds identity and contact fields. All fields are optional
// strings; the renderer skips empty ones.
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	LinkedIn  string `json:"linkedin"`
	Website   string `json:"website"`
	Summary   string `json:"summary"`
}

// Experience is one work history entry. Dates are "YYYY-MM" or empty; Current
// set suppresses EndDate.
type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education is one education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// Project is one project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// Certification is one certification entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url,omitempty"`
}

// Skills holds three parallel skill lists. Uniqueness within each list is
// best-effort, enforced by the editing UI, not here.
type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Languages []string `json:"languages"`
}

// Content is the full resume content blob: section data plus the selected
// template and the ordered set of active sections.
type Content struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	WorkExperience []Experience    `json:"workExperience"`
	Education      []Education     `json:"education"`
	Skills         Skills          `json:"skills"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Hobbies        []string        `json:"hobbies"`
	Template       string          `json:"template"`
	Sections       []string        `json:"sections"`
}

// NewContent returns an empty content blob with defaults applied.
func NewContent() Content {
	return Content{
		WorkExperience: []Experience{},
		Education:      []Education{},
		Skills:         Skills{Technical: []string{}, Soft: []string{}, Languages: []string{}},
		Projects:       []Project{},
		Certifications: []Certification{},
		Hobbies:        []string{},
		Template:       DefaultTemplate,
		Sections:       DefaultSections(),
	}
}

// ParseContent decodes and validates a content blob.
func ParseContent(raw json.RawMessage) (Content, error) {
	if len(raw) == 0 {
		return Content{}, errors.New("content is empty")
	}
	var c Content
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	if err := dec.Decode(&c); err != nil {
		return Content{}, fmt.Errorf("decode content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Content{}, err
	}
	return c, nil
}

// Validate checks section ids and date formats. It does not require any field
// to be filled in; a blank resume is a valid resume.
func (c Content) Validate() error {
	for _, id := range c.Sections {
		if !KnownSection(id) {
			return fmt.Errorf("unknown section %q", id)
		}
	}
	for i, exp := range c.WorkExperience {
		if err := validTimespan(exp.StartDate, exp.EndDate, exp.Current); err != nil {
			return fmt.Errorf("workExperience[%d]: %w", i, err)
		}
	}
	for i, edu := range c.Education {
		if err := validTimespan(edu.StartDate, edu.EndDate, edu.Current); err != nil {
			return fmt.Errorf("education[%d]: %w", i, err)
		}
	}
	for i, cert := range c.Certifications {
		if err := validMonth(cert.Date); err != nil {
			return fmt.Errorf("certifications[%d]: %w", i, err)
		}
	}
	return nil
}

// Marshal encodes the content with normalized sections.
func (c Content) Marshal() (json.RawMessage, error) {
	c.Sections = NormalizeSections(c.Sections)
	if c.Template == "" {
		c.Template = DefaultTemplate
	}
	return json.Marshal(c)
}

// ActiveSections returns the normalized section ordering for rendering.
func (c Content) ActiveSections() []string {
	if len(c.Sections) == 0 {
		return DefaultSections()
	}
	return NormalizeSections(c.Sections)
}

// FullName joins the name parts, falling back to empty.
func (p PersonalInfo) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

func validTimespan(start, end string, current bool) error {
	if err := validMonth(start); err != nil {
		return err
	}
	if current && end != "" {
		return errors.New("endDate must be empty while current is set")
	}
	return validMonth(end)
}

func validMonth(v string) error {
	if v == "" {
		return nil
	}
	if !monthRe.MatchString(v) {
		return fmt.Errorf("date %q is not YYYY-MM", v)
	}
	return nil
}
