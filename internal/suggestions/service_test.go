package suggestions

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resume-builder/internal/resumes"
)

var errProvider = errors.New("provider exploded")

// fakeClient records the last prompt and returns a canned response.
type fakeClient struct {
	lastPrompt string
	response   string
	err        error
}

func (f *fakeClient) Generate(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestJobDescriptionPromptCarriesInputs(t *testing.T) {
	client := &fakeClient{response: "Led a team of engineers."}
	svc := NewService(client)

	text, err := svc.JobDescription(context.Background(), "Staff Engineer", "Acme", "fintech")
	if err != nil {
		t.Fatalf("JobDescription: %v", err)
	}
	if text != "Led a team of engineers." {
		t.Fatalf("unexpected response: %q", text)
	}
	for _, want := range []string{"Staff Engineer", "Acme", "fintech"} {
		if !strings.Contains(client.lastPrompt, want) {
			t.Fatalf("prompt missing %q: %s", want, client.lastPrompt)
		}
	}
}

func TestJobDescriptionRequiresPositionAndCompany(t *testing.T) {
	svc := NewService(&fakeClient{})

	if _, err := svc.JobDescription(context.Background(), "", "Acme", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.JobDescription(context.Background(), "Engineer", "  ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSummaryRequiresName(t *testing.T) {
	svc := NewService(&fakeClient{response: "A summary."})

	if _, err := svc.Summary(context.Background(), resumes.PersonalInfo{}, nil, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Summary(context.Background(), resumes.PersonalInfo{FirstName: "Ada"}, nil, []string{"Go"}); err != nil {
		t.Fatalf("Summary: %v", err)
	}
}

func TestSkillsParsesCommaSeparatedResponse(t *testing.T) {
	client := &fakeClient{response: "Go, PostgreSQL ,  Kubernetes,,Terraform "}
	svc := NewService(client)

	skills, err := svc.Skills(context.Background(), "devops", []string{"Go"})
	if err != nil {
		t.Fatalf("Skills: %v", err)
	}
	want := []string{"Go", "PostgreSQL", "Kubernetes", "Terraform"}
	if len(skills) != len(want) {
		t.Fatalf("skills = %v, want %v", skills, want)
	}
	for i := range want {
		if skills[i] != want[i] {
			t.Fatalf("skills[%d] = %q, want %q", i, skills[i], want[i])
		}
	}
}

func TestCoverLetterPromptCarriesJobContext(t *testing.T) {
	client := &fakeClient{response: "Dear hiring manager,"}
	svc := NewService(client)

	content := resumes.Content{PersonalInfo: resumes.PersonalInfo{FirstName: "Ada", LastName: "Lovelace"}}
	_, err := svc.CoverLetter(context.Background(), content, "Platform Engineer", "Acme", "Build the platform.")
	if err != nil {
		t.Fatalf("CoverLetter: %v", err)
	}
	for _, want := range []string{"Ada Lovelace", "Platform Engineer", "Acme"} {
		if !strings.Contains(client.lastPrompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestPlaceholderClientSignalsNotConfigured(t *testing.T) {
	svc := NewService(PlaceholderClient{})

	_, err := svc.ATS(context.Background(), resumes.Content{}, "")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestParseSkillsEmptyResponse(t *testing.T) {
	if got := ParseSkills("  , ,"); len(got) != 0 {
		t.Fatalf("expected no skills, got %v", got)
	}
}
