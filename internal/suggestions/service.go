package suggestions

import (
	"context"
	"errors"
	"strings"

	"resume-builder/internal/resumes"
)

var ErrInvalidInput = errors.New("suggestions: invalid input")

// Service turns structured resume data into prompts and cleans up model output.
type Service struct {
	client Client
}

func NewService(client Client) *Service {
	return &Service{client: client}
}

func (s *Service) JobDescription(ctx context.Context, position, company, industry string) (string, error) {
	if strings.TrimSpace(position) == "" || strings.TrimSpace(company) == "" {
		return "", ErrInvalidInput
	}
	return s.client.Generate(ctx, JobDescriptionPrompt(position, company, industry))
}

func (s *Service) ProjectDescription(ctx context.Context, name string, technologies []string, projectType string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidInput
	}
	return s.client.Generate(ctx, ProjectDescriptionPrompt(name, technologies, projectType))
}

func (s *Service) Summary(ctx context.Context, info resumes.PersonalInfo, experience []resumes.Experience, skills []string) (string, error) {
	if info.FullName() == "" {
		return "", ErrInvalidInput
	}
	return s.client.Generate(ctx, SummaryPrompt(info, experience, skills))
}

func (s *Service) Skills(ctx context.Context, industry string, current []string) ([]string, error) {
	raw, err := s.client.Generate(ctx, SkillsPrompt(industry, current))
	if err != nil {
		return nil, err
	}
	return ParseSkills(raw), nil
}

func (s *Service) CoverLetter(ctx context.Context, content resumes.Content, jobTitle, companyName, jobDescription string) (string, error) {
	if content.PersonalInfo.FullName() == "" {
		return "", ErrInvalidInput
	}
	return s.client.Generate(ctx, CoverLetterPrompt(content, jobTitle, companyName, jobDescription))
}

func (s *Service) ATS(ctx context.Context, content resumes.Content, jobDescription string) (string, error) {
	return s.client.Generate(ctx, ATSPrompt(content, jobDescription))
}
