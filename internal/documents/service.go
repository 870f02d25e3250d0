package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxContentBytes = 1 << 20 // 1MB

// Service contains business logic for documents.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// SaveInput captures a create-or-update request. DocumentID empty means
// create; present means update the record with that id, owned by OwnerID.
type SaveInput struct {
	OwnerID    string
	DocumentID string
	Title      string
	Type       string
	Content    json.RawMessage
}

// Save creates a new document or updates an existing one in place. An update
// against an id that does not exist for OwnerID fails with ErrNotFound rather
// than silently creating a second record. Either way the full effect commits
// atomically; a subsequent Get returns the written content verbatim.
func (s *Service) Save(ctx context.Context, in SaveInput) (Document, error) {
	if err := validateSave(in); err != nil {
		return Document{}, err
	}

	now := s.now()
	if in.DocumentID != "" {
		return s.Repo.Update(ctx, Document{
			ID:        in.DocumentID,
			OwnerID:   in.OwnerID,
			Title:     in.Title,
			Content:   in.Content,
			UpdatedAt: now,
		})
	}

	doc := Document{
		ID:        uuid.NewString(),
		OwnerID:   in.OwnerID,
		Title:     in.Title,
		Type:      in.Type,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Get returns a document scoped by owner. Absence and ownership mismatch are
// both ErrNotFound.
func (s *Service) Get(ctx context.Context, ownerID, documentID string) (Document, error) {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(documentID) == "" {
		return Document{}, fmt.Errorf("%w: owner id and document id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, ownerID, documentID)
}

// List returns all documents for an owner, most recently updated first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Document, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner id required", ErrInvalidInput)
	}
	return s.Repo.ListByOwner(ctx, ownerID)
}

// Delete removes a document scoped by owner. Deleting an absent or
// already-deleted id succeeds with no effect.
func (s *Service) Delete(ctx context.Context, ownerID, documentID string) error {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(documentID) == "" {
		return fmt.Errorf("%w: owner id and document id required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, ownerID, documentID)
}

// Duplicate creates a new document copying the source's type and content, with
// the copy suffix appended to the title, owned by ownerID. The source record
// is untouched. ErrNotFound if the source is absent or not owned by ownerID.
func (s *Service) Duplicate(ctx context.Context, ownerID, documentID string) (Document, error) {
	src, err := s.Get(ctx, ownerID, documentID)
	if err != nil {
		return Document{}, err
	}

	now := s.now()
	dup := Document{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     src.Title + CopySuffix,
		Type:      src.Type,
		Content:   src.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, dup); err != nil {
		return Document{}, err
	}
	return dup, nil
}

func validateSave(in SaveInput) error {
	if strings.TrimSpace(in.OwnerID) == "" {
		return fmt.Errorf("%w: owner id required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title required", ErrInvalidInput)
	}
	if !ValidType(in.Type) {
		return fmt.Errorf("%w: unknown document type %q", ErrInvalidInput, in.Type)
	}
	if len(in.Content) == 0 || !json.Valid(in.Content) {
		return fmt.Errorf("%w: content must be valid JSON", ErrInvalidInput)
	}
	if len(in.Content) > maxContentBytes {
		return fmt.Errorf("%w: content too large", ErrInvalidInput)
	}
	return nil
}
