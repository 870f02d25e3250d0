package exports

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"resume-builder/internal/documents"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/util"
)

const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"

	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Artifact is a rendered export ready to stream to the client.
type Artifact struct {
	Data        []byte
	FileName    string
	ContentType string
}

// Service renders exports and manages share link snapshots. The object store
// cache is optional; with a nil cache every export renders from scratch.
type Service struct {
	Shares ShareRepo
	Docs   *documents.Service
	Cache  object.ObjectStore

	shareBaseURL string
	now          func() time.Time
}

func NewService(shares ShareRepo, docs *documents.Service, cache object.ObjectStore, shareBaseURL string) *Service {
	return &Service{
		Shares:       shares,
		Docs:         docs,
		Cache:        cache,
		shareBaseURL: strings.TrimRight(shareBaseURL, "/"),
		now:          time.Now,
	}
}

// CreateShare snapshots the document under an opaque token. The snapshot is
// scoped to the requesting owner; sharing someone else's document id fails
// with the document store's not-found.
func (s *Service) CreateShare(ctx context.Context, ownerID, documentID string) (ShareLink, string, error) {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(documentID) == "" {
		return ShareLink{}, "", fmt.Errorf("%w: ownerId and documentId are required", ErrInvalidInput)
	}

	doc, err := s.Docs.Get(ctx, ownerID, documentID)
	if err != nil {
		return ShareLink{}, "", err
	}

	link := ShareLink{
		Token:      newToken(),
		OwnerID:    doc.OwnerID,
		DocumentID: doc.ID,
		Title:      doc.Title,
		DocType:    doc.Type,
		Content:    append([]byte(nil), doc.Content...),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.Shares.Create(ctx, link); err != nil {
		return ShareLink{}, "", err
	}
	return link, s.shareBaseURL + "/shared/" + link.Token, nil
}

// GetShared resolves a token to its snapshot.
func (s *Service) GetShared(ctx context.Context, token string) (ShareLink, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ShareLink{}, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	return s.Shares.GetByToken(ctx, token)
}

// Export renders the document in the requested format, reusing a cached
// artifact when the document has not changed since it was rendered.
func (s *Service) Export(ctx context.Context, ownerID, documentID, format string) (Artifact, error) {
	if format != FormatPDF && format != FormatDOCX {
		return Artifact{}, fmt.Errorf("%w: unsupported format %q", ErrInvalidInput, format)
	}

	doc, err := s.Docs.Get(ctx, ownerID, documentID)
	if err != nil {
		return Artifact{}, err
	}

	content, err := resumes.ParseContent(doc.Content)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	contentType := mimePDF
	if format == FormatDOCX {
		contentType = mimeDOCX
	}
	fileName := exportFileName(doc.Title, format)
	cacheKey := s.cacheKey(doc, format)

	if data, ok := s.cachedArtifact(ctx, cacheKey); ok {
		return Artifact{Data: data, FileName: fileName, ContentType: contentType}, nil
	}

	var data []byte
	if format == FormatPDF {
		data, err = RenderPDF(doc.Title, content)
	} else {
		data, err = RenderDOCX(doc.Title, content)
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("render %s: %w", format, err)
	}

	s.storeArtifact(ctx, cacheKey, contentType, data)
	return Artifact{Data: data, FileName: fileName, ContentType: contentType}, nil
}

// cacheKey changes whenever the document changes, so stale artifacts are
// simply never read again.
func (s *Service) cacheKey(doc documents.Document, format string) string {
	return fmt.Sprintf("exports/%s/%s-%d.%s", util.HashUserKey(doc.OwnerID), doc.ID, doc.UpdatedAt.UnixMilli(), format)
}

func (s *Service) cachedArtifact(ctx context.Context, key string) ([]byte, bool) {
	if s.Cache == nil {
		return nil, false
	}
	rc, err := s.Cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (s *Service) storeArtifact(ctx context.Context, key, contentType string, data []byte) {
	if s.Cache == nil {
		return
	}
	if _, err := s.Cache.Put(ctx, key, contentType, bytes.NewReader(data)); err != nil {
		telemetry.Warn("exports.cache_write_failed", map[string]any{
			"storageKey": key,
			"error":      err.Error(),
		})
	}
}

func exportFileName(title, format string) string {
	name, err := util.SanitizeFileName(title)
	if err != nil || name == "" {
		name = "resume"
	}
	return name + "." + format
}

func newToken() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
