package documents

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) (*Service, *MemoryRepo, *time.Time) {
	t.Helper()
	repo := NewMemoryRepo()
	svc := NewService(repo)
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	return svc, repo, &clock
}

func TestSaveCreatesDocument(t *testing.T) {
	svc, _, _ := newTestService(t)

	doc, err := svc.Save(context.Background(), SaveInput{
		OwnerID: "guest:g1",
		Title:   "My Resume",
		Type:    TypeResume,
		Content: json.RawMessage(`{"template":"modern"}`),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if doc.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !doc.CreatedAt.Equal(doc.UpdatedAt) {
		t.Fatalf("expected createdAt == updatedAt on create")
	}

	got, err := svc.Get(context.Background(), "guest:g1", doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got.Content) != `{"template":"modern"}` {
		t.Fatalf("content round-trip mismatch: %s", got.Content)
	}
}

func TestSaveUpdatesInPlace(t *testing.T) {
	svc, _, clock := newTestService(t)

	doc, err := svc.Save(context.Background(), SaveInput{
		OwnerID: "guest:g1",
		Title:   "My Resume",
		Type:    TypeResume,
		Content: json.RawMessage(`{"v":1}`),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	*clock = clock.Add(time.Minute)
	updated, err := svc.Save(context.Background(), SaveInput{
		OwnerID:    "guest:g1",
		DocumentID: doc.ID,
		Title:      "Renamed",
		Type:       TypeResume,
		Content:    json.RawMessage(`{"v":2}`),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != doc.ID {
		t.Fatalf("update changed id: %s != %s", updated.ID, doc.ID)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Fatalf("expected updatedAt to advance past createdAt")
	}

	docs, err := svc.List(context.Background(), "guest:g1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("update must not create a second record, got %d", len(docs))
	}
	if docs[0].Title != "Renamed" {
		t.Fatalf("expected renamed title, got %q", docs[0].Title)
	}
}

func TestSaveUpdateUnknownIDFails(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Save(context.Background(), SaveInput{
		OwnerID:    "guest:g1",
		DocumentID: "missing",
		Title:      "T",
		Type:       TypeResume,
		Content:    json.RawMessage(`{}`),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	cases := []struct {
		name string
		in   SaveInput
	}{
		{"missing owner", SaveInput{Title: "T", Type: TypeResume, Content: json.RawMessage(`{}`)}},
		{"missing title", SaveInput{OwnerID: "o", Type: TypeResume, Content: json.RawMessage(`{}`)}},
		{"bad type", SaveInput{OwnerID: "o", Title: "T", Type: "poster", Content: json.RawMessage(`{}`)}},
		{"bad json", SaveInput{OwnerID: "o", Title: "T", Type: TypeResume, Content: json.RawMessage(`{`)}},
		{"empty content", SaveInput{OwnerID: "o", Title: "T", Type: TypeResume}},
	}
	for _, tc := range cases {
		if _, err := svc.Save(context.Background(), tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestGetIsOwnerScoped(t *testing.T) {
	svc, _, _ := newTestService(t)

	doc, err := svc.Save(context.Background(), SaveInput{
		OwnerID: "guest:g1",
		Title:   "Mine",
		Type:    TypeResume,
		Content: json.RawMessage(`{}`),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(context.Background(), "guest:g2", doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-owner get: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "guest:g1", "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("absent get: expected ErrNotFound, got %v", err)
	}
}

func TestListOrdersByUpdatedAtDesc(t *testing.T) {
	svc, _, clock := newTestService(t)

	first, _ := svc.Save(context.Background(), SaveInput{
		OwnerID: "o", Title: "First", Type: TypeResume, Content: json.RawMessage(`{}`),
	})
	*clock = clock.Add(time.Minute)
	second, _ := svc.Save(context.Background(), SaveInput{
		OwnerID: "o", Title: "Second", Type: TypeResume, Content: json.RawMessage(`{}`),
	})

	docs, err := svc.List(context.Background(), "o")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if docs[0].ID != second.ID || docs[1].ID != first.ID {
		t.Fatalf("expected most recently updated first")
	}

	// Touching the older one moves it to the front.
	*clock = clock.Add(time.Minute)
	if _, err := svc.Save(context.Background(), SaveInput{
		OwnerID: "o", DocumentID: first.ID, Title: "First", Type: TypeResume, Content: json.RawMessage(`{}`),
	}); err != nil {
		t.Fatalf("touch: %v", err)
	}
	docs, _ = svc.List(context.Background(), "o")
	if docs[0].ID != first.ID {
		t.Fatalf("expected touched doc first")
	}
}

func TestDeleteIsIdempotentAndScoped(t *testing.T) {
	svc, _, _ := newTestService(t)

	doc, _ := svc.Save(context.Background(), SaveInput{
		OwnerID: "o1", Title: "T", Type: TypeResume, Content: json.RawMessage(`{}`),
	})

	// Deleting under another owner succeeds but leaves the record alone.
	if err := svc.Delete(context.Background(), "o2", doc.ID); err != nil {
		t.Fatalf("cross-owner delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), "o1", doc.ID); err != nil {
		t.Fatalf("document should survive cross-owner delete: %v", err)
	}

	if err := svc.Delete(context.Background(), "o1", doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "o1", doc.ID); err != nil {
		t.Fatalf("repeat delete should succeed: %v", err)
	}
	if _, err := svc.Get(context.Background(), "o1", doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDuplicateCopiesAndSuffixes(t *testing.T) {
	svc, _, clock := newTestService(t)

	src, _ := svc.Save(context.Background(), SaveInput{
		OwnerID: "o", Title: "My Resume", Type: TypeResume, Content: json.RawMessage(`{"v":1}`),
	})

	*clock = clock.Add(time.Minute)
	dup, err := svc.Duplicate(context.Background(), "o", src.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if dup.ID == src.ID {
		t.Fatalf("duplicate must get a new id")
	}
	if dup.Title != "My Resume (Copy)" {
		t.Fatalf("expected copy suffix, got %q", dup.Title)
	}
	if string(dup.Content) != `{"v":1}` {
		t.Fatalf("content not copied: %s", dup.Content)
	}
	if !dup.CreatedAt.Equal(dup.UpdatedAt) {
		t.Fatalf("duplicate is a fresh record; createdAt must equal updatedAt")
	}

	orig, err := svc.Get(context.Background(), "o", src.ID)
	if err != nil {
		t.Fatalf("get source: %v", err)
	}
	if orig.Title != "My Resume" || !orig.UpdatedAt.Equal(src.UpdatedAt) {
		t.Fatalf("source record must be untouched")
	}
}

func TestDuplicateIsOwnerScoped(t *testing.T) {
	svc, _, _ := newTestService(t)

	src, _ := svc.Save(context.Background(), SaveInput{
		OwnerID: "o1", Title: "T", Type: TypeResume, Content: json.RawMessage(`{}`),
	})
	if _, err := svc.Duplicate(context.Background(), "o2", src.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-owner duplicate, got %v", err)
	}
}

func TestUpdatedAtNeverMovesBackwards(t *testing.T) {
	svc, _, clock := newTestService(t)

	doc, _ := svc.Save(context.Background(), SaveInput{
		OwnerID: "o", Title: "T", Type: TypeResume, Content: json.RawMessage(`{"v":1}`),
	})

	// A lagging clock must not pull updatedAt below its current value.
	*clock = clock.Add(-time.Hour)
	updated, err := svc.Save(context.Background(), SaveInput{
		OwnerID: "o", DocumentID: doc.ID, Title: "T", Type: TypeResume, Content: json.RawMessage(`{"v":2}`),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.UpdatedAt.Before(doc.UpdatedAt) {
		t.Fatalf("updatedAt moved backwards: %s < %s", updated.UpdatedAt, doc.UpdatedAt)
	}
}
