package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"resume-builder/internal/documents"
)

// fakeStore records save calls and hands out sequential ids. Save can be made
// to fail or block through the fail/gate fields.
type fakeStore struct {
	mu    sync.Mutex
	saves []SaveRequest
	creds []Credential
	next  int
	fail  error
	gate  chan struct{} // when set, Save blocks until the channel is closed
}

func (f *fakeStore) Save(ctx context.Context, cred Credential, req SaveRequest) (documents.Document, error) {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return documents.Document{}, f.fail
	}
	f.saves = append(f.saves, req)
	f.creds = append(f.creds, cred)

	id := req.DocumentID
	if id == "" {
		f.next++
		id = fmt.Sprintf("doc-%d", f.next)
	}
	now := time.Now().UTC()
	return documents.Document{
		ID:        id,
		OwnerID:   req.OwnerID,
		Title:     req.Title,
		Type:      req.Type,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (f *fakeStore) Get(ctx context.Context, cred Credential, ownerID, documentID string) (documents.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if documentID != "doc-known" {
		return documents.Document{}, documents.ErrNotFound
	}
	return documents.Document{
		ID:      "doc-known",
		OwnerID: ownerID,
		Title:   "Stored",
		Type:    documents.TypeResume,
		Content: json.RawMessage(`{"v":1}`),
	}, nil
}

func (f *fakeStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeStore) lastSave() SaveRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[len(f.saves)-1]
}

func newTestSession(store *fakeStore, debounce time.Duration) *Session {
	return New(Options{
		Store:    store,
		Cred:     Credential{GuestID: "g1"},
		OwnerID:  "guest:g1",
		Debounce: debounce,
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not reached within deadline")
}

func TestNewSessionEditsNeverAutosave(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(store, 10*time.Millisecond)
	defer s.Close()

	s.Edit("Draft", json.RawMessage(`{"v":1}`))
	s.Edit("Draft", json.RawMessage(`{"v":2}`))

	time.Sleep(50 * time.Millisecond)
	if n := store.saveCount(); n != 0 {
		t.Fatalf("expected no store calls while unbound, got %d", n)
	}
	if s.Bound() {
		t.Fatal("session should not be bound without an explicit save")
	}
	if !s.Dirty() {
		t.Fatal("local edits should leave the session dirty")
	}
}

func TestExplicitSaveBindsOnce(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(store, time.Hour)
	defer s.Close()

	s.Edit("Draft", json.RawMessage(`{"v":1}`))

	doc, err := s.Save(context.Background())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if doc.ID == "" || s.DocumentID() != doc.ID {
		t.Fatalf("expected session bound to %q, got %q", doc.ID, s.DocumentID())
	}
	if s.Dirty() {
		t.Fatal("save should clear the dirty flag")
	}

	// A second explicit save updates in place with the same id.
	s.Edit("Draft 2", json.RawMessage(`{"v":2}`))
	doc2, err := s.Save(context.Background())
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if doc2.ID != doc.ID {
		t.Fatalf("expected id reuse, got %q then %q", doc.ID, doc2.ID)
	}
	if got := store.lastSave(); got.DocumentID != doc.ID {
		t.Fatalf("expected update request with id %q, got %q", doc.ID, got.DocumentID)
	}
}

func TestAutosaveFiresOncePerQuietPeriodWithLatestState(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(store, 20*time.Millisecond)
	defer s.Close()

	s.Edit("Draft", json.RawMessage(`{"v":1}`))
	if _, err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A burst of edits within the quiet interval collapses into one autosave
	// carrying the last state.
	s.Edit("Draft", json.RawMessage(`{"v":2}`))
	time.Sleep(5 * time.Millisecond)
	s.Edit("Draft", json.RawMessage(`{"v":3}`))
	time.Sleep(5 * time.Millisecond)
	s.Edit("Draft", json.RawMessage(`{"v":4}`))

	waitFor(t, func() bool { return store.saveCount() == 2 })
	time.Sleep(60 * time.Millisecond)
	if n := store.saveCount(); n != 2 {
		t.Fatalf("expected exactly one autosave after the burst, got %d extra calls", n-1)
	}
	if got := store.lastSave(); string(got.Content) != `{"v":4}` {
		t.Fatalf("autosave should carry latest content, got %s", got.Content)
	}
	waitFor(t, func() bool { return !s.Dirty() })
}

func TestAutosaveFailureIsSuppressedAndRetriedOnNextEdit(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(store, 15*time.Millisecond)
	defer s.Close()

	s.Edit("Draft", json.RawMessage(`{"v":1}`))
	if _, err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	store.mu.Lock()
	store.fail = errors.New("store unavailable")
	store.mu.Unlock()

	s.Edit("Draft", json.RawMessage(`{"v":2}`))
	time.Sleep(60 * time.Millisecond)
	if !s.Dirty() {
		t.Fatal("failed autosave must leave the session dirty")
	}

	store.mu.Lock()
	store.fail = nil
	store.mu.Unlock()

	// The next edit's debounce cycle retries and succeeds.
	s.Edit("Draft", json.RawMessage(`{"v":3}`))
	waitFor(t, func() bool { return !s.Dirty() })
	if got := store.lastSave(); string(got.Content) != `{"v":3}` {
		t.Fatalf("retry should carry latest content, got %s", got.Content)
	}
}

func TestSavesAreSerialized(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(store, 10*time.Millisecond)
	defer s.Close()

	s.Edit("Draft", json.RawMessage(`{"v":1}`))
	if _, err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	gate := make(chan struct{})
	store.mu.Lock()
	store.gate = gate
	store.mu.Unlock()

	// Arm an autosave that will block on the gate.
	s.Edit("Draft", json.RawMessage(`{"v":2}`))
	waitFor(t, s.Saving)

	// An explicit save issued while the autosave is in flight must wait for it.
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Edit("Draft", json.RawMessage(`{"v":3}`))
		if _, err := s.Save(context.Background()); err != nil {
			t.Errorf("Save: %v", err)
		}
	}()

	select {
	case <-done:
		t.Fatal("explicit save completed while autosave was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	store.mu.Lock()
	store.gate = nil
	store.mu.Unlock()
	close(gate)
	<-done

	if got := store.lastSave(); string(got.Content) != `{"v":3}` {
		t.Fatalf("final save should carry latest content, got %s", got.Content)
	}
}

func TestCloseWaitsForInflightSave(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(store, 10*time.Millisecond)

	s.Edit("Draft", json.RawMessage(`{"v":1}`))
	if _, err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	gate := make(chan struct{})
	store.mu.Lock()
	store.gate = gate
	store.mu.Unlock()

	s.Edit("Draft", json.RawMessage(`{"v":2}`))
	waitFor(t, s.Saving)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		s.Close()
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a save was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	store.mu.Lock()
	store.gate = nil
	store.mu.Unlock()
	close(gate)
	<-closed

	if _, err := s.Save(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed after Close, got %v", err)
	}
}

func TestOpenBindsToStoredDocument(t *testing.T) {
	store := &fakeStore{}
	opts := Options{
		Store:   store,
		Cred:    Credential{GuestID: "g1"},
		OwnerID: "guest:g1",
	}

	s, err := Open(context.Background(), opts, "doc-known")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if !s.Bound() || s.DocumentID() != "doc-known" {
		t.Fatalf("expected session bound to doc-known, got %q", s.DocumentID())
	}
	if s.Dirty() {
		t.Fatal("freshly opened session should be clean")
	}

	if _, err := Open(context.Background(), opts, "missing"); !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestEffectiveTitleFallback(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(store, time.Hour)
	defer s.Close()

	s.Edit("", json.RawMessage(`{"personalInfo":{"firstName":"Ada"}}`))
	if _, err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := store.lastSave().Title; got != "Ada Resume" {
		t.Fatalf("expected first-name fallback title, got %q", got)
	}

	s2 := newTestSession(store, time.Hour)
	defer s2.Close()
	s2.Edit("", json.RawMessage(`{}`))
	if _, err := s2.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := store.lastSave().Title; got != "My Resume" {
		t.Fatalf("expected default title, got %q", got)
	}
}
