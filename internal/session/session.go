// Package session bridges an in-memory editable document to the document
// store. A session is either New (no id yet, edits stay local) or Bound (id
// held, edits trigger a debounced autosave). The transition New -> Bound
// happens exactly once, on the first successful explicit save; autosave never
// creates a record the user did not explicitly ask to persist.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"resume-builder/internal/documents"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/telemetry"
)

const (
	// DefaultDebounce is the quiet interval after the last edit before an
	// autosave fires.
	DefaultDebounce = 2 * time.Second

	defaultSaveTimeout = 30 * time.Second
)

// ErrClosed is returned when saving through a closed session.
var ErrClosed = errors.New("session closed")

// Options configures a session.
type Options struct {
	Store   Store
	Cred    Credential
	OwnerID string
	Type    string // defaults to documents.TypeResume

	// Debounce is the autosave quiet interval. Zero means DefaultDebounce.
	Debounce time.Duration
	// SaveTimeout bounds autosave store calls, which run without a caller
	// context. Zero means a 30s default.
	SaveTimeout time.Duration
}

// Session tracks one editing context for one document. All methods are safe
// for concurrent use; store-mutating calls are serialized, so a save never
// races another save from the same session.
type Session struct {
	store       Store
	cred        Credential
	ownerID     string
	docType     string
	debounce    time.Duration
	saveTimeout time.Duration

	mu        sync.Mutex
	cond      *sync.Cond
	docID     string
	title     string
	content   json.RawMessage
	dirty     bool
	seq       uint64 // bumped per edit; a save clears dirty only if no edit landed meanwhile
	timer     *time.Timer
	inflight  bool
	lastSaved time.Time
	closed    bool
}

// New starts a session for a document that has never been saved. No store
// calls are made until the first explicit Save.
func New(opts Options) *Session {
	s := &Session{
		store:       opts.Store,
		cred:        opts.Cred,
		ownerID:     opts.OwnerID,
		docType:     opts.Type,
		debounce:    opts.Debounce,
		saveTimeout: opts.SaveTimeout,
	}
	if s.docType == "" {
		s.docType = documents.TypeResume
	}
	if s.debounce <= 0 {
		s.debounce = DefaultDebounce
	}
	if s.saveTimeout <= 0 {
		s.saveTimeout = defaultSaveTimeout
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Resume starts a session bound to an already-persisted document, seeded with
// its stored state. Used after loading or duplicating.
func Resume(opts Options, doc documents.Document) *Session {
	if opts.Type == "" {
		opts.Type = doc.Type
	}
	s := New(opts)
	s.docID = doc.ID
	s.title = doc.Title
	s.content = cloneRaw(doc.Content)
	s.lastSaved = doc.UpdatedAt
	return s
}

// Open loads a document from the store and returns a session bound to it.
func Open(ctx context.Context, opts Options, documentID string) (*Session, error) {
	doc, err := opts.Store.Get(ctx, opts.Cred, opts.OwnerID, documentID)
	if err != nil {
		return nil, err
	}
	return Resume(opts, doc), nil
}

// Edit records the latest local state. While New it stays local; while Bound
// it restarts the autosave timer, so at most one autosave fires per quiet
// period and only the latest state at fire time is sent.
func (s *Session) Edit(title string, content json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if strings.TrimSpace(title) != "" {
		s.title = title
	}
	s.content = cloneRaw(content)
	s.seq++
	s.dirty = true
	if s.docID == "" {
		return
	}
	s.armTimerLocked()
}

// Save persists the current state explicitly. While New it creates the record
// and binds the session to the returned id; while Bound it updates in place,
// always reusing the held id. A failure is returned to the caller and leaves
// session state unchanged.
func (s *Session) Save(ctx context.Context) (documents.Document, error) {
	s.mu.Lock()
	for s.inflight && !s.closed {
		s.cond.Wait()
	}
	if s.closed {
		s.mu.Unlock()
		return documents.Document{}, ErrClosed
	}
	s.stopTimerLocked()
	req := s.requestLocked()
	seq := s.seq
	s.inflight = true
	s.mu.Unlock()

	doc, err := s.store.Save(ctx, s.cred, req)

	s.mu.Lock()
	s.inflight = false
	if err == nil {
		if s.docID == "" {
			s.docID = doc.ID
		}
		s.lastSaved = doc.UpdatedAt
		if s.seq == seq {
			s.dirty = false
		}
	}
	s.cond.Broadcast()
	s.mu.Unlock()

	if err != nil {
		return documents.Document{}, err
	}
	return doc, nil
}

// DocumentID returns the bound document id, or empty while New.
func (s *Session) DocumentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docID
}

// Bound reports whether the session holds a document id.
func (s *Session) Bound() bool {
	return s.DocumentID() != ""
}

// Dirty reports whether local edits exist that have not been persisted.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Saving reports whether a store call is in flight, for busy indicators.
func (s *Session) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight
}

// LastSaved returns the time of the last successful save, zero if none.
func (s *Session) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

// Close cancels any pending autosave and waits for an in-flight call to
// settle. The session cannot be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.stopTimerLocked()
	s.cond.Broadcast()
	for s.inflight {
		s.cond.Wait()
	}
	s.mu.Unlock()
}

func (s *Session) armTimerLocked() {
	s.stopTimerLocked()
	s.timer = time.AfterFunc(s.debounce, s.autosave)
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// autosave runs when the debounce timer fires. It waits for any in-flight
// call to settle, re-reads the latest state, and skips entirely if a save in
// the meantime left nothing dirty. A failure is logged and suppressed; the
// dirty flag stays set so the next edit's debounce cycle retries.
func (s *Session) autosave() {
	s.mu.Lock()
	for s.inflight && !s.closed {
		s.cond.Wait()
	}
	if s.closed || !s.dirty || s.docID == "" {
		s.mu.Unlock()
		return
	}
	req := s.requestLocked()
	seq := s.seq
	s.inflight = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	doc, err := s.store.Save(ctx, s.cred, req)
	cancel()

	s.mu.Lock()
	if err != nil {
		telemetry.Warn("session.autosave_failed", map[string]any{
			"owner_id":    s.ownerID,
			"document_id": s.docID,
			"error":       err.Error(),
		})
	} else {
		s.lastSaved = doc.UpdatedAt
		if s.seq == seq {
			s.dirty = false
		}
	}
	s.inflight = false
	s.cond.Broadcast()
	s.mu.Unlock()
}

func (s *Session) requestLocked() SaveRequest {
	return SaveRequest{
		OwnerID:    s.ownerID,
		DocumentID: s.docID,
		Title:      s.effectiveTitleLocked(),
		Type:       s.docType,
		Content:    cloneRaw(s.content),
	}
}

// effectiveTitleLocked falls back to a name derived from the content when no
// title has been set, mirroring how the editor labels unsaved resumes.
func (s *Session) effectiveTitleLocked() string {
	if strings.TrimSpace(s.title) != "" {
		return s.title
	}
	if s.docType == documents.TypeResume {
		var c resumes.Content
		if err := json.Unmarshal(s.content, &c); err == nil {
			if first := strings.TrimSpace(c.PersonalInfo.FirstName); first != "" {
				return first + " Resume"
			}
		}
		return "My Resume"
	}
	return "Untitled"
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}
