package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resume-builder/internal/documents"
)

// RemoteStore talks to the documents REST surface. Credentials are passed per
// request; the underlying http.Client carries no auth state.
type RemoteStore struct {
	BaseURL    string // e.g. http://localhost:8080/api/v1
	HTTPClient *http.Client
}

// NewRemoteStore constructs a RemoteStore with a default client.
func NewRemoteStore(baseURL string) *RemoteStore {
	return &RemoteStore{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type documentPayload struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"ownerId"`
	Title     string          `json:"title"`
	Type      string          `json:"type"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type envelope struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Document  *documentPayload  `json:"document"`
	Documents []documentPayload `json:"documents"`
}

type saveBody struct {
	OwnerID    string          `json:"ownerId"`
	DocumentID string          `json:"documentId,omitempty"`
	Title      string          `json:"title"`
	Type       string          `json:"type"`
	Content    json.RawMessage `json:"content"`
}

// Save issues a create-or-update call.
func (r *RemoteStore) Save(ctx context.Context, cred Credential, req SaveRequest) (documents.Document, error) {
	body := saveBody{
		OwnerID:    req.OwnerID,
		DocumentID: req.DocumentID,
		Title:      req.Title,
		Type:       req.Type,
		Content:    req.Content,
	}
	env, err := r.do(ctx, cred, http.MethodPost, "/documents", body)
	if err != nil {
		return documents.Document{}, err
	}
	return docFromPayload(env.Document)
}

// Get fetches a single document scoped by owner.
func (r *RemoteStore) Get(ctx context.Context, cred Credential, ownerID, documentID string) (documents.Document, error) {
	path := fmt.Sprintf("/documents/owner/%s/%s", url.PathEscape(ownerID), url.PathEscape(documentID))
	env, err := r.do(ctx, cred, http.MethodGet, path, nil)
	if err != nil {
		return documents.Document{}, err
	}
	return docFromPayload(env.Document)
}

// List fetches all documents for an owner, most recently updated first.
func (r *RemoteStore) List(ctx context.Context, cred Credential, ownerID string) ([]documents.Document, error) {
	path := "/documents/owner/" + url.PathEscape(ownerID)
	env, err := r.do(ctx, cred, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	out := make([]documents.Document, 0, len(env.Documents))
	for i := range env.Documents {
		doc, err := docFromPayload(&env.Documents[i])
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// Delete removes a document. Deleting an absent id succeeds.
func (r *RemoteStore) Delete(ctx context.Context, cred Credential, ownerID, documentID string) error {
	path := fmt.Sprintf("/documents/%s/%s", url.PathEscape(documentID), url.PathEscape(ownerID))
	_, err := r.do(ctx, cred, http.MethodDelete, path, nil)
	return err
}

// Duplicate creates a copy of an existing document and returns the new record.
func (r *RemoteStore) Duplicate(ctx context.Context, cred Credential, ownerID, documentID string) (documents.Document, error) {
	body := map[string]string{"ownerId": ownerID, "documentId": documentID}
	env, err := r.do(ctx, cred, http.MethodPost, "/documents/duplicate", body)
	if err != nil {
		return documents.Document{}, err
	}
	return docFromPayload(env.Document)
}

func (r *RemoteStore) do(ctx context.Context, cred Credential, method, path string, body any) (envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return envelope{}, err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, reader)
	if err != nil {
		return envelope{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	applyCredential(req, cred)

	client := r.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return envelope{}, fmt.Errorf("document store unreachable: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return envelope{}, fmt.Errorf("decode response (%s %s, status %d): %w", method, path, resp.StatusCode, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return envelope{}, documents.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return envelope{}, fmt.Errorf("%s %s failed: %s", method, path, msg)
	}
	return env, nil
}

func applyCredential(req *http.Request, cred Credential) {
	if cred.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cred.Token)
		return
	}
	if cred.GuestID != "" {
		req.Header.Set("X-Guest-Id", cred.GuestID)
	}
}

func docFromPayload(p *documentPayload) (documents.Document, error) {
	if p == nil {
		return documents.Document{}, fmt.Errorf("response missing document")
	}
	return documents.Document{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Title:     p.Title,
		Type:      p.Type,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

var _ Store = (*RemoteStore)(nil)
