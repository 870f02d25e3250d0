package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(NewMemoryRepo())
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestSaveEndpointCreatesDocument(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/documents", SaveRequest{
		OwnerID: "guest:g1",
		Title:   "My Resume",
		Type:    TypeResume,
		Content: json.RawMessage(`{"template":"modern"}`),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)
	var doc DocumentResponse
	if err := json.Unmarshal(env["document"], &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc.ID == "" || doc.OwnerID != "guest:g1" || doc.Title != "My Resume" {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestSaveEndpointRejectsBadType(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/documents", SaveRequest{
		OwnerID: "guest:g1",
		Title:   "My Resume",
		Type:    "spreadsheet",
		Content: json.RawMessage(`{}`),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)
	if string(env["code"]) != `"validation_error"` {
		t.Fatalf("expected validation_error, got %s", env["code"])
	}
}

func TestSaveEndpointUpdateUnknownIDIs404(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/documents", SaveRequest{
		OwnerID:    "guest:g1",
		DocumentID: "nope",
		Title:      "My Resume",
		Type:       TypeResume,
		Content:    json.RawMessage(`{}`),
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListAndGetEndpoints(t *testing.T) {
	r, svc := newTestRouter(t)

	saved, err := svc.Save(context.Background(), SaveInput{
		OwnerID: "guest:g1",
		Title:   "Mine",
		Type:    TypeResume,
		Content: json.RawMessage(`{"v":1}`),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/documents/owner/guest:g1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	var docs []DocumentResponse
	if err := json.Unmarshal(decodeEnvelope(t, w)["documents"], &docs); err != nil {
		t.Fatalf("decode documents: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != saved.ID {
		t.Fatalf("unexpected list: %+v", docs)
	}

	// Another owner sees an empty list, not an error.
	w = doJSON(t, r, http.MethodGet, "/api/v1/documents/owner/guest:other", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list other: expected 200, got %d", w.Code)
	}
	if err := json.Unmarshal(decodeEnvelope(t, w)["documents"], &docs); err != nil {
		t.Fatalf("decode documents: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected empty list for other owner, got %+v", docs)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/documents/owner/guest:g1/"+saved.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}

	// Owner scoping on get.
	w = doJSON(t, r, http.MethodGet, "/api/v1/documents/owner/guest:other/"+saved.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get other: expected 404, got %d", w.Code)
	}
}

func TestDeleteEndpointIsIdempotent(t *testing.T) {
	r, svc := newTestRouter(t)

	saved, err := svc.Save(context.Background(), SaveInput{
		OwnerID: "guest:g1",
		Title:   "Mine",
		Type:    TypeResume,
		Content: json.RawMessage(`{}`),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := doJSON(t, r, http.MethodDelete, "/api/v1/documents/"+saved.ID+"/guest:g1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	// Second delete of the same id still succeeds.
	w = doJSON(t, r, http.MethodDelete, "/api/v1/documents/"+saved.ID+"/guest:g1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("repeat delete: expected 200, got %d", w.Code)
	}
}

func TestDuplicateEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)

	saved, err := svc.Save(context.Background(), SaveInput{
		OwnerID: "guest:g1",
		Title:   "Mine",
		Type:    TypeResume,
		Content: json.RawMessage(`{"v":1}`),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/documents/duplicate", DuplicateRequest{
		OwnerID:    "guest:g1",
		DocumentID: saved.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("duplicate: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var doc DocumentResponse
	if err := json.Unmarshal(decodeEnvelope(t, w)["document"], &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc.ID == saved.ID || doc.Title != "Mine"+CopySuffix {
		t.Fatalf("unexpected copy: %+v", doc)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/documents/duplicate", DuplicateRequest{
		OwnerID:    "guest:other",
		DocumentID: saved.ID,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("duplicate other owner: expected 404, got %d", w.Code)
	}
}
