package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/notekit/notekit/backend/go-services/internal/assist"
	"github.com/notekit/notekit/backend/go-services/internal/note"
	"github.com/notekit/notekit/backend/go-services/internal/note/repository"
	"github.com/notekit/notekit/backend/go-services/internal/note/service"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (s *stubProvider) Generate(context.Context, string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func newTestEngine(p assist.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	tick := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	g := gin.New()
	RegisterRoutes(g.Group("/api"), service.NewMemoryService(repository.WithClock(clock)), assist.NewClient(p), "X-User-Id")
	return g
}

func do(g *gin.Engine, method, path, user, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if user != "" {
		req.Header.Set("X-User-Id", user)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func decodeNote(t *testing.T, w *httptest.ResponseRecorder) note.Note {
	t.Helper()
	var resp struct {
		Note note.Note `json:"note"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Note
}

func TestNoteHandler_CRUD(t *testing.T) {
	g := newTestEngine(&stubProvider{})

	// create
	w := do(g, http.MethodPost, "/api/notes", "alice", `{"title":"Groceries","content":"<p>milk</p>","tags":["home"]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeNote(t, w)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "alice", created.UserID)
	require.Equal(t, []string{"home"}, created.Tags)

	// get
	w = do(g, http.MethodGet, "/api/notes/"+created.ID, "alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, created.ID, decodeNote(t, w).ID)

	// update tags only
	w = do(g, http.MethodPatch, "/api/notes/"+created.ID, "alice", `{"tags":["errands","home"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeNote(t, w)
	require.Equal(t, "Groceries", updated.Title)
	require.Equal(t, "<p>milk</p>", updated.Content)
	require.Equal(t, []string{"errands", "home"}, updated.Tags)
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// list
	w = do(g, http.MethodGet, "/api/notes", "alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Notes []note.Note `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Notes, 1)

	// delete
	w = do(g, http.MethodDelete, "/api/notes/"+created.ID, "alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Note deleted successfully"}`, w.Body.String())

	w = do(g, http.MethodGet, "/api/notes/"+created.ID, "alice", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"Note not found"}`, w.Body.String())
}

func TestNoteHandler_Defaults(t *testing.T) {
	g := newTestEngine(&stubProvider{})

	w := do(g, http.MethodPost, "/api/notes", "alice", `{"title":"bare"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"tags":[]`)
	require.Contains(t, w.Body.String(), `"content":""`)

	w = do(g, http.MethodGet, "/api/notes", "bob", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"notes":[]}`, w.Body.String())
}

func TestNoteHandler_Unauthorized(t *testing.T) {
	g := newTestEngine(&stubProvider{})
	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/notes", ""},
		{http.MethodPost, "/api/notes", `{"title":"x"}`},
		{http.MethodGet, "/api/notes/abc", ""},
		{http.MethodPatch, "/api/notes/abc", `{"title":"x"}`},
		{http.MethodDelete, "/api/notes/abc", ""},
	} {
		w := do(g, tc.method, tc.path, "", tc.body)
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
		require.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	}
}

func TestNoteHandler_CrossOwnerIsNotFound(t *testing.T) {
	g := newTestEngine(&stubProvider{})
	w := do(g, http.MethodPost, "/api/notes", "alice", `{"title":"private"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeNote(t, w).ID

	require.Equal(t, http.StatusNotFound, do(g, http.MethodGet, "/api/notes/"+id, "bob", "").Code)
	require.Equal(t, http.StatusNotFound, do(g, http.MethodPatch, "/api/notes/"+id, "bob", `{"title":"mine"}`).Code)
	require.Equal(t, http.StatusNotFound, do(g, http.MethodDelete, "/api/notes/"+id, "bob", "").Code)

	w = do(g, http.MethodGet, "/api/notes/"+id, "alice", "")
	require.Equal(t, "private", decodeNote(t, w).Title)
}

func TestNoteHandler_Validation(t *testing.T) {
	g := newTestEngine(&stubProvider{})

	tests := []struct {
		name   string
		method string
		body   string
		field  string
	}{
		{"missing title", http.MethodPost, `{"content":"x"}`, "title"},
		{"empty title", http.MethodPost, `{"title":""}`, "title"},
		{"blank title", http.MethodPost, `{"title":"   "}`, "title"},
		{"title too long", http.MethodPost, `{"title":"` + strings.Repeat("a", 201) + `"}`, "title"},
		{"tags wrong type", http.MethodPost, `{"title":"t","tags":"a"}`, "tags"},
		{"malformed json", http.MethodPost, `{"title":`, "body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(g, tt.method, "/api/notes", "alice", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp struct {
				Error   string `json:"error"`
				Details []struct {
					Field   string `json:"field"`
					Message string `json:"message"`
				} `json:"details"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, "Invalid request data", resp.Error)
			require.NotEmpty(t, resp.Details)
			require.Equal(t, tt.field, resp.Details[0].Field)
		})
	}

	w := do(g, http.MethodPost, "/api/notes", "alice", `{"title":"`+strings.Repeat("a", 200)+`"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeNote(t, w).ID

	w = do(g, http.MethodPatch, "/api/notes/"+id, "alice", `{"title":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNoteHandler_Summarize(t *testing.T) {
	p := &stubProvider{reply: "```json\n{\"summary\":\"Short.\"}\n```"}
	g := newTestEngine(p)

	// no identity needed
	w := do(g, http.MethodPost, "/api/notes/ai/summarize", "", `{"content":"a long note"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"summary":"Short."}`, w.Body.String())

	w = do(g, http.MethodPost, "/api/notes/ai/summarize", "", `{"content":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 1, p.calls)

	p.reply = "no json here"
	w = do(g, http.MethodPost, "/api/notes/ai/summarize", "", `{"content":"x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"summary":"Unable to generate summary."}`, w.Body.String())
}

func TestNoteHandler_AssistFailures(t *testing.T) {
	p := &stubProvider{err: assist.ErrBlocked}
	g := newTestEngine(p)

	w := do(g, http.MethodPost, "/api/notes/ai/fix-grammar", "", `{"content":"x"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"`+assist.BlockedMessage+`"}`, w.Body.String())

	p.err = errors.New("upstream secret detail")
	w = do(g, http.MethodPost, "/api/notes/ai/auto-tag", "", `{"title":"t","content":"c"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "secret")
}

func TestNoteHandler_FixGrammarAndAutoTag(t *testing.T) {
	p := &stubProvider{reply: `{"fixedContent":"Hello.","corrections":[]}`}
	g := newTestEngine(p)

	w := do(g, http.MethodPost, "/api/notes/ai/fix-grammar", "", `{"content":"helo"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"fixedContent":"Hello.","corrections":[]}`, w.Body.String())

	p.reply = `{"tags":["a","b","c","d","e","f"]}`
	w = do(g, http.MethodPost, "/api/notes/ai/auto-tag", "", `{"title":"t","content":"c"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"tags":["a","b","c","d","e"]}`, w.Body.String())

	w = do(g, http.MethodPost, "/api/notes/ai/auto-tag", "", `{"title":"","content":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
