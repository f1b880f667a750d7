package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avtostart/avtostart-backend/internal/documents/service"
	"github.com/avtostart/avtostart-backend/internal/gate"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(g gate.Gate, production bool) (*gin.Engine, service.Service) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := service.NewMemoryService()
	New(svc, nil, g, production).Register(r.Group("/api"))
	return r, svc
}

type env struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) env {
	t.Helper()
	var e env
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestDocumentHandler_CRUD(t *testing.T) {
	r, _ := newTestRouter(gate.AllowAll{}, false)

	// create
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/documents",
		strings.NewReader(`{"title":"Устав","category":"charter","description":"основной документ"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	e := decode(t, w)
	require.Equal(t, "success", e.Status)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(e.Data, &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	// document timestamps serialize date-only
	up, _ := created["uploadDate"].(string)
	require.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, up)
	require.Equal(t, "active", created["status"])

	// get
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/documents/"+id, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// update
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/documents/"+id, strings.NewReader(`{"title":"Устав 2026"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	e = decode(t, w)
	var updated map[string]interface{}
	require.NoError(t, json.Unmarshal(e.Data, &updated))
	require.Equal(t, "Устав 2026", updated["title"])
	require.Equal(t, "основной документ", updated["description"])

	// delete
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/documents/"+id, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// subsequent get maps to 404 with the error envelope
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/documents/"+id, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
	e = decode(t, w)
	require.Equal(t, "error", e.Status)
}

func TestDocumentHandler_ListGroupedAndByCategory(t *testing.T) {
	r, _ := newTestRouter(gate.AllowAll{}, false)

	for _, body := range []string{
		`{"title":"Устав","category":"charter"}`,
		`{"title":"Лицензия","category":"license"}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/documents", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// grouped view contains all seven category keys
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	e := decode(t, w)
	var grouped map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(e.Data, &grouped))
	require.Len(t, grouped, 7)
	require.Len(t, grouped["charter"], 1)
	require.Len(t, grouped["reports"], 0)

	// category filter returns a flat list
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/documents?category=license", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	e = decode(t, w)
	var flat []map[string]interface{}
	require.NoError(t, json.Unmarshal(e.Data, &flat))
	require.Len(t, flat, 1)
	require.Equal(t, "Лицензия", flat[0]["title"])
}

func TestDocumentHandler_SearchAndStats(t *testing.T) {
	r, _ := newTestRouter(gate.AllowAll{}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/documents",
		strings.NewReader(`{"title":"Отчёт о самообследовании","category":"reports"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/documents/search?q=REPORTS", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	e := decode(t, w)
	var found []map[string]interface{}
	require.NoError(t, json.Unmarshal(e.Data, &found))
	require.Len(t, found, 1)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/documents/stats", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	e = decode(t, w)
	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(e.Data, &stats))
	require.EqualValues(t, 1, stats["totalDocuments"])
}

func TestDocumentHandler_ValidationError(t *testing.T) {
	r, _ := newTestRouter(gate.AllowAll{}, false)

	// missing required title
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/documents", strings.NewReader(`{"category":"charter"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// unknown category rejected at write time
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/documents", strings.NewReader(`{"title":"x","category":"diploma"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentHandler_GateDeniesAnonymousMutations(t *testing.T) {
	r, _ := newTestRouter(gate.RequireSubject{}, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/documents", strings.NewReader(`{"title":"x","category":"charter"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)

	// reads stay open
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
