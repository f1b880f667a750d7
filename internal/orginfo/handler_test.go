package orginfo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avtostart/avtostart-backend/internal/gate"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewService(NewMemoryRepository())
	NewHandler(svc, gate.AllowAll{}, false).Register(r.Group("/api"))
	return r
}

type env struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func TestBasicInfoHandler_GetBeforeAnyUpdate(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/info/basic", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	var e env
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	require.Equal(t, "error", e.Status)
}

func TestBasicInfoHandler_UpdateThenGetAndHistory(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/info/basic",
		strings.NewReader(`{"fullName":"ЧОУ ДПО «Автостарт»","shortName":"Автостарт","phone":"+7 900 000-00-00"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/info/basic", strings.NewReader(`{"phone":"+7 911 111-11-11"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/info/basic", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var e env
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	var info Info
	require.NoError(t, json.Unmarshal(e.Data, &info))
	require.Equal(t, "+7 911 111-11-11", info.Phone)
	require.Equal(t, "ЧОУ ДПО «Автостарт»", info.FullName)
	// no authenticated subject in dev mode: placeholder attribution
	require.Equal(t, "admin", info.UpdatedBy)

	// history with out-of-range paging params falls back to defaults
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/info/basic/history?page=0&limit=-5", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	var hp HistoryPage
	require.NoError(t, json.Unmarshal(e.Data, &hp))
	require.Len(t, hp.Entries, 2)
	require.Equal(t, 1, hp.Meta.Page)
	require.Equal(t, defaultHistoryLimit, hp.Meta.Limit)
}

func TestBasicInfoHandler_FirstUpdateValidation(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/info/basic", strings.NewReader(`{"phone":"+7 900"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
