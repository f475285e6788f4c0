package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kapirun-api/internal/score"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminRouter(t *testing.T, svc *mockScoreService) *gin.Engine {
	handler := NewAdminHandler(svc, newTestLogger(t))
	router := setupTestRouter()
	router.POST("/api/v1/admin/reset", handler.Reset)
	router.POST("/api/v1/admin/reset-all", handler.ResetAll)
	return router
}

func postAdmin(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminHandler_ResetByUserID(t *testing.T) {
	svc := &mockScoreService{affected: 1}
	router := newAdminRouter(t, svc)

	w := postAdmin(router, "/api/v1/admin/reset", `{"user_id": 42}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.resetRefs, 1)
	assert.Equal(t, "42", svc.resetRefs[0])

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["affected"])
}

func TestAdminHandler_ResetByUsername(t *testing.T) {
	svc := &mockScoreService{affected: 1}
	router := newAdminRouter(t, svc)

	w := postAdmin(router, "/api/v1/admin/reset", `{"username": "@kapi"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.resetRefs, 1)
	assert.Equal(t, "@kapi", svc.resetRefs[0])
}

func TestAdminHandler_ResetRequiresARef(t *testing.T) {
	svc := &mockScoreService{}
	router := newAdminRouter(t, svc)

	w := postAdmin(router, "/api/v1/admin/reset", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.resetRefs)
}

func TestAdminHandler_ResetAll(t *testing.T) {
	svc := &mockScoreService{affected: 17}
	router := newAdminRouter(t, svc)

	w := postAdmin(router, "/api/v1/admin/reset-all", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.resetAllHit)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(17), resp["affected"])
}

func TestAdminHandler_StoreUnavailable(t *testing.T) {
	svc := &mockScoreService{resetErr: score.ErrStoreUnavailable}
	router := newAdminRouter(t, svc)

	w := postAdmin(router, "/api/v1/admin/reset-all", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
