package doc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/joefazee/atlas/docs"
)

func newRouter(environment string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Init(r, environment)
	return r
}

func TestSwaggerJSON(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", http.NoBody)
	newRouter("production").ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	info := body["info"].(map[string]interface{})
	assert.Equal(t, "Atlas API", info["title"])

	paths := body["paths"].(map[string]interface{})
	assert.Contains(t, paths, "/api/v1/countries/code/{code}")
	assert.Contains(t, paths, "/api/v1/explore/sessions/{id}/term")

	servers := body["servers"].([]interface{})
	assert.Len(t, servers, 3)

	schemes := body["components"].(map[string]interface{})["securitySchemes"].(map[string]interface{})
	assert.Contains(t, schemes, "BearerAuth")
}

func TestServersForEnvironment(t *testing.T) {
	assert.Len(t, getServersForEnvironment("development"), 1)
	assert.Len(t, getServersForEnvironment("staging"), 2)
	assert.Len(t, getServersForEnvironment("production"), 3)
}

func TestServeElements(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/docs/index.html", http.NoBody)
	newRouter("development").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Atlas API Documentation")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}
