package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joefazee/atlas/app"
	"github.com/joefazee/atlas/internal/cache"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/models"
	"github.com/joefazee/atlas/tests/mocks"
	"github.com/joefazee/atlas/tests/suites"
)

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v3.1/all", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Country{mocks.France(), mocks.Japan()})
	})
	mux.HandleFunc("/v3.1/alpha/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/FRA") {
			_ = json.NewEncoder(w).Encode([]models.Country{mocks.France()})
			return
		}
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := app.DefaultConfig()
	cfg.RestCountries.BaseURL = newUpstream(t).URL + "/v3.1"

	identities, err := cache.New[models.Identity](cache.Options{Backend: cache.MemoryBackend})
	require.NoError(t, err)
	t.Cleanup(func() { _ = identities.Close() })

	log := logger.NewNullLogger()
	container, registry, err := newContainer(cfg, suites.NewSQLiteDB(t), identities, log)
	require.NoError(t, err)
	t.Cleanup(registry.CloseAll)

	return newEngine(cfg, container, log)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env
}

func TestEngine_Health(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/healthz", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestEngine_AnonymousCanListCountries(t *testing.T) {
	r := newTestEngine(t)

	code, env := do(t, r, http.MethodGet, "/api/v1/countries?region=Europe", "", nil)
	require.Equal(t, http.StatusOK, code)
	var listed []struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "FRA", listed[0].Code)
}

func TestEngine_AnonymousCannotListFavorites(t *testing.T) {
	r := newTestEngine(t)

	code, env := do(t, r, http.MethodGet, "/api/v1/favorites", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestEngine_SignedInFlow(t *testing.T) {
	r := newTestEngine(t)

	code, env := do(t, r, http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.AccessToken)

	code, env = do(t, r, http.MethodGet, "/api/v1/countries?region=Asia", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)
	var listed []struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "JPN", listed[0].Code)

	code, _ = do(t, r, http.MethodPost, "/api/v1/favorites/toggle", login.AccessToken, map[string]string{"code": "FRA"})
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, r, http.MethodGet, "/api/v1/favorites/FRA", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"favorite":true`)

	code, _ = do(t, r, http.MethodPost, "/api/v1/users/logout", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, r, http.MethodGet, "/api/v1/favorites", login.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestEngine_ExploreSession(t *testing.T) {
	r := newTestEngine(t)

	code, env := do(t, r, http.MethodPost, "/api/v1/explore/sessions", "", nil)
	require.Equal(t, http.StatusCreated, code)
	var session struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))

	code, _ = do(t, r, http.MethodPut, "/api/v1/explore/sessions/"+session.ID+"/filters", "",
		map[string]string{"region": "Europe"})
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, r, http.MethodGet, "/api/v1/explore/sessions/"+session.ID+"/countries", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"FRA"`)
	assert.NotContains(t, string(env.Data), `"JPN"`)
}
