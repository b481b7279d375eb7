package explorer

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/joefazee/atlas/app/api"
	"github.com/joefazee/atlas/internal/deps"
	"github.com/joefazee/atlas/internal/sanitizer"
	"github.com/joefazee/atlas/models"
)

type ExploreHandlerTestSuite struct {
	suite.Suite
	source   *stubSource
	registry *Registry
	router   *gin.Engine
}

func (suite *ExploreHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (suite *ExploreHandlerTestSuite) SetupTest() {
	suite.source = &stubSource{results: []stubResult{{countries: sampleCountries()}}}
	suite.registry = NewRegistry(suite.source, &Config{DebounceInterval: time.Hour, MaxSessions: 2}, nil)

	container := deps.NewContainer(nil, nil, sanitizer.NewHTMLStripper(), nil, nil)
	container.RegisterService(RegistryKey, suite.registry)

	suite.router = gin.New()
	MountPublic(suite.router.Group("/api/v1"), container)
}

func (suite *ExploreHandlerTestSuite) TearDownTest() {
	suite.registry.CloseAll()
}

func TestExploreHandler(t *testing.T) {
	suite.Run(t, new(ExploreHandlerTestSuite))
}

func (suite *ExploreHandlerTestSuite) do(method, path string, body interface{}) (*httptest.ResponseRecorder, api.Response) {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var resp api.Response
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func (suite *ExploreHandlerTestSuite) open() string {
	w, resp := suite.do(http.MethodPost, "/api/v1/explore/sessions", nil)
	suite.Require().Equal(http.StatusCreated, w.Code)
	data := resp.Data.(map[string]interface{})
	return data["id"].(string)
}

func (suite *ExploreHandlerTestSuite) visibleCodes(id string) []string {
	w, resp := suite.do(http.MethodGet, "/api/v1/explore/sessions/"+id+"/countries", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var out []string
	for _, item := range resp.Data.([]interface{}) {
		out = append(out, item.(map[string]interface{})["code"].(string))
	}
	return out
}

func (suite *ExploreHandlerTestSuite) TestOpenSession_LoadsList() {
	w, resp := suite.do(http.MethodPost, "/api/v1/explore/sessions", nil)

	suite.Equal(http.StatusCreated, w.Code)
	data := resp.Data.(map[string]interface{})
	suite.NotEmpty(data["id"])
	suite.EqualValues(8, data["total"])
	suite.EqualValues(8, data["visible"])
	suite.Equal(false, data["loading"])
}

func (suite *ExploreHandlerTestSuite) TestOpenSession_FailedLoadStillCreates() {
	suite.source.results = []stubResult{{err: models.ErrNetworkFailure}}

	w, resp := suite.do(http.MethodPost, "/api/v1/explore/sessions", nil)

	suite.Equal(http.StatusCreated, w.Code)
	data := resp.Data.(map[string]interface{})
	suite.NotEmpty(data["error"])
	suite.EqualValues(0, data["total"])
}

func (suite *ExploreHandlerTestSuite) TestOpenSession_Limit() {
	suite.open()
	suite.open()

	w, resp := suite.do(http.MethodPost, "/api/v1/explore/sessions", nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("UNAVAILABLE", resp.Error.Code)
}

func (suite *ExploreHandlerTestSuite) TestUnknownSession() {
	w, resp := suite.do(http.MethodGet, "/api/v1/explore/sessions/nope", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("NOT_FOUND", resp.Error.Code)

	w, _ = suite.do(http.MethodDelete, "/api/v1/explore/sessions/nope", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ExploreHandlerTestSuite) TestSetFilters() {
	id := suite.open()

	w, resp := suite.do(http.MethodPut, "/api/v1/explore/sessions/"+id+"/filters",
		FilterRequest{Region: "Europe", Language: "German"})
	suite.Equal(http.StatusOK, w.Code)
	filter := resp.Data.(map[string]interface{})["filter"].(map[string]interface{})
	suite.Equal("Europe", filter["region"])
	suite.Equal([]string{"DEU", "BEL"}, suite.visibleCodes(id))

	suite.do(http.MethodPut, "/api/v1/explore/sessions/"+id+"/filters", FilterRequest{Region: "all"})
	suite.Len(suite.visibleCodes(id), 8)
}

func (suite *ExploreHandlerTestSuite) TestSetFilters_InvalidBody() {
	id := suite.open()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/explore/sessions/"+id+"/filters", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ExploreHandlerTestSuite) TestInputTerm_QueuedThenFlushed() {
	id := suite.open()

	w, resp := suite.do(http.MethodPost, "/api/v1/explore/sessions/"+id+"/term", TermRequest{Term: "ind"})
	suite.Equal(http.StatusAccepted, w.Code)
	suite.Equal(true, resp.Data.(map[string]interface{})["input_pending"])
	suite.Len(suite.visibleCodes(id), 8)

	w, _ = suite.do(http.MethodPost, "/api/v1/explore/sessions/"+id+"/term?flush=true", TermRequest{Term: "<b>ind</b>"})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal([]string{"IND", "IDN"}, suite.visibleCodes(id))
}

func (suite *ExploreHandlerTestSuite) TestResetAndFacets() {
	id := suite.open()
	suite.do(http.MethodPut, "/api/v1/explore/sessions/"+id+"/filters", FilterRequest{Term: "fra", Region: "Europe"})

	w, _ := suite.do(http.MethodPost, "/api/v1/explore/sessions/"+id+"/reset", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(suite.visibleCodes(id), 8)

	w, resp := suite.do(http.MethodGet, "/api/v1/explore/sessions/"+id+"/facets", nil)
	suite.Equal(http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	suite.Equal([]interface{}{"Antarctic", "Asia", "Europe"}, data["regions"])
}

func (suite *ExploreHandlerTestSuite) TestResetDropsQueuedTerm() {
	id := suite.open()
	suite.do(http.MethodPost, "/api/v1/explore/sessions/"+id+"/term", TermRequest{Term: "ind"})

	w, resp := suite.do(http.MethodPost, "/api/v1/explore/sessions/"+id+"/reset", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(false, resp.Data.(map[string]interface{})["input_pending"])
	suite.Len(suite.visibleCodes(id), 8)
}

func (suite *ExploreHandlerTestSuite) TestReload() {
	id := suite.open()
	suite.do(http.MethodPut, "/api/v1/explore/sessions/"+id+"/filters", FilterRequest{Region: "Asia"})

	suite.source.mu.Lock()
	suite.source.results = []stubResult{{countries: sampleCountries()}, {err: models.ErrAPIStatus}}
	suite.source.mu.Unlock()

	w, resp := suite.do(http.MethodPost, "/api/v1/explore/sessions/"+id+"/reload", nil)
	suite.Equal(http.StatusBadGateway, w.Code)
	suite.Equal("UPSTREAM_ERROR", resp.Error.Code)
	suite.Equal([]string{"IND", "JPN", "IDN"}, suite.visibleCodes(id))
}

func (suite *ExploreHandlerTestSuite) TestCloseSession() {
	id := suite.open()

	w, _ := suite.do(http.MethodDelete, "/api/v1/explore/sessions/"+id, nil)
	suite.Equal(http.StatusOK, w.Code)

	w, _ = suite.do(http.MethodGet, "/api/v1/explore/sessions/"+id, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}
