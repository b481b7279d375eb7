package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joefazee/atlas/models"
	"github.com/joefazee/atlas/tests/mocks"
)

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	all := []models.Country{mocks.France(), mocks.Japan()}

	mux := http.NewServeMux()
	mux.HandleFunc("/v3.1/all", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(all)
	})
	mux.HandleFunc("/v3.1/alpha/", func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimPrefix(r.URL.Path, "/v3.1/alpha/")
		for _, c := range all {
			if c.CCA3 == strings.ToUpper(code) || c.CCA2 == strings.ToUpper(code) {
				_ = json.NewEncoder(w).Encode([]models.Country{c})
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("/v3.1/name/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/japan") {
			_ = json.NewEncoder(w).Encode([]models.Country{mocks.Japan()})
			return
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("/v3.1/region/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/europe") {
			_ = json.NewEncoder(w).Encode([]models.Country{mocks.France()})
			return
		}
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	srv := newUpstream(t)

	var stdout, stderr bytes.Buffer
	argv := append([]string{"atlas", "--base-url", srv.URL + "/v3.1"}, args...)
	err := newApp(&stdout, &stderr).Run(argv)
	return stdout.String(), err
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "CODE")
	assert.Contains(t, out, "France")
	assert.Contains(t, out, "67,391,582")
	assert.Contains(t, out, "2 countries")
}

func TestList_Filtered(t *testing.T) {
	out, err := run(t, "list", "--region", "Asia")
	require.NoError(t, err)

	assert.Contains(t, out, "Japan")
	assert.NotContains(t, out, "France")
	assert.Contains(t, out, "1 countries")
}

func TestList_JSON(t *testing.T) {
	out, err := run(t, "--json", "list", "--language", "French")
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "FRA", got[0]["code"])
}

func TestShow(t *testing.T) {
	out, err := run(t, "show", "fra")
	require.NoError(t, err)

	assert.Contains(t, out, "French Republic")
	assert.Contains(t, out, "Paris")
	assert.Contains(t, out, "+33")
	assert.Contains(t, out, "Euro")
}

func TestShow_Errors(t *testing.T) {
	_, err := run(t, "show", "ZZZ")
	require.Error(t, err)
	assert.Equal(t, ExitDataError, exitCode(err))

	_, err = run(t, "show", "not-a-code")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, exitCode(err))

	_, err = run(t, "show")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, exitCode(err))
}

func TestSearch(t *testing.T) {
	out, err := run(t, "search", "japan")
	require.NoError(t, err)
	assert.Contains(t, out, "Japan")

	out, err = run(t, "search", "zzzznotacountry")
	require.NoError(t, err)
	assert.Contains(t, out, "0 countries")
}

func TestRegion(t *testing.T) {
	out, err := run(t, "region", "europe")
	require.NoError(t, err)
	assert.Contains(t, out, "France")
}

func TestFacets(t *testing.T) {
	out, err := run(t, "facets")
	require.NoError(t, err)

	assert.Contains(t, out, "Regions (2):")
	assert.Contains(t, out, "Europe")
	assert.Contains(t, out, "Japanese")
}

func TestUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run([]string{"atlas", "--base-url", srv.URL, "list"})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAPIStatus)
	assert.Equal(t, ExitGeneralError, exitCode(err))
}
