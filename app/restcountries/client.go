package restcountries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/models"
)

var _ Gateway = (*Client)(nil)

// errNotFound is wrapped by HTTP 404 gateway errors; each operation decides what it means.
var errNotFound = errors.New("restcountries: not found")

// Client talks to the REST Countries v3.1 HTTP API.
type Client struct {
	baseURL        *url.URL
	http           *http.Client
	userAgent      string
	listFields     []string
	maxConcurrency int
	log            logger.Logger
}

// NewClient builds a Client from cfg. A nil http.Client gets one with cfg.Timeout.
func NewClient(cfg *Config, httpClient *http.Client, log logger.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if log == nil {
		log = logger.NewNullLogger()
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	concurrency := cfg.MaxConcurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	return &Client{
		baseURL:        base,
		http:           httpClient,
		userAgent:      userAgent,
		listFields:     cfg.ListFields,
		maxConcurrency: concurrency,
		log:            log,
	}, nil
}

// FetchAll retrieves every country. No retry, no pagination.
func (c *Client) FetchAll(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	if err := c.get(ctx, "fetch_all", c.listURL("all"), &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// FetchByCode resolves a 2 or 3 letter code to the first matching country.
// An empty result or HTTP 404 is models.ErrRecordNotFound.
func (c *Client) FetchByCode(ctx context.Context, code string) (*models.Country, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, models.ErrRecordNotFound
	}

	var raw json.RawMessage
	err := c.get(ctx, "fetch_by_code", c.endpoint(nil, "alpha", code), &raw)
	if errors.Is(err, errNotFound) {
		return nil, models.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	countries, err := decodeOneOrMany(raw)
	if err != nil {
		return nil, &GatewayError{Op: "fetch_by_code", URL: code, Err: err}
	}
	if len(countries) == 0 {
		return nil, models.ErrRecordNotFound
	}
	return &countries[0], nil
}

// SearchByName matches common and official names upstream. HTTP 404 means no match
// and yields an empty slice with no error.
func (c *Client) SearchByName(ctx context.Context, term string) ([]models.Country, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Country{}, nil
	}

	var countries []models.Country
	err := c.get(ctx, "search_by_name", c.listURL("name", term), &countries)
	if errors.Is(err, errNotFound) {
		return []models.Country{}, nil
	}
	if err != nil {
		return nil, err
	}
	return countries, nil
}

// FetchByRegion lists the countries of one region. An unknown region is an empty list.
func (c *Client) FetchByRegion(ctx context.Context, region string) ([]models.Country, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		return []models.Country{}, nil
	}

	var countries []models.Country
	err := c.get(ctx, "fetch_by_region", c.listURL("region", region), &countries)
	if errors.Is(err, errNotFound) {
		return []models.Country{}, nil
	}
	if err != nil {
		return nil, err
	}
	return countries, nil
}

// FetchByCodes resolves several codes concurrently, preserving input order.
// Duplicate and unknown codes are skipped; any other failure fails the call.
func (c *Client) FetchByCodes(ctx context.Context, codes []string) ([]models.Country, error) {
	unique := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		key := strings.ToUpper(strings.TrimSpace(code))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, key)
	}

	results := make([]*models.Country, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrency)
	for i, code := range unique {
		i, code := i, code
		g.Go(func() error {
			country, err := c.FetchByCode(gctx, code)
			if errors.Is(err, models.ErrRecordNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = country
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	countries := make([]models.Country, 0, len(results))
	for _, country := range results {
		if country != nil {
			countries = append(countries, *country)
		}
	}
	return countries, nil
}

func (c *Client) listURL(segments ...string) *url.URL {
	var query url.Values
	if len(c.listFields) > 0 {
		query = url.Values{"fields": []string{strings.Join(c.listFields, ",")}}
	}
	return c.endpoint(query, segments...)
}

func (c *Client) endpoint(query url.Values, segments ...string) *url.URL {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u := c.baseURL.JoinPath(escaped...)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u
}

func (c *Client) get(ctx context.Context, op string, u *url.URL, dest any) error {
	started := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &GatewayError{Op: op, URL: u.Path, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("restcountries request failed", logger.Fields{"op": op, "path": u.Path, "error": err.Error()})
		return &GatewayError{Op: op, URL: u.Path, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("restcountries request", logger.Fields{
		"op":       op,
		"path":     u.Path,
		"status":   resp.StatusCode,
		"duration": time.Since(started).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		gErr := &GatewayError{Op: op, URL: u.Path, Status: resp.StatusCode}
		if resp.StatusCode == http.StatusNotFound {
			gErr.Err = errNotFound
		}
		return gErr
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &GatewayError{Op: op, URL: u.Path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// decodeOneOrMany accepts either a JSON array of countries or a single object.
func decodeOneOrMany(raw json.RawMessage) ([]models.Country, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var countries []models.Country
		if err := json.Unmarshal(trimmed, &countries); err != nil {
			return nil, err
		}
		return countries, nil
	}
	var country models.Country
	if err := json.Unmarshal(trimmed, &country); err != nil {
		return nil, err
	}
	return []models.Country{country}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse restcountries base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse restcountries base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
