// Package api is the typed REST client for the travel agency backend.
// It owns nothing but the wire contract: one service per backend resource,
// a shared request helper that attaches the bearer token from the injected
// session store, and typed errors. No retries, no caching, no UI side
// effects.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/saikamaik/airline-sub000/pkg/session"
)

// Options configures a Client. BaseURL should include the /api prefix,
// e.g. "http://localhost:8080/api".
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// Client is the REST client. The session store is an explicit constructor
// dependency: every request reads the current token from it, and a 401
// response clears it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
	log        zerolog.Logger

	Tours           *ToursService
	Flights         *FlightsService
	Requests        *RequestsService
	Employees       *EmployeesService
	EmployeeDesk    *EmployeeDeskService
	Clients         *ClientsService
	Statistics      *StatisticsService
	Analytics       *AnalyticsService
	Favorites       *FavoritesService
	Recommendations *RecommendationsService
}

// New creates a Client bound to the given session store.
func New(opts Options, store *session.Store) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		session:    store,
		log:        logger,
	}

	c.Tours = &ToursService{client: c}
	c.Flights = &FlightsService{client: c}
	c.Requests = &RequestsService{client: c}
	c.Employees = &EmployeesService{client: c}
	c.EmployeeDesk = &EmployeeDeskService{client: c}
	c.Clients = &ClientsService{client: c}
	c.Statistics = &StatisticsService{client: c}
	c.Analytics = &AnalyticsService{client: c}
	c.Favorites = &FavoritesService{client: c}
	c.Recommendations = &RecommendationsService{client: c}

	return c
}

// Session returns the injected session store.
func (c *Client) Session() *session.Store {
	return c.session
}

// do issues a JSON request and decodes the response body into out (when out
// is non-nil). body is JSON-encoded when non-nil. query may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	data, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	if out == nil || len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// doRaw issues a request and returns the raw response body. Used directly
// for blob downloads (CSV export) and raw analytics pass-through.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Token is read once at issue time; concurrent logout does not affect
	// requests already in flight.
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug().Str("method", method).Str("url", u).Msg("API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.asAPIError(resp.StatusCode, path, data)
	}

	return data, nil
}

// asAPIError decodes the backend's error body, falling back to a generic
// message when the body is not the standard shape. A 401 additionally clears
// the session so no later request carries the dead token.
func (c *Client) asAPIError(status int, path string, body []byte) error {
	apiErr := &APIError{StatusCode: status, Path: path}
	if len(body) > 0 {
		// Best effort; a non-JSON body leaves the generic message.
		_ = json.Unmarshal(body, apiErr)
		apiErr.StatusCode = status
	}

	if status == http.StatusUnauthorized {
		c.session.Clear()
		c.log.Warn().Str("path", path).Msg("401 response, session cleared")
	}

	return apiErr
}

// intStr formats an int64 path parameter.
func intStr(id int64) string {
	return fmt.Sprintf("%d", id)
}
