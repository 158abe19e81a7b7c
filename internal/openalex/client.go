// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex queries the OpenAlex works API for reference lists and
// identifier resolution.
package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/graphavalanche/internal/httputil"
	"github.com/pdiddy/graphavalanche/pkg/types"
)

// DefaultBaseURL is the OpenAlex works endpoint.
const DefaultBaseURL = "https://api.openalex.org/works"

// doiURLPrefix re-qualifies bare DOIs; the doi filter matches full DOI URLs.
const doiURLPrefix = "https://doi.org/"

// selectFields limits the response to what linking needs.
const selectFields = "id,doi,referenced_works"

// Work is the subset of an OpenAlex work record used for linking.
type Work struct {
	ID              string   `json:"id"`
	DOI             string   `json:"doi"`
	ReferencedWorks []string `json:"referenced_works"`
}

type worksResponse struct {
	Meta    worksMeta `json:"meta"`
	Results []Work    `json:"results"`
}

type worksMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
}

// Client queries the OpenAlex works endpoint. The zero value is not usable;
// construct with NewClient.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	Email     string
	APIKey    string
	UserAgent string

	// Logger receives a warning when a response holds fewer results than
	// the service matched.
	Logger *slog.Logger
}

// NewClient builds a Client from cfg, filling defaults for the base URL,
// timeout, and user agent.
func NewClient(cfg types.OpenAlexConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = types.DefaultTimeout
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = types.DefaultUserAgent
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		BaseURL:   base,
		Email:     cfg.Email,
		APIKey:    cfg.APIKey,
		UserAgent: ua,
		Logger:    slog.New(slog.DiscardHandler),
	}
}

// WorksByDOI returns the works whose DOI matches any of dois. Bare DOIs are
// re-prefixed with https://doi.org/ before querying.
func (c *Client) WorksByDOI(ctx context.Context, dois []string, perPage int) ([]Work, error) {
	return c.works(ctx, DOIFilter(dois), perPage)
}

// WorksByID returns the works whose OpenAlex ID matches any of ids.
func (c *Client) WorksByID(ctx context.Context, ids []string, perPage int) ([]Work, error) {
	return c.works(ctx, IDFilter(ids), perPage)
}

// DOIFilter builds an OR-joined doi filter expression.
func DOIFilter(dois []string) string {
	parts := make([]string, len(dois))
	for i, d := range dois {
		parts[i] = doiURLPrefix + d
	}
	return "doi:" + strings.Join(parts, "|")
}

// IDFilter builds an OR-joined openalex_id filter expression.
func IDFilter(ids []string) string {
	return "openalex_id:" + strings.Join(ids, "|")
}

func (c *Client) works(ctx context.Context, filter string, perPage int) ([]Work, error) {
	params := url.Values{
		"filter":   {filter},
		"per-page": {strconv.Itoa(perPage)},
		"select":   {selectFields},
	}
	if c.Email != "" {
		params.Set("mailto", c.Email)
	}
	if c.APIKey != "" {
		params.Set("api_key", c.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.Get(ctx, c.HTTP, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	var wr worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", httputil.Malformed(err))
	}
	if wr.Meta.Count > len(wr.Results) && c.Logger != nil {
		c.Logger.Warn("OpenAlex page truncated",
			"filter", filter,
			"count", wr.Meta.Count,
			"returned", len(wr.Results),
			"per_page", wr.Meta.PerPage)
	}
	return wr.Results, nil
}
