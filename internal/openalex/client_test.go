// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"bytes"
	"context"
	"log/slog"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/graphavalanche/internal/httputil"
	"github.com/pdiddy/graphavalanche/pkg/types"
)

const sampleWorksJSON = `{
  "meta": {"count": 2, "per_page": 50},
  "results": [
    {
      "id": "https://openalex.org/W1",
      "doi": "https://doi.org/10.1234/A",
      "referenced_works": ["https://openalex.org/W2", "https://openalex.org/W3"]
    },
    {
      "id": "https://openalex.org/W2",
      "doi": null,
      "referenced_works": []
    }
  ]
}`

func testServer(t *testing.T, status int, body string, seen *url.Values) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = r.URL.Query()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testClient(ts *httptest.Server) *Client {
	c := NewClient(types.OpenAlexConfig{BaseURL: ts.URL})
	c.HTTP = ts.Client()
	return c
}

func TestDOIFilter(t *testing.T) {
	assert.Equal(t, "doi:https://doi.org/10.1/a|https://doi.org/10.1/b", DOIFilter([]string{"10.1/a", "10.1/b"}))
	assert.Equal(t, "doi:https://doi.org/10.1/a", DOIFilter([]string{"10.1/a"}))
}

func TestIDFilter(t *testing.T) {
	assert.Equal(t, "openalex_id:https://openalex.org/W1|https://openalex.org/W2",
		IDFilter([]string{"https://openalex.org/W1", "https://openalex.org/W2"}))
}

func TestWorksByDOI(t *testing.T) {
	var q url.Values
	ts := testServer(t, http.StatusOK, sampleWorksJSON, &q)
	c := testClient(ts)

	works, err := c.WorksByDOI(context.Background(), []string{"10.1234/a", "10.1234/b"}, 50)
	require.NoError(t, err)
	require.Len(t, works, 2)

	assert.Equal(t, "https://openalex.org/W1", works[0].ID)
	assert.Equal(t, "https://doi.org/10.1234/A", works[0].DOI)
	assert.Equal(t, []string{"https://openalex.org/W2", "https://openalex.org/W3"}, works[0].ReferencedWorks)
	assert.Empty(t, works[1].DOI, "null doi decodes to empty string")

	assert.Equal(t, "doi:https://doi.org/10.1234/a|https://doi.org/10.1234/b", q.Get("filter"))
	assert.Equal(t, "50", q.Get("per-page"))
	assert.Equal(t, selectFields, q.Get("select"))
	assert.Empty(t, q.Get("mailto"))
	assert.Empty(t, q.Get("api_key"))
}

func TestWorksByID(t *testing.T) {
	var q url.Values
	ts := testServer(t, http.StatusOK, `{"results":[]}`, &q)
	c := testClient(ts)

	works, err := c.WorksByID(context.Background(), []string{"https://openalex.org/W9"}, 10)
	require.NoError(t, err)
	assert.Empty(t, works)
	assert.Equal(t, "openalex_id:https://openalex.org/W9", q.Get("filter"))
	assert.Equal(t, "10", q.Get("per-page"))
}

func TestPolitePoolAndKey(t *testing.T) {
	var q url.Values
	var ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q = r.URL.Query()
		ua = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"results":[]}`)
	}))
	defer ts.Close()

	c := NewClient(types.OpenAlexConfig{
		BaseURL:    ts.URL,
		Email:      "researcher@example.com",
		APIKey:     "k-123",
		HTTPConfig: types.HTTPConfig{UserAgent: "test/0.1"},
	})
	_, err := c.WorksByID(context.Background(), []string{"W1"}, 1)
	require.NoError(t, err)

	assert.Equal(t, "researcher@example.com", q.Get("mailto"))
	assert.Equal(t, "k-123", q.Get("api_key"))
	assert.Equal(t, "test/0.1", ua)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(types.OpenAlexConfig{})
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, types.DefaultUserAgent, c.UserAgent)
	assert.Equal(t, types.DefaultTimeout, c.HTTP.Timeout)

	c = NewClient(types.OpenAlexConfig{HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second}})
	assert.Equal(t, 5*time.Second, c.HTTP.Timeout)
}

func TestWorksErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind httputil.FailureKind
		substr   string
	}{
		{"server error", http.StatusInternalServerError, "", httputil.FailureStatus, "HTTP 500"},
		{"forbidden", http.StatusForbidden, "", httputil.FailureStatus, "HTTP 403"},
		{"malformed json", http.StatusOK, `{not json`, httputil.FailureMalformed, "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := testServer(t, tt.status, tt.body, nil)
			c := testClient(ts)

			_, err := c.WorksByDOI(context.Background(), []string{"10.1/a"}, 50)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, httputil.KindOf(err))
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}

func TestWorksWarnsOnTruncatedPage(t *testing.T) {
	tests := []struct {
		name string
		body string
		warn bool
	}{
		{"complete page", sampleWorksJSON, false},
		{"more matches than returned", `{"meta": {"count": 120, "per_page": 2}, "results": [{"id": "W1"}, {"id": "W2"}]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := testServer(t, http.StatusOK, tt.body, nil)
			c := testClient(ts)
			var logs bytes.Buffer
			c.Logger = slog.New(slog.NewTextHandler(&logs, nil))

			works, err := c.WorksByID(context.Background(), []string{"W1", "W2"}, 2)
			require.NoError(t, err)
			assert.Len(t, works, 2)
			if tt.warn {
				assert.Contains(t, logs.String(), "page truncated")
				assert.Contains(t, logs.String(), "count=120")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}
