// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/graphavalanche/pkg/types"
)

func TestBuildCompleteness(t *testing.T) {
	var records []types.Record
	for i := 0; i < 25; i++ {
		records = append(records, types.Record{
			"id":  fmt.Sprintf("P%d", i),
			"doi": fmt.Sprintf("10.1234/paper.%d", i),
		})
	}

	idx := Build(records)
	assert.Equal(t, 25, idx.Len())
	assert.Equal(t, 0, idx.Duplicates())
	assert.Equal(t, 0, idx.Skipped())
	for i := 0; i < 25; i++ {
		key, ok := idx.Lookup(fmt.Sprintf("10.1234/paper.%d", i))
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("P%d", i), key)
	}
}

func TestBuildFieldVariants(t *testing.T) {
	records := []types.Record{
		{"id": 1, "doi": "10.1234/test.1", "title": "Test Paper 1"},
		{"ID": 2, "DOI": "10.1234/TEST.2", "Title": "Test Paper 2"},
		{"id": float64(3), "DOI": "https://doi.org/10.1234/test.3"},
	}

	idx := Build(records)
	require.Equal(t, 3, idx.Len())

	key, ok := idx.Lookup("10.1234/test.2")
	require.True(t, ok)
	assert.Equal(t, "2", key)

	key, ok = idx.Lookup("10.1234/test.3")
	require.True(t, ok)
	assert.Equal(t, "3", key, "JSON numbers should render as integers")

	id, ok := idx.Identifier("1")
	require.True(t, ok)
	assert.Equal(t, "10.1234/test.1", id)
}

func TestBuildSkipsIncompleteRecords(t *testing.T) {
	records := []types.Record{
		{"id": "A", "doi": "10.1/a"},
		{"id": "B"},
		{"doi": "10.1/c"},
		{"id": "D", "doi": ""},
		{"id": "", "doi": "10.1/e"},
		{"id": "F", "doi": nil},
		{"id": "G", "doi": "https://doi.org/"},
	}

	idx := Build(records)
	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, 6, idx.Skipped())
	assert.True(t, idx.Contains("10.1/a"))
}

func TestBuildCollisionLastWriteWins(t *testing.T) {
	records := []types.Record{
		{"id": "first", "doi": "10.1234/SAME"},
		{"id": "other", "doi": "10.1234/other"},
		{"id": "second", "doi": "https://doi.org/10.1234/same"},
	}

	idx := Build(records)
	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, 1, idx.Duplicates())

	key, ok := idx.Lookup("10.1234/same")
	require.True(t, ok)
	assert.Equal(t, "second", key)

	// The overwritten identifier keeps its first-insertion position.
	assert.Equal(t, []string{"10.1234/same", "10.1234/other"}, idx.Identifiers())
}

func TestBuildIdempotent(t *testing.T) {
	records := []types.Record{
		{"id": "A", "doi": "10.1/a"},
		{"id": "B", "doi": "10.1/b"},
		{"id": "C", "doi": "10.1/A"},
	}
	assert.Equal(t, Build(records), Build(records))
}

func TestIdentifiersReturnsCopy(t *testing.T) {
	idx := Build([]types.Record{{"id": "A", "doi": "10.1/a"}})
	ids := idx.Identifiers()
	ids[0] = "mutated"
	assert.Equal(t, []string{"10.1/a"}, idx.Identifiers())
}
