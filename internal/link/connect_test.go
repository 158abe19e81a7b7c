// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package link

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/graphavalanche/internal/index"
	"github.com/pdiddy/graphavalanche/pkg/types"
)

func TestBuildConnectionsFiltersToInputSet(t *testing.T) {
	idx := index.Build([]types.Record{
		{"id": "A", "doi": "doi_a"},
		{"id": "B", "doi": "doi_b"},
	})
	refs := NewReferences()
	refs.Set("doi_a", []string{"W_b", "W_c", "W_unresolved"})
	resolved := map[string]string{
		"W_b": "doi_b",
		"W_c": "doi_c",
	}

	got := BuildConnections(refs, resolved, idx)
	assert.Equal(t, []types.Connection{{Source: "A", Target: "B"}}, got)
}

func TestBuildConnectionsSkipsUnknownSource(t *testing.T) {
	idx := index.Build([]types.Record{{"id": "A", "doi": "doi_a"}})
	refs := NewReferences()
	refs.Set("doi_outside", []string{"W_a"})

	got := BuildConnections(refs, map[string]string{"W_a": "doi_a"}, idx)
	assert.Empty(t, got)
}

func TestBuildConnectionsOrderAndDuplicates(t *testing.T) {
	idx := index.Build([]types.Record{
		{"id": "A", "doi": "a"},
		{"id": "B", "doi": "b"},
		{"id": "C", "doi": "c"},
	})
	refs := NewReferences()
	refs.Set("c", []string{"Wa", "Wb"})
	refs.Set("a", []string{"Wb", "Wb", "Wc"})
	resolved := map[string]string{"Wa": "a", "Wb": "b", "Wc": "c"}

	got := BuildConnections(refs, resolved, idx)
	assert.Equal(t, []types.Connection{
		{Source: "C", Target: "A"},
		{Source: "C", Target: "B"},
		{Source: "A", Target: "B"},
		{Source: "A", Target: "B"},
		{Source: "A", Target: "C"},
	}, got)
}

func TestReferencesExternalIDs(t *testing.T) {
	refs := NewReferences()
	refs.Set("a", []string{"W1", "W2", ""})
	refs.Set("b", []string{"W2", "W3"})
	refs.Set("a", []string{"W4", "W1"})

	assert.Equal(t, []string{"a", "b"}, refs.Keys(), "overwrite keeps first position")
	assert.Equal(t, []string{"W4", "W1", "W2", "W3"}, refs.ExternalIDs())
	assert.Equal(t, 2, refs.Len())
}

func TestReferencesSetCopies(t *testing.T) {
	in := []string{"W1"}
	refs := NewReferences()
	refs.Set("a", in)
	in[0] = "mutated"
	got, _ := refs.Get("a")
	assert.Equal(t, []string{"W1"}, got)
}
