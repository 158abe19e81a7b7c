// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/graphavalanche/pkg/types"
)

func sampleGraph() *Graph {
	g, _ := Build(
		[]types.Record{
			{"id": "A", "title": "Paper A", "year": "2020"},
			{"id": "B", "title": "Paper B", "year": "2021"},
		},
		[]types.Connection{{Source: "B", Target: "A"}},
	)
	return g
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleGraph(), types.OutputJSON))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.True(t, doc.Directed)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "Paper A", doc.Nodes[0].Label)
	assert.Equal(t, 1, doc.Nodes[0].InDegree)
	assert.Equal(t, 1, doc.Nodes[1].OutDegree)
	assert.Equal(t, []Edge{{Source: "B", Target: "A"}}, doc.Edges)
	assert.Equal(t, 2, doc.Stats.Nodes)
	assert.InDelta(t, 0.5, doc.Stats.Density, 1e-12)

	// Node fields are flattened into the node object.
	assert.Contains(t, buf.String(), `"label": "Paper A"`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleGraph(), types.OutputYAML))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "B", doc.Nodes[1].ID)
	assert.Equal(t, "2021", doc.Nodes[1].Date)
	assert.Equal(t, 1, doc.Stats.Edges)
}

func TestWriteCytoscape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleGraph(), types.OutputCytoscape))

	var el CytoscapeElements
	require.NoError(t, json.Unmarshal(buf.Bytes(), &el))
	require.Len(t, el.Nodes, 2)
	require.Len(t, el.Edges, 1)
	assert.Equal(t, "B->A", el.Edges[0].Data.ID)
	assert.Equal(t, "Paper B", el.Nodes[1].Data.Label)
}

func TestWriteEmptyGraphHasEdgeArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, New(), types.OutputJSON))
	assert.Contains(t, buf.String(), `"edges": []`)
	assert.Contains(t, buf.String(), `"density": 0`)
}

func TestWriteUnsupportedFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, New(), "graphml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}
