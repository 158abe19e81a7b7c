// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/graphavalanche/pkg/types"
)

// Document is the node-link form of a graph handed to renderers.
type Document struct {
	Directed bool      `json:"directed" yaml:"directed"`
	Nodes    []DocNode `json:"nodes" yaml:"nodes"`
	Edges    []Edge    `json:"edges" yaml:"edges"`
	Stats    Stats     `json:"stats" yaml:"stats"`
}

// DocNode is a node with its degrees, used for sizing in renderers.
type DocNode struct {
	Node      `yaml:",inline"`
	InDegree  int `json:"in_degree" yaml:"in_degree"`
	OutDegree int `json:"out_degree" yaml:"out_degree"`
}

// Document returns the node-link form of g.
func (g *Graph) Document() Document {
	doc := Document{
		Directed: true,
		Nodes:    make([]DocNode, 0, len(g.order)),
		Edges:    g.Edges(),
		Stats:    g.Stats(),
	}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, DocNode{Node: n, InDegree: g.InDegree(n.ID), OutDegree: g.OutDegree(n.ID)})
	}
	if doc.Edges == nil {
		doc.Edges = []Edge{}
	}
	return doc
}

// CytoscapeElements is the Cytoscape.js elements format.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// CytoscapeNode wraps node data for Cytoscape.js.
type CytoscapeNode struct {
	Data DocNode `json:"data"`
}

// CytoscapeEdge wraps edge data for Cytoscape.js.
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData holds the edge fields. ID is stable because a graph
// holds at most one edge per ordered pair.
type CytoscapeEdgeData struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Cytoscape converts g to Cytoscape.js elements.
func (g *Graph) Cytoscape() CytoscapeElements {
	doc := g.Document()
	el := CytoscapeElements{
		Nodes: make([]CytoscapeNode, 0, len(doc.Nodes)),
		Edges: make([]CytoscapeEdge, 0, len(doc.Edges)),
	}
	for _, n := range doc.Nodes {
		el.Nodes = append(el.Nodes, CytoscapeNode{Data: n})
	}
	for _, e := range doc.Edges {
		el.Edges = append(el.Edges, CytoscapeEdge{Data: CytoscapeEdgeData{
			ID:     e.Source + "->" + e.Target,
			Source: e.Source,
			Target: e.Target,
		}})
	}
	return el
}

// Write encodes g to w in the requested format.
func Write(w io.Writer, g *Graph, format types.OutputFormat) error {
	switch format {
	case types.OutputJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(g.Document())
	case types.OutputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(g.Document())
	case types.OutputCytoscape:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(g.Cytoscape())
	default:
		return fmt.Errorf("unsupported output format %q (supported: json, yaml, cytoscape)", format)
	}
}
