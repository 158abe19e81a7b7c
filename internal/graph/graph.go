// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph assembles paper records and citation connections into a
// directed graph and reports its statistics.
package graph

import "github.com/pdiddy/graphavalanche/pkg/types"

// Node is a paper in the graph.
type Node struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Date  string `json:"date,omitempty" yaml:"date,omitempty"`
}

// Edge is a directed citation: Source cites Target.
type Edge struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Stats summarizes a graph.
type Stats struct {
	Nodes   int     `json:"nodes" yaml:"nodes"`
	Edges   int     `json:"edges" yaml:"edges"`
	Density float64 `json:"density" yaml:"density"`
}

// Graph is a directed graph holding at most one edge per ordered node pair.
// Nodes and edges iterate in insertion order.
type Graph struct {
	nodes map[string]*Node
	order []string
	succ  map[string]map[string]struct{}
	pred  map[string]map[string]struct{}
	edges []Edge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		succ:  make(map[string]map[string]struct{}),
		pred:  make(map[string]map[string]struct{}),
	}
}

// Build adds one node per record with an internal key, then one edge per
// connection. Repeated connections collapse into a single edge.
func Build(records []types.Record, conns []types.Connection) (*Graph, Stats) {
	g := New()
	for _, r := range records {
		key := r.Key()
		if key == "" {
			continue
		}
		g.AddNode(key, r.Label(), r.Date())
	}
	for _, c := range conns {
		g.AddEdge(c.Source, c.Target)
	}
	return g, g.Stats()
}

// AddNode inserts a node or updates the attributes of an existing one.
func (g *Graph) AddNode(id, label, date string) {
	if n, ok := g.nodes[id]; ok {
		n.Label = label
		n.Date = date
		return
	}
	g.nodes[id] = &Node{ID: id, Label: label, Date: date}
	g.order = append(g.order, id)
	g.succ[id] = make(map[string]struct{})
	g.pred[id] = make(map[string]struct{})
}

// AddEdge inserts the edge src→tgt and reports whether it was new. Missing
// endpoints are created with empty attributes first, so an edge never
// refers to an absent node. Re-adding an existing edge is a no-op.
func (g *Graph) AddEdge(src, tgt string) bool {
	if _, ok := g.nodes[src]; !ok {
		g.AddNode(src, "", "")
	}
	if _, ok := g.nodes[tgt]; !ok {
		g.AddNode(tgt, "", "")
	}
	if _, ok := g.succ[src][tgt]; ok {
		return false
	}
	g.succ[src][tgt] = struct{}{}
	g.pred[tgt][src] = struct{}{}
	g.edges = append(g.edges, Edge{Source: src, Target: tgt})
	return true
}

// HasNode reports whether id is a node.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether the edge src→tgt exists.
func (g *Graph) HasEdge(src, tgt string) bool {
	_, ok := g.succ[src][tgt]
	return ok
}

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Nodes returns copies of all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.order))
	for i, id := range g.order {
		out[i] = *g.nodes[id]
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// OutDegree returns the number of papers id cites.
func (g *Graph) OutDegree(id string) int { return len(g.succ[id]) }

// InDegree returns the number of papers citing id.
func (g *Graph) InDegree(id string) int { return len(g.pred[id]) }

// Stats returns node count, edge count, and directed density.
func (g *Graph) Stats() Stats {
	n, e := g.NodeCount(), g.EdgeCount()
	return Stats{Nodes: n, Edges: e, Density: Density(n, e)}
}

// Density is edges / (nodes × (nodes − 1)) for a directed graph, and 0 when
// there are fewer than two nodes.
func Density(nodes, edges int) float64 {
	if nodes <= 1 {
		return 0
	}
	return float64(edges) / float64(nodes*(nodes-1))
}
