// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"sort"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing a node date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01",
	"2006",
}

// ParseDate parses the date forms found in paper spreadsheets: full dates,
// timestamps, year-month, and bare years.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TimelineEntry is a node placed on the publication timeline.
type TimelineEntry struct {
	Node  `yaml:",inline"`
	Time  time.Time `json:"time" yaml:"time"`
	Dated bool      `json:"dated" yaml:"dated"`
}

// Timeline returns all nodes ordered by publication date. Nodes with an
// unparseable or missing date follow the dated ones; ties keep insertion
// order.
func (g *Graph) Timeline() []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(g.order))
	for _, id := range g.order {
		n := *g.nodes[id]
		t, ok := ParseDate(n.Date)
		entries = append(entries, TimelineEntry{Node: n, Time: t, Dated: ok})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Dated != b.Dated {
			return a.Dated
		}
		return a.Time.Before(b.Time)
	})
	return entries
}
