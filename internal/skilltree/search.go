package skilltree

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// nodeSource adapts a node list to fuzzy.Source, matching on id and title.
type nodeSource []Node

func (ns nodeSource) Len() int { return len(ns) }

func (ns nodeSource) String(i int) string {
	return strings.ToLower(ns[i].ID + " " + ns[i].Title)
}

// Search returns the nodes whose id or title fuzzily matches query, best
// match first. An exact id short-circuits the search.
func (c *Catalog) Search(query string) []Node {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if e, ok := c.byID[query]; ok {
		return []Node{e.node}
	}
	nodes := nodeSource(c.Nodes())
	matches := fuzzy.FindFrom(strings.ToLower(query), nodes)
	out := make([]Node, 0, len(matches))
	for _, m := range matches {
		out = append(out, nodes[m.Index])
	}
	return out
}

// Search queries the default catalog.
func Search(query string) []Node { return def.Search(query) }
