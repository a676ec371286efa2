// Package skilltree holds the per-domain skill trees and the gate that
// decides whether a node can be purchased.
package skilltree

import (
	"fmt"
	"slices"

	"github.com/learnquest/learnquest/internal/progress"
)

// Node is one purchasable perk.
type Node struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Cost        int               `json:"cost"`
	CostType    progress.CostType `json:"costType"`
	ParentID    string            `json:"parentId,omitempty"`
	Perk        string            `json:"perk,omitempty"`
}

// Branch groups a chain of nodes inside a tree.
type Branch struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Nodes       []Node `json:"nodes"`
}

// Tree is the skill tree of one domain.
type Tree struct {
	Domain   progress.Domain `json:"domain"`
	Branches []Branch        `json:"branches"`
}

type entry struct {
	node   Node
	domain progress.Domain
	skill  progress.SkillKey
	branch string
}

// Catalog is a validated set of trees with lookup indices.
type Catalog struct {
	trees []Tree
	byID  map[string]*entry
	order []string // node ids in declaration order
}

// NewCatalog validates trees and builds the indices.
func NewCatalog(trees []Tree) (*Catalog, error) {
	if err := Validate(trees); err != nil {
		return nil, err
	}
	c := &Catalog{
		trees: trees,
		byID:  make(map[string]*entry),
	}
	for _, t := range trees {
		skill, _ := progress.SkillKeyFor(t.Domain)
		for _, b := range t.Branches {
			for _, n := range b.Nodes {
				c.byID[n.ID] = &entry{node: n, domain: t.Domain, skill: skill, branch: b.ID}
				c.order = append(c.order, n.ID)
			}
		}
	}
	return c, nil
}

// def is the catalog built from the seed trees at init.
var def *Catalog

func init() {
	c, err := NewCatalog(seed)
	if err != nil {
		panic(err)
	}
	def = c
}

// Default returns the built-in catalog.
func Default() *Catalog { return def }

// Trees returns the trees in display order.
func (c *Catalog) Trees() []Tree {
	return slices.Clone(c.trees)
}

// Nodes returns every node in declaration order.
func (c *Catalog) Nodes() []Node {
	out := make([]Node, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].node)
	}
	return out
}

// Node returns a node by id.
func (c *Catalog) Node(id string) (Node, error) {
	e, ok := c.byID[id]
	if !ok {
		return Node{}, fmt.Errorf("skill node not found: %q", id)
	}
	return e.node, nil
}

// DomainOf returns the domain of the tree holding node id.
func (c *Catalog) DomainOf(id string) (progress.Domain, bool) {
	e, ok := c.byID[id]
	if !ok {
		return "", false
	}
	return e.domain, true
}

// TreeFor returns the tree of domain d.
func (c *Catalog) TreeFor(d progress.Domain) (Tree, bool) {
	for _, t := range c.trees {
		if t.Domain == d {
			return t, true
		}
	}
	return Tree{}, false
}

// GetNode looks up id in the default catalog.
func GetNode(id string) (Node, error) { return def.Node(id) }

// TreeFor looks up the tree of d in the default catalog.
func TreeFor(d progress.Domain) (Tree, bool) { return def.TreeFor(d) }
