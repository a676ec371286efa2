package skilltree

import "github.com/learnquest/learnquest/internal/progress"

// NodeView is a node with its status for one user.
type NodeView struct {
	Node
	Status Status `json:"status"`
}

// BranchView is a branch of resolved nodes.
type BranchView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Nodes       []NodeView `json:"nodes"`
}

// TreeView is a domain tree resolved against one user's state.
type TreeView struct {
	Domain   progress.Domain `json:"domain"`
	Branches []BranchView    `json:"branches"`
}

// View resolves every tree against s, in display order.
func (c *Catalog) View(s progress.State) []TreeView {
	out := make([]TreeView, 0, len(c.trees))
	for _, t := range c.trees {
		tv := TreeView{Domain: t.Domain}
		for _, b := range t.Branches {
			bv := BranchView{ID: b.ID, Name: b.Name, Description: b.Description}
			for _, n := range b.Nodes {
				bv.Nodes = append(bv.Nodes, NodeView{Node: n, Status: c.Status(s, n)})
			}
			tv.Branches = append(tv.Branches, bv)
		}
		out = append(out, tv)
	}
	return out
}
