package skilltree

import (
	"fmt"
	"strings"

	"github.com/learnquest/learnquest/internal/progress"
)

// InvariantError reports malformed static tree data.
type InvariantError struct {
	Problems []string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("skill tree validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// Validate performs all structural checks on the given trees and returns
// every problem found.
func Validate(trees []Tree) error {
	var errs []string

	domainOf := make(map[string]progress.Domain)
	parentOf := make(map[string]string)
	var ids []string

	seenDomain := make(map[progress.Domain]bool, len(trees))
	for _, t := range trees {
		if seenDomain[t.Domain] {
			errs = append(errs, fmt.Sprintf("duplicate tree for domain %q", t.Domain))
		}
		seenDomain[t.Domain] = true
		if _, ok := progress.SkillKeyFor(t.Domain); !ok {
			errs = append(errs, fmt.Sprintf("tree domain %q has no skill key", t.Domain))
		}

		seenBranch := make(map[string]bool, len(t.Branches))
		for _, b := range t.Branches {
			if seenBranch[b.ID] {
				errs = append(errs, fmt.Sprintf("tree %q: duplicate branch %q", t.Domain, b.ID))
			}
			seenBranch[b.ID] = true

			for _, n := range b.Nodes {
				if _, dup := domainOf[n.ID]; dup {
					errs = append(errs, fmt.Sprintf("duplicate node ID: %q", n.ID))
					continue
				}
				domainOf[n.ID] = t.Domain
				parentOf[n.ID] = n.ParentID
				ids = append(ids, n.ID)

				if n.Cost <= 0 {
					errs = append(errs, fmt.Sprintf("node %q: cost must be > 0, got %d", n.ID, n.Cost))
				}
				if n.CostType != progress.CostBP && n.CostType != progress.CostSP {
					errs = append(errs, fmt.Sprintf("node %q: unknown cost type %q", n.ID, n.CostType))
				}
			}
		}
	}

	// Parents must exist and live in the same tree.
	for _, id := range ids {
		p := parentOf[id]
		if p == "" {
			continue
		}
		pd, ok := domainOf[p]
		if !ok {
			errs = append(errs, fmt.Sprintf("node %q references nonexistent parent %q", id, p))
			continue
		}
		if pd != domainOf[id] {
			errs = append(errs, fmt.Sprintf("node %q has parent %q in another tree (%q)", id, p, pd))
		}
	}

	// Cycles, Kahn's algorithm over parent edges.
	inDegree := make(map[string]int, len(ids))
	children := make(map[string][]string)
	for _, id := range ids {
		if p := parentOf[id]; p != "" {
			if _, ok := domainOf[p]; ok {
				inDegree[id] = 1
				children[p] = append(children[p], id)
			}
		}
	}
	var queue []string
	for _, id := range ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, child := range children[id] {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	if visited < len(ids) {
		var cycle []string
		for _, id := range ids {
			if inDegree[id] > 0 {
				cycle = append(cycle, id)
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving nodes: %s", strings.Join(cycle, ", ")))
	}

	if len(errs) > 0 {
		return &InvariantError{Problems: errs}
	}
	return nil
}
