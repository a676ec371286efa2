package skilltree

import "github.com/learnquest/learnquest/internal/progress"

// Status is a node's purchase state for a given user.
type Status string

const (
	StatusLocked    Status = "locked"
	StatusAvailable Status = "available"
	StatusUnlocked  Status = "unlocked"
)

// CanUnlock reports whether n can be bought now: not already owned, its
// parent (if any) owned, and enough of the right currency. It holds no
// state and must be asked again after every balance change.
func (c *Catalog) CanUnlock(s progress.State, n Node) bool {
	if s.IsUnlocked(n.ID) {
		return false
	}
	if n.ParentID != "" && !s.IsUnlocked(n.ParentID) {
		return false
	}
	switch n.CostType {
	case progress.CostBP:
		return s.BuildPoints >= n.Cost
	case progress.CostSP:
		e, ok := c.byID[n.ID]
		if !ok || e.skill == "" {
			return false
		}
		return s.SkillPoints[e.skill] >= n.Cost
	}
	return false
}

// Unlock buys node id when the gate allows it. On rejection or an unknown
// id the state is returned unchanged with false.
func (c *Catalog) Unlock(s progress.State, id string) (progress.State, bool) {
	e, ok := c.byID[id]
	if !ok || !c.CanUnlock(s, e.node) {
		return s, false
	}
	return progress.PurchaseSkillNode(s, progress.Purchase{
		NodeID:   e.node.ID,
		Cost:     e.node.Cost,
		CostType: e.node.CostType,
		SkillKey: e.skill,
	}), true
}

// Status classifies n for s.
func (c *Catalog) Status(s progress.State, n Node) Status {
	switch {
	case s.IsUnlocked(n.ID):
		return StatusUnlocked
	case c.CanUnlock(s, n):
		return StatusAvailable
	default:
		return StatusLocked
	}
}

// CanUnlock asks the default catalog's gate.
func CanUnlock(s progress.State, n Node) bool { return def.CanUnlock(s, n) }

// Unlock buys id from the default catalog.
func Unlock(s progress.State, id string) (progress.State, bool) { return def.Unlock(s, id) }
