// Package town resolves the learner's buildings: one per domain, each
// with a ladder of tiers unlocked by the domain's stats counter.
package town

import (
	"fmt"

	"github.com/learnquest/learnquest/internal/progress"
)

// Tier is one stage of a building.
type Tier struct {
	Niveau              int    `json:"niveau"`
	Titre               string `json:"titre"`
	DescriptionVisuelle string `json:"description_visuelle"`
	Exigence            int    `json:"exigence"`
	UniteExigence       string `json:"unite_exigence"`
}

// Building is the tier ladder of one domain, ascending by Exigence.
type Building struct {
	Domain progress.Domain `json:"domaine"`
	Tiers  []Tier          `json:"progression"`
}

// Resolution is a building's state for a given metric value.
type Resolution struct {
	Current Tier  `json:"current"`
	Next    *Tier `json:"next"`

	// Progress is the fraction of the way from Current to Next, in [0, 1].
	// It is 1 when Current is the last tier.
	Progress float64 `json:"progress"`

	// Remaining is how much metric is still missing to reach Next.
	Remaining int `json:"remaining"`
}

// Resolve picks the highest tier whose exigence is met by metric. The
// ladder must have passed Validate.
func Resolve(b Building, metric int) Resolution {
	idx := 0
	for i := len(b.Tiers) - 1; i >= 0; i-- {
		if metric >= b.Tiers[i].Exigence {
			idx = i
			break
		}
	}
	r := Resolution{Current: b.Tiers[idx], Progress: 1}
	if idx+1 < len(b.Tiers) {
		next := b.Tiers[idx+1]
		span := float64(next.Exigence - r.Current.Exigence)
		r.Next = &next
		r.Progress = min(max(float64(metric-r.Current.Exigence)/span, 0), 1)
		r.Remaining = max(next.Exigence-metric, 0)
	}
	return r
}

// Metric returns the stats counter that drives the building of domain d.
func Metric(stats progress.Stats, d progress.Domain) (int, error) {
	k, ok := progress.StatFor(d)
	if !ok {
		return 0, fmt.Errorf("no stats counter for domain %q", d)
	}
	return stats.Get(k), nil
}

// BuildingView is one resolved building as shown in the town screen.
type BuildingView struct {
	Domain progress.Domain `json:"domaine"`
	Metric int             `json:"metric"`
	Unit   string          `json:"unit"`
	Resolution
}

// View resolves every building against stats, in catalog order.
func View(stats progress.Stats) []BuildingView {
	out := make([]BuildingView, 0, len(catalog))
	for _, b := range catalog {
		m, _ := Metric(stats, b.Domain)
		r := Resolve(b, m)
		out = append(out, BuildingView{
			Domain:     b.Domain,
			Metric:     m,
			Unit:       r.Current.UniteExigence,
			Resolution: r,
		})
	}
	return out
}

// Find returns the building of domain d.
func Find(d progress.Domain) (Building, bool) {
	for _, b := range catalog {
		if b.Domain == d {
			return b, true
		}
	}
	return Building{}, false
}

// Buildings returns a copy of the catalog.
func Buildings() []Building {
	out := make([]Building, len(catalog))
	copy(out, catalog)
	return out
}
