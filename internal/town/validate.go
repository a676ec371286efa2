package town

import (
	"fmt"
	"strings"

	"github.com/learnquest/learnquest/internal/progress"
)

// InvariantError reports malformed static building data.
type InvariantError struct {
	Problems []string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("building data validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// Validate checks the tier ladders: every building has tiers, the first
// tier is free, thresholds strictly increase, levels count up from 1,
// each domain appears once and has a stats counter.
func Validate(buildings []Building) error {
	var errs []string
	if len(buildings) == 0 {
		errs = append(errs, "no buildings defined")
	}

	seen := make(map[progress.Domain]bool, len(buildings))
	for _, b := range buildings {
		if seen[b.Domain] {
			errs = append(errs, fmt.Sprintf("duplicate building for domain %q", b.Domain))
		}
		seen[b.Domain] = true

		if _, ok := progress.StatFor(b.Domain); !ok {
			errs = append(errs, fmt.Sprintf("building %q has no stats counter", b.Domain))
		}
		if len(b.Tiers) == 0 {
			errs = append(errs, fmt.Sprintf("building %q has no tiers", b.Domain))
			continue
		}
		if b.Tiers[0].Exigence != 0 {
			errs = append(errs, fmt.Sprintf("building %q: first tier exigence must be 0, got %d", b.Domain, b.Tiers[0].Exigence))
		}
		for i, t := range b.Tiers {
			if t.Niveau != i+1 {
				errs = append(errs, fmt.Sprintf("building %q tier %d: niveau must be %d, got %d", b.Domain, i, i+1, t.Niveau))
			}
			if i > 0 && t.Exigence <= b.Tiers[i-1].Exigence {
				errs = append(errs, fmt.Sprintf("building %q tier %d: exigence %d not above previous %d",
					b.Domain, i, t.Exigence, b.Tiers[i-1].Exigence))
			}
		}
	}

	if len(errs) > 0 {
		return &InvariantError{Problems: errs}
	}
	return nil
}

// MustLoad validates buildings and panics on the first problem set.
func MustLoad(buildings []Building) []Building {
	if err := Validate(buildings); err != nil {
		panic(err)
	}
	return buildings
}
