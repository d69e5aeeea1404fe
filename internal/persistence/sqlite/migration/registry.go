package migration

import (
	"fmt"
	"sort"
)

// Registry holds the ordered chain of registered migration steps. Validation
// happens once at construction, so a malformed chain aborts process startup
// rather than surfacing mid-run.
type Registry struct {
	steps []Step
}

// NewRegistry validates the supplied steps and returns a registry over them.
// The steps must form a strictly linear chain rooted at the baseline: the
// first step starts at Baseline, every step advances the version by exactly
// one, no two steps share a From version, and consecutive steps connect
// without gaps. Order of the input slice does not matter.
func NewRegistry(steps []Step) (*Registry, error) {
	ordered := make([]Step, len(steps))
	copy(ordered, steps)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].From < ordered[j].From
	})

	for i, step := range ordered {
		if step.Up == nil {
			return nil, fmt.Errorf("%w: step %q (v%d->v%d) has no action", ErrRegistryGap, step.Name, step.From, step.To)
		}
		if step.To != step.From+1 {
			return nil, fmt.Errorf("%w: step %q skips from v%d to v%d", ErrRegistryGap, step.Name, step.From, step.To)
		}

		if i == 0 {
			if step.From != Baseline {
				return nil, fmt.Errorf("%w: chain starts at v%d instead of the baseline", ErrRegistryGap, step.From)
			}
			continue
		}

		previous := ordered[i-1]
		if step.From == previous.From {
			return nil, fmt.Errorf("%w: steps %q and %q both start at v%d", ErrRegistryGap, previous.Name, step.Name, step.From)
		}
		if step.From != previous.To {
			return nil, fmt.Errorf("%w: no step bridges v%d to v%d", ErrRegistryGap, previous.To, step.From)
		}
	}

	return &Registry{steps: ordered}, nil
}

// StepsFrom returns all registered steps with From >= v in ascending order.
// With a valid registry the result is a gap-free chain starting at v, or empty
// when the store is already at or past the last registered step.
func (r *Registry) StepsFrom(v Version) []Step {
	idx := sort.Search(len(r.steps), func(i int) bool {
		return r.steps[i].From >= v
	})

	pending := make([]Step, len(r.steps)-idx)
	copy(pending, r.steps[idx:])
	return pending
}

// Len returns the number of registered steps.
func (r *Registry) Len() int {
	return len(r.steps)
}

// Latest returns the To version of the final registered step, or Baseline for
// an empty registry.
func (r *Registry) Latest() Version {
	if len(r.steps) == 0 {
		return Baseline
	}
	return r.steps[len(r.steps)-1].To
}
