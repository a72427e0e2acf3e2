package pokemon

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// EvolutionRules maps a source catalog identifier to the ordered set of
// identifiers it may evolve into.
type EvolutionRules map[int][]int

// Targets returns the eligible evolution targets for id, in rule order.
func (r EvolutionRules) Targets(id int) []int {
	if r == nil {
		return nil
	}
	targets := r[id]
	if len(targets) == 0 {
		return nil
	}
	out := make([]int, len(targets))
	copy(out, targets)
	return out
}

// Allows reports whether from may evolve into to.
func (r EvolutionRules) Allows(from, to int) bool {
	for _, t := range r[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Sources returns every identifier that has at least one rule, sorted.
func (r EvolutionRules) Sources() []int {
	out := make([]int, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// UnmarshalJSON accepts the API's object form, whose keys are stringified
// identifiers ({"25": [26]}).
func (r *EvolutionRules) UnmarshalJSON(b []byte) error {
	raw := map[string][]int{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	rules := make(EvolutionRules, len(raw))
	for k, v := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("pokemon: evolution rule key %q: %w", k, err)
		}
		rules[id] = v
	}
	*r = rules
	return nil
}
