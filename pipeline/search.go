package pipeline

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Permutations returns every ordering of values. Orderings are generated by
// picking elements in index order, so sorted input yields lexicographic
// output.
func Permutations(values []int64) [][]int64 {
	var out [][]int64
	used := make([]bool, len(values))
	current := make([]int64, 0, len(values))
	var walk func()
	walk = func() {
		if len(current) == len(values) {
			out = append(out, append([]int64(nil), current...))
			return
		}
		for i, v := range values {
			if used[i] {
				continue
			}
			used[i] = true
			current = append(current, v)
			walk()
			current = current[:len(current)-1]
			used[i] = false
		}
	}
	walk()
	return out
}

// MaxSignal runs a fresh pipeline for every ordering of phaseSet, starting
// from signal 0, and returns the highest final signal together with the
// phases that produced it. Failing orderings are skipped; an error is
// returned only if no ordering succeeds, and then it aggregates every
// failure.
func MaxSignal(image []int64, phaseSet []int64, options ...Option) (int64, []int64, error) {
	var (
		best       int64
		bestPhases []int64
		errs       *multierror.Error
	)
	for _, phases := range Permutations(phaseSet) {
		signal, err := New(image, phases, options...).Run(0)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("phases %v: %w", phases, err))
			continue
		}
		if bestPhases == nil || signal > best {
			best, bestPhases = signal, phases
		}
	}
	if bestPhases == nil {
		return 0, nil, errs.ErrorOrNil()
	}
	return best, bestPhases, nil
}
