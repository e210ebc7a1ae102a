package domain

import "slices"

// Toggle removes n from current when present and adds it otherwise. current
// is left untouched.
func Toggle(n int, current ExclusionSet) (ExclusionSet, error) {
	if !InDomain(n) {
		return current, ErrNumberOutOfRange
	}

	if i := slices.Index(current.numbers, n); i >= 0 {
		return ExclusionSet{numbers: slices.Delete(slices.Clone(current.numbers), i, i+1)}, nil
	}

	next := make([]int, len(current.numbers), len(current.numbers)+1)
	copy(next, current.numbers)
	return ExclusionSet{numbers: append(next, n)}, nil
}
