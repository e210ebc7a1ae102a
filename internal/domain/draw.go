package domain

import (
	"slices"
	"time"
)

// Draw produces BatchSize independent sets of SetSize numbers from the pool
// left by excluded. Each set is an unbiased Fisher-Yates shuffle of the pool
// truncated and sorted ascending. Sets may repeat within a batch.
func Draw(excluded ExclusionSet, rng RNG, newID IDFunc, now time.Time) (Batch, error) {
	for _, n := range excluded.numbers {
		if !InDomain(n) {
			return Batch{}, ErrNumberOutOfRange
		}
	}

	pool := excluded.Pool()
	if len(pool) < SetSize {
		return Batch{}, &InsufficientPoolError{Pool: len(pool)}
	}

	sets := make([]DrawnSet, BatchSize)
	for i := range sets {
		sets[i] = DrawnSet{
			ID:        newID(),
			Numbers:   pick(pool, rng),
			CreatedAt: now,
		}
	}

	return Batch{
		ID:        newID(),
		Sets:      sets,
		CreatedAt: now,
	}, nil
}

func pick(pool []int, rng RNG) []int {
	shuffled := slices.Clone(pool)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	out := shuffled[:SetSize:SetSize]
	slices.Sort(out)
	return out
}
