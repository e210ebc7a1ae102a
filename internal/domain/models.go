package domain

import (
	"encoding/json"
	"slices"
	"time"
)

const (
	MinNumber = 1
	MaxNumber = 45
	// SetSize is how many numbers make up one drawn set.
	SetSize = 6
	// BatchSize is how many sets one draw produces.
	BatchSize = 5
)

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// IDFunc returns a fresh unique identifier.
type IDFunc func() string

// InDomain reports whether n is a drawable lottery number.
func InDomain(n int) bool {
	return n >= MinNumber && n <= MaxNumber
}

// ExclusionSet holds the numbers left out of every draw, in the order they
// were excluded. The zero value is an empty set.
type ExclusionSet struct {
	numbers []int
}

// NewExclusionSet builds a set from ns, dropping duplicates.
func NewExclusionSet(ns ...int) (ExclusionSet, error) {
	var s ExclusionSet
	for _, n := range ns {
		if !InDomain(n) {
			return ExclusionSet{}, ErrNumberOutOfRange
		}
		if !s.Contains(n) {
			s.numbers = append(s.numbers, n)
		}
	}
	return s, nil
}

func (s ExclusionSet) Contains(n int) bool {
	return slices.Contains(s.numbers, n)
}

func (s ExclusionSet) Len() int { return len(s.numbers) }

// PoolSize is the number of values still eligible for drawing.
func (s ExclusionSet) PoolSize() int {
	return MaxNumber - MinNumber + 1 - len(s.numbers)
}

// Numbers returns the excluded numbers in exclusion order.
func (s ExclusionSet) Numbers() []int {
	return slices.Clone(s.numbers)
}

// Sorted returns the excluded numbers in ascending order.
func (s ExclusionSet) Sorted() []int {
	out := slices.Clone(s.numbers)
	slices.Sort(out)
	return out
}

// Equal reports set equality, ignoring order.
func (s ExclusionSet) Equal(o ExclusionSet) bool {
	return slices.Equal(s.Sorted(), o.Sorted())
}

// Pool returns {MinNumber..MaxNumber} minus the set, ascending.
func (s ExclusionSet) Pool() []int {
	pool := make([]int, 0, s.PoolSize())
	for n := MinNumber; n <= MaxNumber; n++ {
		if !s.Contains(n) {
			pool = append(pool, n)
		}
	}
	return pool
}

// DrawnSet is one suggested combination.
type DrawnSet struct {
	ID        string    `json:"id"`
	Numbers   []int     `json:"numbers"`
	CreatedAt time.Time `json:"created_at"`
	Comment   string    `json:"comment,omitempty"`
}

// Batch is the full output of a single draw. A new batch replaces the old
// one; nothing is kept.
type Batch struct {
	ID        string     `json:"id"`
	Sets      []DrawnSet `json:"sets"`
	CreatedAt time.Time  `json:"created_at"`
}

func (b Batch) Clone() Batch {
	out := b
	out.Sets = make([]DrawnSet, len(b.Sets))
	for i, set := range b.Sets {
		set.Numbers = slices.Clone(set.Numbers)
		out.Sets[i] = set
	}
	return out
}

// Lead returns the first set, the one that receives the comment.
func (b Batch) Lead() DrawnSet {
	if len(b.Sets) == 0 {
		return DrawnSet{}
	}
	return b.Sets[0]
}

func (s ExclusionSet) MarshalJSON() ([]byte, error) {
	if s.numbers == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.numbers)
}

func (s *ExclusionSet) UnmarshalJSON(data []byte) error {
	var ns []int
	if err := json.Unmarshal(data, &ns); err != nil {
		return err
	}
	set, err := NewExclusionSet(ns...)
	if err != nil {
		return err
	}
	*s = set
	return nil
}
