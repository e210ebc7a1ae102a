package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientPool = errors.New("fewer than 6 numbers left to draw from")
	ErrNumberOutOfRange = errors.New("number must be between 1 and 45")
	ErrUpstreamLLM      = errors.New("upstream LLM failure")
	ErrEmptyLLMResponse = errors.New("LLM returned an empty response")
)

// InsufficientPoolError carries the pool size that made a draw impossible.
type InsufficientPoolError struct {
	Pool int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("%s (pool has %d)", ErrInsufficientPool, e.Pool)
}

func (e *InsufficientPoolError) Is(target error) bool {
	return target == ErrInsufficientPool
}
