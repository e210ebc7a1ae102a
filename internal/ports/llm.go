package ports

import "context"

// CommentInput holds everything the LLM needs to write a lucky comment.
type CommentInput struct {
	// Excluded is in the order the user picked them.
	Excluded []int
	// Drawn is the lead set of the batch, ascending.
	Drawn []int
}

// TextGenerator produces a short comment via an LLM.
type TextGenerator interface {
	Generate(ctx context.Context, in CommentInput) (string, error)
}
