package domain

import "time"

// Step is the screen a session is currently on.
type Step string

const (
	StepIntro      Step = "intro"
	StepExclusion  Step = "exclusion"
	StepGeneration Step = "generation"
)

// Session is the whole application state of one user: the current step,
// the exclusions collected so far and the latest batch.
type Session struct {
	ID             string       `json:"id"`
	Step           Step         `json:"step"`
	Excluded       ExclusionSet `json:"excluded"`
	Batch          *Batch       `json:"batch,omitempty"`
	CommentPending bool         `json:"comment_pending"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewSession returns a session in its initial state.
func NewSession(id string, now time.Time) Session {
	return Session{ID: id, Step: StepIntro, UpdatedAt: now}
}

// Reset returns the session to its initial state. Any comment still in
// flight no longer matches a batch and will be dropped.
func (s *Session) Reset(now time.Time) {
	*s = NewSession(s.ID, now)
}

// ApplyBatch replaces the current batch and marks its comment as pending.
func (s *Session) ApplyBatch(b Batch, now time.Time) {
	cp := b.Clone()
	s.Batch = &cp
	s.Step = StepGeneration
	s.CommentPending = true
	s.UpdatedAt = now
}

// ApplyComment attaches comment to the lead set of the batch identified by
// batchID. It reports false, leaving the session unchanged, when that batch
// is no longer current.
func (s *Session) ApplyComment(batchID, comment string, now time.Time) bool {
	if s.Batch == nil || s.Batch.ID != batchID || len(s.Batch.Sets) == 0 {
		return false
	}
	s.Batch.Sets[0].Comment = comment
	s.CommentPending = false
	s.UpdatedAt = now
	return true
}

// Clone returns a deep copy that shares no slices with s.
func (s Session) Clone() Session {
	out := s
	out.Excluded = ExclusionSet{numbers: s.Excluded.Numbers()}
	if s.Batch != nil {
		b := s.Batch.Clone()
		out.Batch = &b
	}
	return out
}
