package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/happycyhe/Happyfamily-Lotto/internal/domain"
	"github.com/happycyhe/Happyfamily-Lotto/internal/ports"
)

// Commenter writes the lucky comment for a lead set.
type Commenter interface {
	Annotate(ctx context.Context, excluded, drawn []int) string
}

var errStaleComment = errors.New("comment belongs to a replaced batch")

const (
	commentWriteAttempts     = 3
	defaultCommentRetryDelay = 200 * time.Millisecond
)

// LottoService owns the session workflow: collect exclusions, draw a batch,
// then attach the comment to the lead set once it arrives.
type LottoService struct {
	store     ports.SessionStore
	commenter Commenter
	rng       domain.RNG
	logger    *slog.Logger

	newID      domain.IDFunc
	now        func() time.Time
	retryDelay time.Duration

	// mu orders inflight.Add against Shutdown.
	mu       sync.Mutex
	closing  bool
	inflight sync.WaitGroup
}

type Option func(*LottoService)

// WithCommentRetryDelay sets the pause between attempts to store a comment.
func WithCommentRetryDelay(d time.Duration) Option {
	return func(s *LottoService) { s.retryDelay = d }
}

// WithIDFunc overrides the UUID generator used for batches and sets.
func WithIDFunc(f domain.IDFunc) Option {
	return func(s *LottoService) { s.newID = f }
}

func NewLottoService(store ports.SessionStore, commenter Commenter, rng domain.RNG, logger *slog.Logger, opts ...Option) *LottoService {
	s := &LottoService{
		store:      store,
		commenter:  commenter,
		rng:        rng,
		logger:     logger,
		newID:      uuid.NewString,
		now:        time.Now,
		retryDelay: defaultCommentRetryDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LottoService) Session(ctx context.Context, sessionID string) (domain.Session, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// Start moves from the intro screen to exclusion picking.
func (s *LottoService) Start(ctx context.Context, sessionID string) (domain.Session, error) {
	return s.update(ctx, sessionID, func(sess *domain.Session) error {
		sess.Step = domain.StepExclusion
		return nil
	})
}

// EditExclusions goes back to picking while keeping the last batch.
func (s *LottoService) EditExclusions(ctx context.Context, sessionID string) (domain.Session, error) {
	return s.Start(ctx, sessionID)
}

func (s *LottoService) Toggle(ctx context.Context, sessionID string, n int) (domain.Session, error) {
	return s.update(ctx, sessionID, func(sess *domain.Session) error {
		next, err := domain.Toggle(n, sess.Excluded)
		if err != nil {
			return err
		}
		sess.Excluded = next
		return nil
	})
}

func (s *LottoService) Reset(ctx context.Context, sessionID string) (domain.Session, error) {
	return s.update(ctx, sessionID, func(sess *domain.Session) error {
		sess.Reset(s.now())
		return nil
	})
}

// Draw replaces the session's batch with a fresh one and returns the session
// as stored, with the comment still pending. The comment for the lead set is
// requested in the background once the batch is committed. On
// domain.ErrInsufficientPool the session is left as it was.
func (s *LottoService) Draw(ctx context.Context, sessionID string) (domain.Session, error) {
	var (
		batch    domain.Batch
		excluded []int
	)
	sess, err := s.update(ctx, sessionID, func(sess *domain.Session) error {
		b, err := domain.Draw(sess.Excluded, s.rng, s.newID, s.now())
		if err != nil {
			return err
		}
		sess.ApplyBatch(b, s.now())
		batch = b
		excluded = sess.Excluded.Numbers()
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}

	s.logger.InfoContext(ctx, "batch drawn",
		"session_id", sessionID,
		"batch_id", batch.ID,
		"excluded", len(excluded),
	)

	s.annotate(ctx, sessionID, batch.ID, excluded, batch.Lead().Numbers)
	return sess, nil
}

// annotate requests the comment in the background. Once Shutdown has begun
// the comment is produced inline instead.
func (s *LottoService) annotate(ctx context.Context, sessionID, batchID string, excluded, drawn []int) {
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		s.comment(ctx, sessionID, batchID, excluded, drawn)
		return
	}
	s.inflight.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.inflight.Done()
		s.comment(ctx, sessionID, batchID, excluded, drawn)
	}()
}

func (s *LottoService) comment(ctx context.Context, sessionID, batchID string, excluded, drawn []int) {
	start := time.Now()
	text := s.commenter.Annotate(ctx, excluded, drawn)

	err := s.storeComment(ctx, sessionID, batchID, text, commentWriteAttempts)
	if err != nil && !errors.Is(err, errStaleComment) {
		s.logger.ErrorContext(ctx, "store comment", "session_id", sessionID, "batch_id", batchID, "error", err)
		// Clear the pending flag so clients stop waiting for this batch.
		err = s.storeComment(ctx, sessionID, batchID, FallbackError, 1)
	}

	switch {
	case errors.Is(err, errStaleComment):
		s.logger.DebugContext(ctx, "discarding stale comment", "session_id", sessionID, "batch_id", batchID)
	case err != nil:
		s.logger.ErrorContext(ctx, "store fallback comment", "session_id", sessionID, "batch_id", batchID, "error", err)
	default:
		s.logger.InfoContext(ctx, "comment attached",
			"session_id", sessionID,
			"batch_id", batchID,
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (s *LottoService) storeComment(ctx context.Context, sessionID, batchID, text string, attempts int) error {
	var err error
	for i := range attempts {
		if i > 0 {
			time.Sleep(s.retryDelay)
		}
		_, err = s.store.Update(ctx, sessionID, func(sess *domain.Session) error {
			if !sess.ApplyComment(batchID, text, s.now()) {
				return errStaleComment
			}
			return nil
		})
		if err == nil || errors.Is(err, errStaleComment) {
			return err
		}
		s.logger.WarnContext(ctx, "comment write failed", "session_id", sessionID, "attempt", i+1, "error", err)
	}
	return err
}

// Shutdown stops launching background comments and blocks until every
// comment already in flight has been stored or discarded, or ctx is done.
// Draws after Shutdown produce their comment before returning.
func (s *LottoService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *LottoService) update(ctx context.Context, sessionID string, fn func(*domain.Session) error) (domain.Session, error) {
	sess, err := s.store.Update(ctx, sessionID, func(sess *domain.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		sess.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("update session: %w", err)
	}
	return sess, nil
}
