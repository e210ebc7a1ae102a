package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happycyhe/Happyfamily-Lotto/internal/adapters/store/memory"
	"github.com/happycyhe/Happyfamily-Lotto/internal/app"
	"github.com/happycyhe/Happyfamily-Lotto/internal/domain"
	"github.com/happycyhe/Happyfamily-Lotto/internal/ports"
)

type fixedRNG struct{ val int }

func (r fixedRNG) Intn(n int) int { return r.val % n }

// gatedCommenter blocks each Annotate call until released, so tests control
// when a comment resolves.
type gatedCommenter struct {
	mu       sync.Mutex
	gates    []chan string
	started  chan struct{}
	excluded [][]int
}

func newGatedCommenter() *gatedCommenter {
	return &gatedCommenter{started: make(chan struct{}, 16)}
}

func (g *gatedCommenter) Annotate(_ context.Context, excluded, _ []int) string {
	gate := make(chan string)
	g.mu.Lock()
	g.gates = append(g.gates, gate)
	g.excluded = append(g.excluded, excluded)
	g.mu.Unlock()
	g.started <- struct{}{}
	return <-gate
}

func (g *gatedCommenter) release(i int, comment string) {
	g.mu.Lock()
	gate := g.gates[i]
	g.mu.Unlock()
	gate <- comment
}

type instantCommenter string

func (c instantCommenter) Annotate(context.Context, []int, []int) string { return string(c) }

func sequentialIDs() domain.IDFunc {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// failingStore fails as many Update calls as failures is set to.
type failingStore struct {
	*memory.Store
	failures atomic.Int32
}

func (s *failingStore) Update(ctx context.Context, id string, fn func(*domain.Session) error) (domain.Session, error) {
	if s.failures.Add(-1) >= 0 {
		return domain.Session{}, errors.New("redis: connection reset")
	}
	return s.Store.Update(ctx, id, fn)
}

func newService(c app.Commenter) (*app.LottoService, *memory.Store) {
	store := memory.NewStore(time.Hour)
	return newServiceWithStore(c, store), store
}

func newServiceWithStore(c app.Commenter, store ports.SessionStore) *app.LottoService {
	return app.NewLottoService(store, c, fixedRNG{val: 3}, discardLogger(),
		app.WithIDFunc(sequentialIDs()),
		app.WithCommentRetryDelay(time.Millisecond),
	)
}

func waitIdle(t *testing.T, svc *app.LottoService) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))
}

func TestLotto_StartAndToggle(t *testing.T) {
	svc, _ := newService(instantCommenter("x"))
	ctx := context.Background()

	sess, err := svc.Start(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepExclusion, sess.Step)

	sess, err = svc.Toggle(ctx, "s1", 7)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, sess.Excluded.Numbers())

	sess, err = svc.Toggle(ctx, "s1", 7)
	require.NoError(t, err)
	assert.Equal(t, 0, sess.Excluded.Len())
	assert.Equal(t, 45, sess.Excluded.PoolSize())
}

func TestLotto_ToggleOutOfRange(t *testing.T) {
	svc, _ := newService(instantCommenter("x"))

	_, err := svc.Toggle(context.Background(), "s1", 46)
	assert.ErrorIs(t, err, domain.ErrNumberOutOfRange)
}

func TestLotto_DrawReturnsBatchBeforeComment(t *testing.T) {
	c := newGatedCommenter()
	svc, _ := newService(c)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "s1", 13)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, "s1", 4)
	require.NoError(t, err)

	sess, err := svc.Draw(ctx, "s1")
	require.NoError(t, err)

	require.NotNil(t, sess.Batch)
	assert.Len(t, sess.Batch.Sets, domain.BatchSize)
	assert.True(t, sess.CommentPending)
	assert.Empty(t, sess.Batch.Sets[0].Comment)
	assert.Equal(t, domain.StepGeneration, sess.Step)

	<-c.started
	c.release(0, "행운!")
	waitIdle(t, svc)

	sess, err = svc.Session(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "행운!", sess.Batch.Sets[0].Comment)
	assert.False(t, sess.CommentPending)
	assert.Equal(t, [][]int{{13, 4}}, c.excluded)
}

func TestLotto_StaleCommentDiscarded(t *testing.T) {
	c := newGatedCommenter()
	svc, _ := newService(c)
	ctx := context.Background()

	first, err := svc.Draw(ctx, "s1")
	require.NoError(t, err)
	<-c.started

	second, err := svc.Draw(ctx, "s1")
	require.NoError(t, err)
	<-c.started
	require.NotEqual(t, first.Batch.ID, second.Batch.ID)

	c.release(1, "new")
	c.release(0, "old")
	waitIdle(t, svc)

	sess, err := svc.Session(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, second.Batch.ID, sess.Batch.ID)
	assert.Equal(t, "new", sess.Batch.Sets[0].Comment)
}

func TestLotto_ResetDiscardsPendingComment(t *testing.T) {
	c := newGatedCommenter()
	svc, _ := newService(c)
	ctx := context.Background()

	_, err := svc.Draw(ctx, "s1")
	require.NoError(t, err)
	<-c.started

	sess, err := svc.Reset(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepIntro, sess.Step)
	assert.Nil(t, sess.Batch)

	c.release(0, "late")
	waitIdle(t, svc)

	sess, err = svc.Session(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, sess.Batch)
	assert.False(t, sess.CommentPending)
}

func TestLotto_DrawInsufficientPoolKeepsState(t *testing.T) {
	svc, _ := newService(instantCommenter("first"))
	ctx := context.Background()

	before, err := svc.Draw(ctx, "s1")
	require.NoError(t, err)
	waitIdle(t, svc)

	for n := 1; n <= 40; n++ {
		_, err := svc.Toggle(ctx, "s1", n)
		require.NoError(t, err)
	}

	_, err = svc.Draw(ctx, "s1")
	require.ErrorIs(t, err, domain.ErrInsufficientPool)

	after, err := svc.Session(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, before.Batch.ID, after.Batch.ID)
	assert.Equal(t, "first", after.Batch.Sets[0].Comment)
}

func TestLotto_EditExclusionsKeepsBatch(t *testing.T) {
	svc, _ := newService(instantCommenter("x"))
	ctx := context.Background()

	drawn, err := svc.Draw(ctx, "s1")
	require.NoError(t, err)
	waitIdle(t, svc)

	sess, err := svc.EditExclusions(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepExclusion, sess.Step)
	assert.Equal(t, drawn.Batch.ID, sess.Batch.ID)
}

func TestLotto_ShutdownHonoursContext(t *testing.T) {
	c := newGatedCommenter()
	svc, _ := newService(c)

	_, err := svc.Draw(context.Background(), "s1")
	require.NoError(t, err)
	<-c.started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, svc.Shutdown(ctx), context.DeadlineExceeded)

	c.release(0, "done")
	waitIdle(t, svc)
}

func TestLotto_CommentWriteRetried(t *testing.T) {
	c := newGatedCommenter()
	store := &failingStore{Store: memory.NewStore(time.Hour)}
	svc := newServiceWithStore(c, store)
	ctx := context.Background()

	_, err := svc.Draw(ctx, "s1")
	require.NoError(t, err)
	<-c.started

	store.failures.Store(2)
	c.release(0, "행운!")
	waitIdle(t, svc)

	sess, err := svc.Session(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "행운!", sess.Batch.Sets[0].Comment)
	assert.False(t, sess.CommentPending)
}

func TestLotto_CommentWriteFailureClearsPending(t *testing.T) {
	c := newGatedCommenter()
	store := &failingStore{Store: memory.NewStore(time.Hour)}
	svc := newServiceWithStore(c, store)
	ctx := context.Background()

	_, err := svc.Draw(ctx, "s1")
	require.NoError(t, err)
	<-c.started

	// Every attempt for the real comment fails; the fallback write succeeds.
	store.failures.Store(3)
	c.release(0, "행운!")
	waitIdle(t, svc)

	sess, err := svc.Session(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, app.FallbackError, sess.Batch.Sets[0].Comment)
	assert.False(t, sess.CommentPending)
}

func TestLotto_DrawAfterShutdownCommentsInline(t *testing.T) {
	svc, _ := newService(instantCommenter("inline"))
	ctx := context.Background()
	waitIdle(t, svc)

	_, err := svc.Draw(ctx, "s1")
	require.NoError(t, err)

	sess, err := svc.Session(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "inline", sess.Batch.Sets[0].Comment)
	assert.False(t, sess.CommentPending)
}
