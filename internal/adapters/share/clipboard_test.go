package share

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happycyhe/Happyfamily-Lotto/internal/ports"
)

type stubSharer struct {
	err   error
	calls int
}

func (s *stubSharer) Share(context.Context, ports.ShareMessage) error {
	s.calls++
	return s.err
}

var msg = ports.ShareMessage{Title: "title", Text: "body"}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewPrinter(&buf).Share(context.Background(), msg))
	assert.Equal(t, "title\n\nbody\n", buf.String())
}

func TestChain_SkipsUnavailable(t *testing.T) {
	first := &stubSharer{err: ports.ErrShareUnavailable}
	second := &stubSharer{}
	third := &stubSharer{}

	require.NoError(t, Chain{first, second, third}.Share(context.Background(), msg))
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls)
}

func TestChain_StopsOnRealError(t *testing.T) {
	boom := errors.New("boom")
	second := &stubSharer{}

	err := Chain{&stubSharer{err: boom}, second}.Share(context.Background(), msg)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, second.calls)
}

func TestChain_AllUnavailable(t *testing.T) {
	err := Chain{&stubSharer{err: ports.ErrShareUnavailable}}.Share(context.Background(), msg)
	assert.ErrorIs(t, err, ports.ErrShareUnavailable)
}

func TestClipboard_WriteError(t *testing.T) {
	c := &Clipboard{write: func(string) error { return errors.New("no xclip") }}

	err := c.Share(context.Background(), msg)
	if errors.Is(err, ports.ErrShareUnavailable) {
		t.Skip("clipboard unsupported on this platform")
	}
	assert.ErrorContains(t, err, "write clipboard")
}
