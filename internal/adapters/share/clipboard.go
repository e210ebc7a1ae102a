package share

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"

	"github.com/happycyhe/Happyfamily-Lotto/internal/ports"
)

// Clipboard copies the message text to the system clipboard.
type Clipboard struct {
	write func(string) error
}

func NewClipboard() *Clipboard {
	return &Clipboard{write: clipboard.WriteAll}
}

func (c *Clipboard) Share(_ context.Context, msg ports.ShareMessage) error {
	if clipboard.Unsupported {
		return ports.ErrShareUnavailable
	}
	if err := c.write(msg.Text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Printer writes the message to w. It is the last resort on headless
// machines where no clipboard utility is installed.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Share(_ context.Context, msg ports.ShareMessage) error {
	_, err := fmt.Fprintf(p.w, "%s\n\n%s\n", msg.Title, msg.Text)
	return err
}

// Chain tries each sharer in order, moving on only when one reports
// ports.ErrShareUnavailable.
type Chain []ports.Sharer

func (c Chain) Share(ctx context.Context, msg ports.ShareMessage) error {
	for _, s := range c {
		err := s.Share(ctx, msg)
		if err == nil || !errors.Is(err, ports.ErrShareUnavailable) {
			return err
		}
	}
	return ports.ErrShareUnavailable
}
