package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/happycyhe/Happyfamily-Lotto/internal/adapters/terminal"
	"github.com/happycyhe/Happyfamily-Lotto/internal/app"
	"github.com/happycyhe/Happyfamily-Lotto/internal/config"
	"github.com/happycyhe/Happyfamily-Lotto/internal/domain"
)

func newDrawCmd() *cobra.Command {
	var (
		exclude []int
		comment bool
	)

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw five sets of six numbers, skipping the excluded ones",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var annotate app.Commenter
			if comment {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				annotate = newCommentService(cfg, newLogger(cmd.ErrOrStderr(), cfg))
			}
			return runDraw(cmd, exclude, stdRNG{}, annotate)
		},
	}

	cmd.Flags().IntSliceVarP(&exclude, "exclude", "x", nil, "numbers to leave out, e.g. -x 3,17,29")
	cmd.Flags().BoolVar(&comment, "comment", false, "ask the LLM for a lucky comment on the first set")
	return cmd
}

// runDraw prints the batch first and only then waits for the comment, so
// the numbers are visible even when the LLM is slow.
func runDraw(cmd *cobra.Command, exclude []int, rng domain.RNG, commenter app.Commenter) error {
	out := cmd.OutOrStdout()

	excluded, err := domain.NewExclusionSet(exclude...)
	if err != nil {
		return err
	}

	batch, err := domain.Draw(excluded, rng, uuid.NewString, time.Now())
	if errors.Is(err, domain.ErrInsufficientPool) {
		fmt.Fprintln(cmd.ErrOrStderr(), app.InsufficientPoolNotice)
		return err
	}
	if err != nil {
		return err
	}

	if err := terminal.RenderBatch(out, batch, excluded.Numbers()); err != nil {
		return err
	}
	if commenter == nil {
		return nil
	}

	fmt.Fprintf(out, "\n%s\n", app.PendingCommentNotice)
	text := commenter.Annotate(cmd.Context(), excluded.Numbers(), batch.Lead().Numbers)
	_, err = io.WriteString(out, "AI의 행운 코멘트: "+text+"\n")
	return err
}
