// Package terminal renders draws for the CLI.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/happycyhe/Happyfamily-Lotto/internal/domain"
)

var palette = map[domain.BallColor]lipgloss.Color{
	domain.BallYellow: lipgloss.Color("#FACC15"),
	domain.BallBlue:   lipgloss.Color("#3B82F6"),
	domain.BallRed:    lipgloss.Color("#EF4444"),
	domain.BallGray:   lipgloss.Color("#64748B"),
	domain.BallGreen:  lipgloss.Color("#22C55E"),
}

var (
	ballStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1)
	leadStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6366F1")).Padding(0, 1)
	commentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3730A3")).Italic(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))
)

// Ball renders a single number on its colour band.
func Ball(n int) string {
	return ballStyle.Background(palette[domain.ColorOf(n)]).Render(fmt.Sprintf("%2d", n))
}

// Row renders a set of numbers separated by spaces.
func Row(numbers []int) string {
	balls := make([]string, len(numbers))
	for i, n := range numbers {
		balls[i] = Ball(n)
	}
	return strings.Join(balls, " ")
}

// RenderBatch writes the batch, highlighting the lead set and its comment.
func RenderBatch(w io.Writer, b domain.Batch, excluded []int) error {
	var out strings.Builder

	fmt.Fprintf(&out, "%s\n\n", labelStyle.Render(fmt.Sprintf("제외된 숫자 %d개를 피해서 생성되었습니다.", len(excluded))))
	for i, set := range b.Sets {
		if i == 0 {
			lead := Row(set.Numbers)
			if set.Comment != "" {
				lead += "\n\n" + commentStyle.Render(set.Comment)
			}
			out.WriteString(leadStyle.Render(lead))
			out.WriteString("\n")
			continue
		}
		fmt.Fprintf(&out, "  %s\n", Row(set.Numbers))
	}

	_, err := io.WriteString(w, out.String())
	return err
}
