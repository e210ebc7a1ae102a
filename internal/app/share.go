package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/happycyhe/Happyfamily-Lotto/internal/ports"
)

const (
	ShareTitle   = "HappyFamily 숫자 요청"
	ShareText    = "이번 주 로또, 네가 생각하는 '절대 안 나올 것 같은 숫자' 하나만 알려줘! HappyFamily 앱에서 그 숫자 빼고 돌려볼게!"
	CopiedNotice = "메시지가 복사되었습니다! 친구에게 보내보세요."
)

type ShareOutcome string

const (
	ShareOutcomeShared ShareOutcome = "shared"
	ShareOutcomeCopied ShareOutcome = "copied"
)

// ShareMessage is the fixed request sent to friends and family.
func ShareMessage() ports.ShareMessage {
	return ports.ShareMessage{Title: ShareTitle, Text: ShareText}
}

// ShareHelper asks a contact for a number to exclude. It prefers the native
// share surface and falls back to the clipboard.
type ShareHelper struct {
	native    ports.Sharer
	clipboard ports.Sharer
	logger    *slog.Logger
}

// NewShareHelper accepts a nil native sharer for platforms without one.
func NewShareHelper(native, clipboard ports.Sharer, logger *slog.Logger) *ShareHelper {
	return &ShareHelper{native: native, clipboard: clipboard, logger: logger}
}

func (h *ShareHelper) RequestExclusionInput(ctx context.Context) (ShareOutcome, error) {
	msg := ShareMessage()

	if h.native != nil {
		err := h.native.Share(ctx, msg)
		if err == nil {
			return ShareOutcomeShared, nil
		}
		if !errors.Is(err, ports.ErrShareUnavailable) {
			return "", fmt.Errorf("native share: %w", err)
		}
		h.logger.DebugContext(ctx, "native share unavailable, copying to clipboard")
	}

	if err := h.clipboard.Share(ctx, msg); err != nil {
		return "", fmt.Errorf("clipboard: %w", err)
	}
	return ShareOutcomeCopied, nil
}
