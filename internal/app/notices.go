package app

// User-facing notices.
const (
	InsufficientPoolNotice = "제외할 숫자가 너무 많습니다! 최소 6개의 숫자는 남겨주세요."
	PendingCommentNotice   = "행운의 메시지를 분석하고 있습니다..."
)
