package http

import (
	"time"

	"github.com/happycyhe/Happyfamily-Lotto/internal/app"
	"github.com/happycyhe/Happyfamily-Lotto/internal/domain"
)

// SessionResponse is the JSON shape of the whole application state.
type SessionResponse struct {
	Step           domain.Step    `json:"step"`
	Excluded       []int          `json:"excluded"`
	PoolSize       int            `json:"pool_size"`
	Batch          *BatchResponse `json:"batch,omitempty"`
	CommentPending bool           `json:"comment_pending"`
	Meta           MetaResp       `json:"meta"`
}

type BatchResponse struct {
	ID        string        `json:"id"`
	Sets      []SetResponse `json:"sets"`
	CreatedAt time.Time     `json:"created_at"`
}

type SetResponse struct {
	ID        string         `json:"id"`
	Numbers   []BallResponse `json:"numbers"`
	CreatedAt time.Time      `json:"created_at"`
	Comment   string         `json:"comment,omitempty"`
}

type BallResponse struct {
	Number int              `json:"number"`
	Color  domain.BallColor `json:"color"`
}

type ShareResponse struct {
	Title        string `json:"title"`
	Text         string `json:"text"`
	CopiedNotice string `json:"copied_notice"`
}

type MetaResp struct {
	RequestID string `json:"request_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toSessionResponse(s domain.Session, requestID string) SessionResponse {
	resp := SessionResponse{
		Step:           s.Step,
		Excluded:       s.Excluded.Numbers(),
		PoolSize:       s.Excluded.PoolSize(),
		CommentPending: s.CommentPending,
		Meta:           MetaResp{RequestID: requestID},
	}
	if resp.Excluded == nil {
		resp.Excluded = []int{}
	}
	if s.Batch != nil {
		b := toBatchResponse(*s.Batch)
		resp.Batch = &b
	}
	return resp
}

func toBatchResponse(b domain.Batch) BatchResponse {
	sets := make([]SetResponse, len(b.Sets))
	for i, set := range b.Sets {
		balls := make([]BallResponse, len(set.Numbers))
		for j, n := range set.Numbers {
			balls[j] = BallResponse{Number: n, Color: domain.ColorOf(n)}
		}
		sets[i] = SetResponse{
			ID:        set.ID,
			Numbers:   balls,
			CreatedAt: set.CreatedAt,
			Comment:   set.Comment,
		}
	}
	return BatchResponse{ID: b.ID, Sets: sets, CreatedAt: b.CreatedAt}
}

func shareResponse() ShareResponse {
	msg := app.ShareMessage()
	return ShareResponse{Title: msg.Title, Text: msg.Text, CopiedNotice: app.CopiedNotice}
}
