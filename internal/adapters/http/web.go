package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/happycyhe/Happyfamily-Lotto/internal/app"
	"github.com/happycyhe/Happyfamily-Lotto/internal/domain"
)

//go:embed web/index.html
var webFS embed.FS

var indexTmpl = template.Must(template.ParseFS(webFS, "web/index.html"))

type indexData struct {
	MaxNumber        int
	InsufficientPool string
	PendingComment   string
	CommentFallback  string
	Share            ShareResponse
}

func (h *Handler) Index(c echo.Context) error {
	var buf bytes.Buffer
	err := indexTmpl.Execute(&buf, indexData{
		MaxNumber:        domain.MaxNumber,
		InsufficientPool: app.InsufficientPoolNotice,
		PendingComment:   app.PendingCommentNotice,
		CommentFallback:  app.FallbackError,
		Share:            shareResponse(),
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
