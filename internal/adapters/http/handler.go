package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/happycyhe/Happyfamily-Lotto/internal/app"
	"github.com/happycyhe/Happyfamily-Lotto/internal/domain"
)

type Handler struct {
	svc *app.LottoService
}

func NewHandler(svc *app.LottoService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/healthz", h.Healthz)

	v1 := e.Group("/v1")
	v1.GET("/session", h.GetSession)
	v1.POST("/session/start", h.Start)
	v1.POST("/session/edit", h.EditExclusions)
	v1.POST("/exclusions/:n/toggle", h.Toggle)
	v1.POST("/draw", h.Draw)
	v1.POST("/reset", h.Reset)
	v1.GET("/share", h.Share)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GetSession(c echo.Context) error {
	sess, err := h.svc.Session(c.Request().Context(), sessionID(c))
	return h.respond(c, sess, err)
}

func (h *Handler) Start(c echo.Context) error {
	sess, err := h.svc.Start(c.Request().Context(), sessionID(c))
	return h.respond(c, sess, err)
}

func (h *Handler) EditExclusions(c echo.Context) error {
	sess, err := h.svc.EditExclusions(c.Request().Context(), sessionID(c))
	return h.respond(c, sess, err)
}

func (h *Handler) Toggle(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || !domain.InDomain(n) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrNumberOutOfRange.Error()})
	}

	sess, err := h.svc.Toggle(c.Request().Context(), sessionID(c), n)
	return h.respond(c, sess, err)
}

func (h *Handler) Draw(c echo.Context) error {
	sess, err := h.svc.Draw(c.Request().Context(), sessionID(c))
	return h.respond(c, sess, err)
}

func (h *Handler) Reset(c echo.Context) error {
	sess, err := h.svc.Reset(c.Request().Context(), sessionID(c))
	return h.respond(c, sess, err)
}

func (h *Handler) Share(c echo.Context) error {
	return c.JSON(http.StatusOK, shareResponse())
}

func (h *Handler) respond(c echo.Context, sess domain.Session, err error) error {
	if err != nil {
		return mapError(c, err)
	}
	requestID, _ := c.Get("request_id").(string)
	return c.JSON(http.StatusOK, toSessionResponse(sess, requestID))
}

func sessionID(c echo.Context) string {
	id, _ := c.Get("session_id").(string)
	return id
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrInsufficientPool):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: app.InsufficientPoolNotice})
	case errors.Is(err, domain.ErrNumberOutOfRange):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrNumberOutOfRange.Error()})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
