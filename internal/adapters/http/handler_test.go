package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/happycyhe/Happyfamily-Lotto/internal/adapters/http"
	"github.com/happycyhe/Happyfamily-Lotto/internal/adapters/store/memory"
	"github.com/happycyhe/Happyfamily-Lotto/internal/app"
)

const testSession = "0b6b2c4e-8f4a-4c53-9d7c-3f1d2e5a6b7c"

type fixedRNG struct{}

func (fixedRNG) Intn(n int) int { return n / 2 }

type instantCommenter struct{}

func (instantCommenter) Annotate(context.Context, []int, []int) string { return "행운 가득!" }

func newServer(t *testing.T) (*echo.Echo, *app.LottoService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := app.NewLottoService(memory.NewStore(time.Hour), instantCommenter{}, fixedRNG{}, logger)

	e := echo.New()
	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.SessionMiddleware(time.Hour))
	httpadapter.NewHandler(svc).Register(e)
	return e, svc
}

func do(t *testing.T, e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-Session-Id", testSession)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.SessionResponse {
	t.Helper()
	var resp httpadapter.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealthz(t *testing.T) {
	e, _ := newServer(t)

	rec := do(t, e, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestSessionCookieIssued(t *testing.T) {
	e, _ := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "hf_session", cookies[0].Name)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestToggleAndDraw(t *testing.T) {
	e, svc := newServer(t)

	rec := do(t, e, http.MethodPost, "/v1/session/start")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "exclusion", string(decodeSession(t, rec).Step))

	rec = do(t, e, http.MethodPost, "/v1/exclusions/7/toggle")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSession(t, rec)
	assert.Equal(t, []int{7}, resp.Excluded)
	assert.Equal(t, 44, resp.PoolSize)

	rec = do(t, e, http.MethodPost, "/v1/draw")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeSession(t, rec)
	require.NotNil(t, resp.Batch)
	assert.Len(t, resp.Batch.Sets, 5)
	assert.True(t, resp.CommentPending)
	for _, set := range resp.Batch.Sets {
		require.Len(t, set.Numbers, 6)
		for _, b := range set.Numbers {
			assert.NotEqual(t, 7, b.Number)
			assert.NotEmpty(t, b.Color)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))

	rec = do(t, e, http.MethodGet, "/v1/session")
	resp = decodeSession(t, rec)
	assert.False(t, resp.CommentPending)
	assert.Equal(t, "행운 가득!", resp.Batch.Sets[0].Comment)
	assert.Empty(t, resp.Batch.Sets[1].Comment)
}

func TestToggleInvalid(t *testing.T) {
	e, _ := newServer(t)

	for _, n := range []string{"0", "46", "abc"} {
		rec := do(t, e, http.MethodPost, "/v1/exclusions/"+n+"/toggle")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "n=%s", n)
	}
}

func TestDrawInsufficientPool(t *testing.T) {
	e, _ := newServer(t)

	for n := 1; n <= 40; n++ {
		rec := do(t, e, http.MethodPost, "/v1/exclusions/"+strconv.Itoa(n)+"/toggle")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(t, e, http.MethodPost, "/v1/draw")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var errResp httpadapter.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, app.InsufficientPoolNotice, errResp.Error)

	rec = do(t, e, http.MethodGet, "/v1/session")
	assert.Nil(t, decodeSession(t, rec).Batch)
}

func TestReset(t *testing.T) {
	e, svc := newServer(t)

	do(t, e, http.MethodPost, "/v1/exclusions/3/toggle")
	do(t, e, http.MethodPost, "/v1/draw")

	rec := do(t, e, http.MethodPost, "/v1/reset")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSession(t, rec)
	assert.Equal(t, "intro", string(resp.Step))
	assert.Empty(t, resp.Excluded)
	assert.Nil(t, resp.Batch)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))
}

func TestShare(t *testing.T) {
	e, _ := newServer(t)

	rec := do(t, e, http.MethodGet, "/v1/share")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp httpadapter.ShareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, app.ShareTitle, resp.Title)
	assert.Equal(t, app.ShareText, resp.Text)
	assert.Equal(t, app.CopiedNotice, resp.CopiedNotice)
}

func TestIndex(t *testing.T) {
	e, _ := newServer(t)

	rec := do(t, e, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, rec.Body.String(), "HappyFamily")
	assert.Contains(t, rec.Body.String(), "제외할 숫자를 선택해주세요")
	assert.Contains(t, rec.Body.String(), "const POLL_LIMIT = 30;")
	assert.NotContains(t, rec.Body.String(), "{{.CommentFallback}}")
}
