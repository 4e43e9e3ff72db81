package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tododomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/todo/domain"
)

func TestRenderer_IndexEscapesItemText(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusOK, PageIndex, IndexPage{
		Username: "alice",
		Items: []tododomain.Item{
			{ID: 5, Text: "<script>alert(1)</script>", CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		},
		ChatID:     "123",
		Subscribed: true,
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "alice")
	assert.Contains(t, body, `data-id="5"`)
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, body, "2025-01-02 03:04:05")
	assert.Contains(t, body, "<code>123</code>")
	assert.Contains(t, body, "/static/app.js")
}

func TestRenderer_LoginWithError(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusUnauthorized, PageLogin, AuthPage{Error: "Invalid username or password", Username: "alice"}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username or password")
	assert.Contains(t, rec.Body.String(), `value="alice"`)
	assert.NotContains(t, rec.Body.String(), "app.js")
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	assert.Error(t, r.Render(rec, http.StatusOK, "missing.html", nil))
	assert.Equal(t, 0, rec.Body.Len())
}

func TestStaticHandler(t *testing.T) {
	srv := httptest.NewServer(StaticHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/static/style.css")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), ".container")

	missing, err := http.Get(srv.URL + "/static/nope.js")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}
