package render

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func newTestRenderer(t *testing.T) *Renderer {
	dir := t.TempDir()
	writeTemplate(t, dir, "base.html", `<html><body>{{template "content" .}}</body></html>`)
	writeTemplate(t, dir, "greeting.html", `{{define "content"}}<p>Hello {{.Name}}</p>{{end}}`)
	return MustLoad(dir)
}

func TestRender(t *testing.T) {
	renderer := newTestRenderer(t)

	rr := httptest.NewRecorder()
	renderer.Render(rr, "greeting.html", struct{ Name string }{Name: "Ada"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<p>Hello Ada</p>")
	assert.Contains(t, rr.Body.String(), "<html>")
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
}

func TestRenderEscapesInput(t *testing.T) {
	renderer := newTestRenderer(t)

	rr := httptest.NewRecorder()
	renderer.Render(rr, "greeting.html", struct{ Name string }{Name: "<script>alert(1)</script>"})

	assert.NotContains(t, rr.Body.String(), "<script>alert(1)</script>")
}

func TestRenderSerializesDataBlocks(t *testing.T) {
	// Slices placed in script data blocks must come out as plain JSON a
	// consumer can parse once.
	dir := t.TempDir()
	writeTemplate(t, dir, "base.html", `{{template "content" .}}`)
	writeTemplate(t, dir, "data.html", `{{define "content"}}<script id="items" type="application/json">{{.Items}}</script>{{end}}`)
	renderer := MustLoad(dir)

	type item struct {
		Name       string
		BloodGroup string
	}
	items := []item{{Name: "Bob", BloodGroup: "O+"}, {Name: "Eve", BloodGroup: "AB-"}}

	rr := httptest.NewRecorder()
	renderer.Render(rr, "data.html", struct{ Items []item }{Items: items})

	body := rr.Body.String()
	start := strings.Index(body, ">") + 1
	end := strings.LastIndex(body, "</script>")
	require.Greater(t, end, start)

	var decoded []item
	require.NoError(t, json.Unmarshal([]byte(body[start:end]), &decoded))
	assert.Equal(t, items, decoded)
}

func TestRenderUnknownTemplate(t *testing.T) {
	renderer := newTestRenderer(t)

	rr := httptest.NewRecorder()
	renderer.Render(rr, "missing.html", nil)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestMustLoadMissingDir(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for missing templates dir")
		}
	}()
	_ = MustLoad(filepath.Join(t.TempDir(), "nope"))
}
