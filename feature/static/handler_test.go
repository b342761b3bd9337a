package static

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const secret = "root:x:0:0:top secret"

// setupSite lays out base/secret.txt next to the served base/site root.
func setupSite(t *testing.T, files map[string]string) string {
	t.Helper()
	base := t.TempDir()
	writeTree(t, base, map[string]string{"secret.txt": secret})
	root := filepath.Join(base, "site")
	require.NoError(t, os.MkdirAll(root, 0o755))
	writeTree(t, root, files)
	return root
}

func setupTestApp(t *testing.T, cfg Config, files map[string]string) *fiber.App {
	t.Helper()
	src, err := NewLocal(setupSite(t, files))
	require.NoError(t, err)

	if cfg.Index == "" {
		cfg.Index = "index.html"
	}
	app := fiber.New()
	require.NoError(t, NewFeature(src, cfg, zap.NewNop()).Load(app))
	return app
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return string(body)
}

var plannerSite = map[string]string{
	"index.html":       "<h1>Hi</h1>",
	"js/app.js":        "import './ui.js'",
	"js/ui.js":         "export function render() {}",
	"css/planner.css":  "body { margin: 0 }",
	"assets/blob":      "\x00\x01\x02raw",
	"notes/week 1.txt": "plan",
}

func TestHandleFile_Index(t *testing.T) {
	app := setupTestApp(t, Config{}, plannerSite)

	resp, err := app.Test(httptest.NewRequest("GET", "/index.html", nil))
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "text/html", resp.Header.Get("Content-Type"))
	assert.Equal(t, "11", resp.Header.Get("Content-Length"))
	assert.NotEmpty(t, resp.Header.Get("Last-Modified"))
	assert.Equal(t, "<h1>Hi</h1>", readBody(t, resp))
}

func TestHandleFile_Root(t *testing.T) {
	app := setupTestApp(t, Config{}, plannerSite)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "<h1>Hi</h1>", readBody(t, resp))
}

func TestHandleFile_MatchesDisk(t *testing.T) {
	app := setupTestApp(t, Config{}, plannerSite)

	for name, content := range plannerSite {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", (&url.URL{Path: "/" + name}).EscapedPath(), nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
			assert.Equal(t, strconv.Itoa(len(content)), resp.Header.Get("Content-Length"))
			assert.Equal(t, content, readBody(t, resp))
		})
	}
}

func TestHandleFile_ContentTypes(t *testing.T) {
	app := setupTestApp(t, Config{}, plannerSite)

	tests := []struct {
		path string
		want string
	}{
		{"/css/planner.css", "text/css"},
		{"/js/app.js", "javascript"},
		{"/assets/blob", "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Contains(t, resp.Header.Get("Content-Type"), tt.want)
		})
	}
}

func TestHandleFile_Head(t *testing.T) {
	app := setupTestApp(t, Config{}, plannerSite)

	for _, p := range []string{"/index.html", "/js/ui.js", "/"} {
		t.Run(p, func(t *testing.T) {
			getResp, err := app.Test(httptest.NewRequest("GET", p, nil))
			require.NoError(t, err)
			getBody := readBody(t, getResp)

			headResp, err := app.Test(httptest.NewRequest("HEAD", p, nil))
			require.NoError(t, err)

			assert.Equal(t, getResp.StatusCode, headResp.StatusCode)
			for _, h := range []string{"Content-Type", "Content-Length", "Last-Modified"} {
				assert.Equal(t, getResp.Header.Get(h), headResp.Header.Get(h), h)
			}
			assert.Equal(t, strconv.Itoa(len(getBody)), headResp.Header.Get("Content-Length"))
			assert.Empty(t, readBody(t, headResp))
		})
	}
}

func TestHandleFile_NotFound(t *testing.T) {
	app := setupTestApp(t, Config{}, plannerSite)

	for _, p := range []string{"/missing.html", "/js/missing.js", "/index.html/", "/js/"} {
		t.Run(p, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", p, nil))
			require.NoError(t, err)
			assert.Equal(t, 404, resp.StatusCode)
			assert.Equal(t, "Not Found", readBody(t, resp))
		})
	}
}

func TestHandleFile_Traversal(t *testing.T) {
	app := setupTestApp(t, Config{Listing: true}, plannerSite)

	paths := []string{
		"/../secret.txt",
		"/../../etc/passwd",
		"/js/../../secret.txt",
		"/%2e%2e/secret.txt",
		"/%2E%2E%2Fsecret.txt",
		"/..%5csecret.txt",
		"/js/%2e%2e/%2e%2e/secret.txt",
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RequestURI = p
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Contains(t, []int{400, 403}, resp.StatusCode)
			assert.NotContains(t, readBody(t, resp), "top secret")
		})
	}
}

func TestHandleFile_BadEscape(t *testing.T) {
	app := setupTestApp(t, Config{}, plannerSite)

	req := httptest.NewRequest("GET", "/", nil)
	req.RequestURI = "/%zz"
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleFile_Redirect(t *testing.T) {
	app := setupTestApp(t, Config{}, plannerSite)

	resp, err := app.Test(httptest.NewRequest("GET", "/js?v=2", nil))
	require.NoError(t, err)
	assert.Equal(t, 301, resp.StatusCode)
	assert.Equal(t, "/js/?v=2", resp.Header.Get("Location"))
}

func TestHandleFile_Listing(t *testing.T) {
	app := setupTestApp(t, Config{Listing: true}, plannerSite)

	resp, err := app.Test(httptest.NewRequest("GET", "/notes/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body := readBody(t, resp)
	assert.Contains(t, body, "Directory listing for /notes/")
	assert.Contains(t, body, `href="/notes/week%201.txt"`)
	assert.Contains(t, body, ">week 1.txt<")

	head, err := app.Test(httptest.NewRequest("HEAD", "/notes/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, head.StatusCode)
	assert.Equal(t, strconv.Itoa(len(body)), head.Header.Get("Content-Length"))
}

func TestHandleFile_ListingEscapesNames(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("angle brackets are not valid in windows file names")
	}
	app := setupTestApp(t, Config{Listing: true}, map[string]string{
		"odd/<script>.txt": "x",
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/odd/", nil))
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;.txt")
}

func TestHandleFile_MethodNotImplemented(t *testing.T) {
	app := setupTestApp(t, Config{}, plannerSite)

	for _, method := range []string{"POST", "PUT", "DELETE", "PATCH", "OPTIONS"} {
		t.Run(method, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(method, "/index.html", bytes.NewReader(nil)))
			require.NoError(t, err)
			assert.Equal(t, 501, resp.StatusCode)
			assert.Equal(t, "GET, HEAD", resp.Header.Get("Allow"))
		})
	}
}

type brokenReader struct{ sent bool }

func (r *brokenReader) Read(p []byte) (int, error) {
	if !r.sent {
		r.sent = true
		return copy(p, "partial"), nil
	}
	return 0, errors.New("disk read failed")
}

func (r *brokenReader) Close() error { return nil }

type brokenSource struct{}

func (brokenSource) Stat(context.Context, string) (Entry, error) {
	return Entry{Name: "big.bin", Size: 1 << 20}, nil
}

func (brokenSource) Open(context.Context, string) (io.ReadCloser, error) {
	return &brokenReader{}, nil
}

func (brokenSource) List(context.Context, string) ([]Entry, error) { return nil, nil }

func TestHandleFile_StreamErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	app := fiber.New()
	require.NoError(t, NewFeature(brokenSource{}, Config{Index: "index.html"}, zap.New(core)).Load(app))

	// The response is cut short, so the client side may report an error too.
	resp, err := app.Test(httptest.NewRequest("GET", "/big.bin", nil))
	if err == nil {
		_, _ = io.ReadAll(resp.Body)
	}

	aborted := logs.FilterMessage("File stream aborted").All()
	require.Len(t, aborted, 1)
	assert.Equal(t, "big.bin", aborted[0].ContextMap()["file"])
	assert.EqualValues(t, len("partial"), aborted[0].ContextMap()["bytes_sent"])
}

// lockedSource stats files fine but refuses to open them, like a mode 000 file.
type lockedSource struct{}

func (lockedSource) Stat(_ context.Context, name string) (Entry, error) {
	return Entry{Name: path.Base(name), Size: 42, ModTime: time.Now()}, nil
}

func (lockedSource) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, ErrForbidden
}

func (lockedSource) List(context.Context, string) ([]Entry, error) { return nil, nil }

func TestHandleFile_OpenForbidden(t *testing.T) {
	app := fiber.New()
	require.NoError(t, NewFeature(lockedSource{}, Config{Index: "index.html"}, zap.NewNop()).Load(app))

	for _, method := range []string{"GET", "HEAD"} {
		t.Run(method, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(method, "/locked.js", nil))
			require.NoError(t, err)

			assert.Equal(t, 403, resp.StatusCode)
			assert.Empty(t, resp.Header.Get("Last-Modified"))
			assert.Equal(t, fiber.MIMETextPlainCharsetUTF8, resp.Header.Get("Content-Type"))
		})
	}
}

func TestLoader(t *testing.T) {
	f := NewFeature(NewLocalFs(nil), Config{}, zap.NewNop())
	assert.Equal(t, "static", f.Name())
	assert.True(t, f.IsEnabled())
	assert.NoError(t, f.Load(fiber.New()))
}
