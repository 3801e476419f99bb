package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gallery"
	appmock "github.com/agentstation/gallery/internal/cmd/application"
	"github.com/agentstation/gallery/internal/server/events"
)

const modelsV1 = `{"entries": [
  {"name": "stardist", "description": "Segments nuclei", "tasks": ["segmentation"], "url": "https://a.org", "pkg_url": "a", "format": "image", "tags": []},
  {"name": "cellpose", "tasks": ["segmentation"], "url": "https://b.org", "pkg_url": "b", "format": "image", "tags": []},
  {"name": "a/b", "tasks": [], "url": "https://c.org", "pkg_url": "c", "format": "image", "tags": []},
  {"name": "broken", "url": "https://d.org", "format": "image", "tags": []}
]}`

const modelsV2 = `{"entries": [
  {"name": "stardist", "description": "Segments nuclei in 2D", "tasks": ["segmentation"], "url": "https://a.org", "pkg_url": "a", "format": "image", "tags": []},
  {"name": "napari", "tasks": [], "url": "https://n.org", "pkg_url": "n", "format": "image", "tags": []}
]}`

type testEnv struct {
	fsys   fstest.MapFS
	server *Server
	http   *httptest.Server
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RateLimit = 0
	cfg.ThumbnailsDir = ""
	return cfg
}

func newTestEnv(t *testing.T, cfg Config) *testEnv {
	t.Helper()
	fsys := fstest.MapFS{
		"data/models.json":   {Data: []byte(modelsV1)},
		"model/stardist.jpg": {Data: []byte("jpg")},
	}
	g, err := gallery.New(gallery.WithDataFS(fsys, "data"), gallery.WithThumbnailsFS(fsys))
	require.NoError(t, err)

	app := &appmock.Mock{GalleryFunc: func() (gallery.Client, error) { return g, nil }}
	srv, err := New(app, cfg)
	require.NoError(t, err)
	srv.Start()

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return &testEnv{fsys: fsys, server: srv, http: ts}
}

func (e *testEnv) do(t *testing.T, method, path, body string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, e.http.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}

func TestServerStartShutdown(t *testing.T) {
	app := &appmock.Mock{}
	srv, err := New(app, Config{})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1", srv.config.PathPrefix)

	// Shutdown before Start returns immediately.
	require.NoError(t, srv.Shutdown(context.Background()))

	srv2, err := New(app, Config{})
	require.NoError(t, err)
	srv2.Start()
	srv2.Start()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv2.Shutdown(ctx))
	assert.Equal(t, 0, srv2.Broker().SubscriberCount())
}

func TestHealthAndReady(t *testing.T) {
	env := newTestEnv(t, testConfig())

	for _, path := range []string{"/health", "/api/v1/health"} {
		resp, body := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, string(decode(t, body).Data), `"healthy"`)
	}

	resp, body := env.do(t, http.MethodGet, "/api/v1/ready", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(decode(t, body).Data), `"models"`)
}

func TestPages(t *testing.T) {
	env := newTestEnv(t, testConfig())

	resp, body := env.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), `href="/model-grid"`)

	resp, body = env.do(t, http.MethodGet, "/model-grid", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	require.NoError(t, err)
	links := doc.Find("a.gallery-link")
	require.Equal(t, 3, links.Length())
	assert.Equal(t, "stardist", links.Eq(0).AttrOr("data-key", ""))
	assert.Equal(t, "/thumbnails/model/stardist.jpg", links.Eq(0).Find("img").AttrOr("src", ""))
	assert.Equal(t, 1, links.Eq(1).Find("svg").Length())

	// Second request is served from the page cache.
	before := env.server.Cache().GetStats().Hits
	resp, _ = env.do(t, http.MethodGet, "/model-grid", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, before+1, env.server.Cache().GetStats().Hits)

	resp, body = env.do(t, http.MethodGet, "/project-grid", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `<div class="row row-cols-`)

	resp, body = env.do(t, http.MethodGet, "/model/stardist", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `data-key="stardist"`)

	resp, _ = env.do(t, http.MethodGet, "/model/a%2Fb", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/model/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/favicon.ico", "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestEntriesAPI(t *testing.T) {
	env := newTestEnv(t, testConfig())

	resp, body := env.do(t, http.MethodGet, "/api/v1/models", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Kind    string `json:"kind"`
		Count   int    `json:"count"`
		Entries []struct {
			Name string `json:"name"`
		} `json:"entries"`
		Rejected int `json:"rejected"`
	}
	require.NoError(t, json.Unmarshal(decode(t, body).Data, &list))
	assert.Equal(t, "model", list.Kind)
	assert.Equal(t, 3, list.Count)
	assert.Equal(t, 1, list.Rejected)
	assert.Equal(t, "stardist", list.Entries[0].Name)
	assert.Equal(t, "cellpose", list.Entries[1].Name)

	resp, body = env.do(t, http.MethodGet, "/api/v1/datasources", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(decode(t, body).Data), `"entries":[]`)

	resp, body = env.do(t, http.MethodGet, "/api/v1/models/stardist", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(decode(t, body).Data), `"name":"stardist"`)

	resp, _ = env.do(t, http.MethodGet, "/api/v1/models/a%2Fb", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.do(t, http.MethodGet, "/api/v1/models/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode(t, body).Error.Code)

	resp, _ = env.do(t, http.MethodGet, "/api/v1/widgets", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = env.do(t, http.MethodGet, "/api/v1/rejected/models", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := string(decode(t, body).Data)
	assert.Contains(t, data, `"name":"broken"`)
	assert.Contains(t, data, `"index":3`)
	assert.Contains(t, data, `"MissingField"`)
}

func TestSchemaEndpoints(t *testing.T) {
	env := newTestEnv(t, testConfig())

	resp, body := env.do(t, http.MethodGet, "/api/v1/schema", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/schema+json", resp.Header.Get("Content-Type"))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Contains(t, doc, "properties")

	resp, body = env.do(t, http.MethodGet, "/api/v1/schema.yaml", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "properties:")
}

func TestValidateEndpoint(t *testing.T) {
	env := newTestEnv(t, testConfig())

	valid := `{"name": "stardist", "tasks": ["segmentation"], "url": "https://a.org", "pkg_url": "a", "format": "image", "tags": []}`
	resp, body := env.do(t, http.MethodPost, "/api/v1/validate", valid, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := string(decode(t, body).Data)
	assert.Contains(t, data, `"pretrained":true`)
	assert.Contains(t, data, `"labels_required":true`)

	resp, body = env.do(t, http.MethodPost, "/api/v1/validate", `{"name": "x", "tasks": ["painting"], "color": 1}`, nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	env422 := decode(t, body)
	assert.Equal(t, "VALIDATION_FAILED", env422.Error.Code)
	details := string(env422.Error.Details)
	assert.Contains(t, details, `"UnknownField"`)
	assert.Contains(t, details, `"MissingField"`)
	assert.Contains(t, details, `"InvalidEnumValue"`)

	yamlBody := "name: stardist\ntasks: [segmentation]\nurl: https://a.org\npkg_url: a\nformat: image\ntags: []\n"
	resp, _ = env.do(t, http.MethodPost, "/api/v1/validate", yamlBody, map[string]string{"Content-Type": "application/x-yaml"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.do(t, http.MethodPost, "/api/v1/validate", `{"name":`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BAD_REQUEST", decode(t, body).Error.Code)

	resp, body = env.do(t, http.MethodPost, "/api/v1/validate?collection=models", modelsV1, nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(decode(t, body).Data), `"accepted":["stardist","cellpose","a/b"]`)

	resp, body = env.do(t, http.MethodPost, "/api/v1/validate?collection=models", modelsV2, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(decode(t, body).Data), `"rejected":[]`)

	resp, _ = env.do(t, http.MethodPost, "/api/v1/validate?collection=widgets", modelsV2, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/v1/validate", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "GET falls through to the collection route")
}

func TestReloadClearsCacheAndUpdatesEntries(t *testing.T) {
	env := newTestEnv(t, testConfig())

	resp, _ := env.do(t, http.MethodGet, "/model-grid", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Positive(t, env.server.Cache().ItemCount())

	env.fsys["data/models.json"] = &fstest.MapFile{Data: []byte(modelsV2)}
	resp, body := env.do(t, http.MethodPost, "/api/v1/reload", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(decode(t, body).Data), `"models":{"entries":2,"rejected":0}`)
	assert.Equal(t, 0, env.server.Cache().ItemCount())

	resp, body = env.do(t, http.MethodGet, "/model-grid", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `data-key="napari"`)
	assert.NotContains(t, string(body), `data-key="cellpose"`)

	resp, body = env.do(t, http.MethodGet, "/api/v1/stats", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := string(decode(t, body).Data)
	assert.Contains(t, stats, `"collections":{"models":2}`)
	assert.Contains(t, stats, `"subscribers":2`)
}

func TestReloadFailure(t *testing.T) {
	env := newTestEnv(t, testConfig())

	env.fsys["data/models.json"] = &fstest.MapFile{Data: []byte(`{"entries": 5}`)}
	resp, _ := env.do(t, http.MethodPost, "/api/v1/reload", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The previous snapshot keeps serving.
	resp, body := env.do(t, http.MethodGet, "/api/v1/models", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(decode(t, body).Data), `"count":3`)
}

func TestServerSentEvents(t *testing.T) {
	env := newTestEnv(t, testConfig())

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(env.http.URL + "/api/v1/updates/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "event: connected\n", line)

	env.fsys["data/models.json"] = &fstest.MapFile{Data: []byte(modelsV2)}
	reloadResp, _ := env.do(t, http.MethodPost, "/api/v1/reload", "", nil)
	require.Equal(t, http.StatusOK, reloadResp.StatusCode)

	var seen []string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if name, ok := strings.CutPrefix(line, "event: "); ok {
			name = strings.TrimSpace(name)
			seen = append(seen, name)
			if name == string(events.GalleryReloaded) {
				break
			}
		}
	}
	assert.Equal(t, []string{"entry.updated", "entry.added", "entry.removed", "entry.removed", "gallery.reloaded"}, seen)
}

func TestWebSocketUpdates(t *testing.T) {
	env := newTestEnv(t, testConfig())

	url := "ws" + strings.TrimPrefix(env.http.URL, "http") + "/api/v1/updates/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, string(events.ClientConnected), msg.Type)

	env.fsys["data/models.json"] = &fstest.MapFile{Data: []byte(modelsV2)}
	reloadResp, _ := env.do(t, http.MethodPost, "/api/v1/reload", "", nil)
	require.Equal(t, http.StatusOK, reloadResp.StatusCode)

	for {
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == string(events.GalleryReloaded) {
			break
		}
	}
	assert.Contains(t, string(msg.Data), `"models":{"entries":2,"rejected":0}`)
}

func TestAuthProtectsWrites(t *testing.T) {
	cfg := testConfig()
	cfg.AuthEnabled = true
	cfg.APIKey = "secret"
	env := newTestEnv(t, cfg)

	resp, _ := env.do(t, http.MethodGet, "/api/v1/models", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/api/v1/reload", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/api/v1/reload", "", map[string]string{"X-API-Key": "secret"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimitAndCORS(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 2
	cfg.CORSEnabled = true
	env := newTestEnv(t, cfg)

	for i := 0; i < 2; i++ {
		resp, _ := env.do(t, http.MethodGet, "/health", "", map[string]string{"Origin": "https://example.org"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	}
	resp, _ := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestThumbnailsStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "model"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model", "stardist.jpg"), []byte("jpeg-bytes"), 0o644))

	cfg := testConfig()
	cfg.ThumbnailsDir = dir
	env := newTestEnv(t, cfg)

	resp, body := env.do(t, http.MethodGet, "/thumbnails/model/stardist.jpg", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "jpeg-bytes", string(body))

	resp, _ = env.do(t, http.MethodGet, "/thumbnails/model/missing.jpg", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
