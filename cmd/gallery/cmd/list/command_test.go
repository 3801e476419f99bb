package list

import (
	"bytes"
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gallery"
	"github.com/agentstation/gallery/internal/cmd/application"
)

const models = `{"entries": [
  {"name": "stardist", "tasks": ["segmentation"], "url": "https://a.org", "pkg_url": "a", "format": "image", "tags": []},
  {"name": "cellpose", "tasks": [], "url": "https://b.org", "pkg_url": "b", "format": "image", "tags": []},
  {"name": "broken", "url": "https://c.org", "format": "image", "tags": []}
]}`

func run(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	g, err := gallery.New(gallery.WithDataFS(fstest.MapFS{"data/models.json": {Data: []byte(models)}}, "data"))
	require.NoError(t, err)

	app := &application.Mock{
		GalleryFunc:      func() (gallery.Client, error) { return g, nil },
		OutputFormatFunc: func() string { return format },
	}
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), err
}

func TestListSummary(t *testing.T) {
	out, err := run(t, "json")
	require.NoError(t, err)

	var sum gallery.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, gallery.CollectionSummary{Entries: 2, Rejected: 1}, sum.Collections["models"])
}

func TestListEntries(t *testing.T) {
	out, err := run(t, "json", "models")
	require.NoError(t, err)

	var entries []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "stardist", entries[0].Name)
	assert.Equal(t, "cellpose", entries[1].Name)
}

func TestListEntriesTable(t *testing.T) {
	out, err := run(t, "wide", "model")
	require.NoError(t, err)
	assert.Contains(t, out, "stardist")
	assert.Contains(t, out, "https://b.org")
}

func TestListRejected(t *testing.T) {
	out, err := run(t, "json", "models", "--rejected")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "broken"`)
	assert.Contains(t, out, `"MissingField"`)

	out, err = run(t, "json", "projects", "--rejected")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestListUnknownCollection(t *testing.T) {
	_, err := run(t, "json", "widgets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown collection")
}
