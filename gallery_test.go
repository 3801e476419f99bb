package gallery

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/errors"
)

const modelsV1 = `{"entries": [
  {"name": "stardist", "tasks": ["segmentation"], "url": "https://a.org", "pkg_url": "a", "format": "image", "tags": []},
  {"name": "cellpose", "tasks": ["segmentation"], "url": "https://b.org", "pkg_url": "b", "format": "image", "tags": []},
  {"name": "bad", "url": "https://c.org", "format": "image", "tags": []}
]}`

const modelsV2 = `{"entries": [
  {"name": "stardist", "tasks": ["segmentation", "object-detection"], "url": "https://a.org", "pkg_url": "a", "format": "image", "tags": []},
  {"name": "napari-model", "tasks": [], "url": "https://d.org", "pkg_url": "d", "format": "image", "tags": []}
]}`

func newTestGallery(t *testing.T, fsys fstest.MapFS, opts ...Option) Client {
	t.Helper()
	opts = append([]Option{WithDataFS(fsys, "data"), WithThumbnailsFS(fsys)}, opts...)
	g, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.AutoReloadOff() })
	return g
}

func TestNewLoadsSnapshot(t *testing.T) {
	fsys := fstest.MapFS{
		"data/models.json":      {Data: []byte(modelsV1)},
		"model/stardist.jpg":    {Data: []byte("jpg")},
		"project/unrelated.jpg": {Data: []byte("jpg")},
	}
	g := newTestGallery(t, fsys)

	snap := g.Snapshot()
	assert.Equal(t, []catalogs.Kind{catalogs.KindModel}, snap.Kinds())
	assert.True(t, snap.Has(catalogs.KindModel))
	assert.False(t, snap.Has(catalogs.KindProject))
	assert.Equal(t, []string{"stardist", "cellpose"}, snap.Collection(catalogs.KindModel).Names())
	assert.Equal(t, 0, snap.Collection(catalogs.KindProject).Len())
	assert.Equal(t, "data/models.json", snap.Source(catalogs.KindModel))
	require.Len(t, snap.Rejected(catalogs.KindModel), 1)
	assert.Equal(t, 2, snap.Rejected(catalogs.KindModel)[0].Index)
	assert.False(t, snap.LoadedAt().IsZero())

	ref, ok := snap.Thumbnails(catalogs.KindModel).Lookup("stardist")
	require.True(t, ok)
	assert.Equal(t, catalogs.ImageRef("/thumbnails/model/stardist.jpg"), ref)
}

func TestSnapshotLayout(t *testing.T) {
	g := newTestGallery(t, fstest.MapFS{"data/models.json": {Data: []byte(modelsV1)}})

	layout, err := g.Snapshot().Layout(catalogs.KindModel, "/gallery")
	require.NoError(t, err)
	assert.Equal(t, []string{"stardist", "cellpose"}, layout.Keys())
	assert.Equal(t, "/gallery/model/stardist", layout.Cells[0].Href)
}

func TestNewUsesEmbeddedSampleData(t *testing.T) {
	g, err := New()
	require.NoError(t, err)
	assert.Len(t, g.Snapshot().Kinds(), 3)
}

func TestNewFailsOnBadData(t *testing.T) {
	_, err := New(WithDataFS(fstest.MapFS{"models.json": {Data: []byte("{")}}, "."))
	require.Error(t, err)
	var perr *errors.ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestOptionsValidation(t *testing.T) {
	_, err := New(WithDataDir("/definitely/not/here"))
	require.Error(t, err)

	_, err = New(WithAutoReloadInterval(0))
	require.Error(t, err)
}

func TestReloadFiresHooks(t *testing.T) {
	fsys := fstest.MapFS{"data/models.json": {Data: []byte(modelsV1)}}
	g := newTestGallery(t, fsys)

	var added, updated, removed []string
	var reloads int
	g.OnEntryAdded(func(_ catalogs.Kind, e catalogs.Entry) { added = append(added, e.Name) })
	g.OnEntryUpdated(func(_ catalogs.Kind, old, e catalogs.Entry) {
		assert.Len(t, old.Tasks, 1)
		updated = append(updated, e.Name)
	})
	g.OnEntryRemoved(func(_ catalogs.Kind, e catalogs.Entry) { removed = append(removed, e.Name) })
	g.OnReloaded(func(s *Snapshot) {
		reloads++
		assert.Equal(t, 2, s.Collection(catalogs.KindModel).Len())
	})

	first := g.Snapshot()
	fsys["data/models.json"] = &fstest.MapFile{Data: []byte(modelsV2)}
	require.NoError(t, g.Reload(context.Background()))

	assert.Equal(t, []string{"napari-model"}, added)
	assert.Equal(t, []string{"stardist"}, updated)
	assert.Equal(t, []string{"cellpose"}, removed)
	assert.Equal(t, 1, reloads)

	assert.Equal(t, []string{"stardist", "cellpose"}, first.Collection(catalogs.KindModel).Names(),
		"earlier snapshots are not mutated")
	assert.Empty(t, g.Snapshot().Rejected(catalogs.KindModel))
}

func TestReloadKeepsSnapshotOnError(t *testing.T) {
	fsys := fstest.MapFS{"data/models.json": {Data: []byte(modelsV1)}}
	g := newTestGallery(t, fsys)
	before := g.Snapshot()

	fsys["data/models.json"] = &fstest.MapFile{Data: []byte("{")}
	require.Error(t, g.Reload(context.Background()))
	assert.Same(t, before, g.Snapshot())
}

func TestReloadHonorsCanceledContext(t *testing.T) {
	g := newTestGallery(t, fstest.MapFS{"data/models.json": {Data: []byte(modelsV1)}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, g.Reload(ctx), context.Canceled)
}

func TestAutoReload(t *testing.T) {
	fsys := fstest.MapFS{"data/models.json": {Data: []byte(modelsV1)}}
	g := newTestGallery(t, fsys, WithAutoReloadInterval(10*time.Millisecond))

	reloaded := make(chan struct{}, 1)
	g.OnReloaded(func(*Snapshot) {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})

	require.NoError(t, g.AutoReloadOn())
	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("auto-reload did not run")
	}

	require.NoError(t, g.AutoReloadOff())
	require.NoError(t, g.AutoReloadOff(), "stopping twice is fine")
}

func TestSnapshotSummary(t *testing.T) {
	g := newTestGallery(t, fstest.MapFS{"data/models.json": {Data: []byte(modelsV1)}})

	sum := g.Snapshot().Summary()
	assert.Equal(t, map[string]CollectionSummary{
		"models": {Entries: 2, Rejected: 1},
	}, sum.Collections)
	assert.Equal(t, g.Snapshot().LoadedAt(), sum.LoadedAt)
}
