package gallery

import (
	"context"
	"path"

	"github.com/agentstation/utc"

	"github.com/agentstation/gallery/internal/loader"
	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ Reloader = (*client)(nil)

// Reloader re-reads the gallery data.
type Reloader interface {
	// Reload reads every collection and thumbnail directory again and
	// replaces the snapshot. On error the previous snapshot stays active.
	Reload(ctx context.Context) error
}

// Reload reads every collection and thumbnail directory again.
func (c *client) Reload(ctx context.Context) error {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	ctx = logging.WithOperation(ctx, "reload")
	logger := logging.FromContext(ctx)

	results, err := loader.New(c.options.dataFS, c.options.dataDir).LoadAll(ctx)
	if err != nil {
		return err
	}

	next := emptySnapshot()
	next.loadedAt = utc.Now()
	for kind, result := range results {
		next.collections[kind] = result.Collection
		next.rejected[kind] = result.Rejected
		next.sources[kind] = result.Source

		thumbs, err := c.scanThumbnails(kind)
		if err != nil {
			return err
		}
		next.thumbnails[kind] = thumbs
	}

	c.mu.Lock()
	prev := c.snapshot
	c.snapshot = next
	c.mu.Unlock()

	logger.Info().
		Int("collections", len(results)).
		Msg("Gallery data loaded")

	c.hooks.triggerReload(prev, next)
	return nil
}

func (c *client) scanThumbnails(kind catalogs.Kind) (catalogs.Thumbnails, error) {
	if c.options.thumbnailsFS == nil {
		return catalogs.Thumbnails{}, nil
	}
	return loader.ScanThumbnails(c.options.thumbnailsFS, kind.String(),
		path.Join(c.options.thumbnailURLPrefix, kind.String()))
}
