package catalogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThumbnailsLookup(t *testing.T) {
	var none Thumbnails
	_, ok := none.Lookup("stardist")
	assert.False(t, ok, "nil lookup has no images")

	thumbs := Thumbnails{"stardist": "/thumbnails/model/stardist.jpg", "blank": ""}
	ref, ok := thumbs.Lookup("stardist")
	assert.True(t, ok)
	assert.Equal(t, ImageRef("/thumbnails/model/stardist.jpg"), ref)

	_, ok = thumbs.Lookup("blank")
	assert.False(t, ok, "empty reference counts as absent")
}

func TestThumbnailsFromAssetKeys(t *testing.T) {
	assert.Equal(t, "./stardist.jpg", AssetKey("stardist"))

	thumbs := ThumbnailsFromAssetKeys(map[string]ImageRef{
		"./stardist.jpg":  "static/media/stardist.1a2b.jpg",
		"./two words.jpg": "static/media/two-words.jpg",
		"./logo.png":      "static/media/logo.png",
		"cellpose.jpg":    "static/media/cellpose.jpg",
		"./.jpg":          "static/media/empty.jpg",
	})

	assert.Equal(t, Thumbnails{
		"stardist":  "static/media/stardist.1a2b.jpg",
		"two words": "static/media/two-words.jpg",
	}, thumbs)
}
