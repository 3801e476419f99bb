package catalogs

import (
	"strings"

	"github.com/agentstation/gallery/pkg/constants"
)

// ImageRef is an opaque reference to a thumbnail image, usually a URL path.
type ImageRef string

// Thumbnails maps entry names to thumbnail images. A missing name is the
// normal case for entries without artwork. The map is read-only once built
// and may be shared by concurrent renders.
type Thumbnails map[string]ImageRef

// Lookup returns the image for name. A nil Thumbnails has no images.
func (t Thumbnails) Lookup(name string) (ImageRef, bool) {
	ref, ok := t[name]
	return ref, ok && ref != ""
}

// AssetKey returns the asset-pipeline key for an entry name, "./{name}.jpg".
func AssetKey(name string) string {
	return "./" + name + constants.ThumbnailExt
}

// ThumbnailsFromAssetKeys converts a lookup keyed by asset path
// ("./{name}.jpg") into one keyed by entry name. Keys that do not follow
// the pattern are skipped.
func ThumbnailsFromAssetKeys(assets map[string]ImageRef) Thumbnails {
	out := make(Thumbnails, len(assets))
	for key, ref := range assets {
		if !strings.HasPrefix(key, "./") || !strings.HasSuffix(key, constants.ThumbnailExt) {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(key, "./"), constants.ThumbnailExt)
		if name == "" {
			continue
		}
		out[name] = ref
	}
	return out
}
