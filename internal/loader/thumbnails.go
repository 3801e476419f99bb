package loader

import (
	"io/fs"
	"net/url"
	"strings"

	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/errors"
)

// ScanThumbnails builds the thumbnail lookup for a directory of images
// named after their entries ("<name>.jpg"). Each reference is urlPrefix
// joined with the escaped file name. A missing directory yields an empty
// lookup; subdirectories are not descended.
func ScanThumbnails(fsys fs.FS, dir, urlPrefix string) (catalogs.Thumbnails, error) {
	files, err := fs.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return catalogs.Thumbnails{}, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}

	prefix := strings.TrimSuffix(urlPrefix, "/")
	assets := make(map[string]catalogs.ImageRef, len(files))
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		assets["./"+f.Name()] = catalogs.ImageRef(prefix + "/" + url.PathEscape(f.Name()))
	}
	return catalogs.ThumbnailsFromAssetKeys(assets), nil
}
