// Package site generates the static gallery: an index page, one grid
// page per collection, one detail page per entry, and a copy of the
// thumbnail images, laid out so any static file host serves the same
// URLs as `gallery serve`.
package site

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/agentstation/gallery"
	"github.com/agentstation/gallery/pkg/constants"
	"github.com/agentstation/gallery/pkg/errors"
	"github.com/agentstation/gallery/pkg/logging"
)

const indexFile = "index.html"

// Config holds site generation settings.
type Config struct {
	OutputDir    string // Destination directory (default: ./public)
	BasePath     string // URL prefix the site is hosted under, e.g. /gallery
	ThumbnailsFS fs.FS  // Source images laid out as <kind>/<file>; nil skips the copy
	SkipDetails  bool   // Do not write per-entry detail pages
}

// Site writes a static gallery.
type Site struct {
	config Config
}

// Result lists what Generate wrote, relative to the output directory.
type Result struct {
	Pages      []string `json:"pages" yaml:"pages"`
	Thumbnails int      `json:"thumbnails" yaml:"thumbnails"`
	Skipped    []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// New creates a new Site instance.
func New(config Config) *Site {
	if config.OutputDir == "" {
		config.OutputDir = constants.DefaultOutputDir
	}
	config.BasePath = strings.TrimSuffix(config.BasePath, "/")
	return &Site{config: config}
}

// Generate writes every page for snap and copies the thumbnails.
func (s *Site) Generate(ctx context.Context, snap *gallery.Snapshot) (*Result, error) {
	logger := logging.FromContext(ctx)
	logger.Info().
		Str("output_dir", s.config.OutputDir).
		Str("base_path", s.config.BasePath).
		Msg("Generating static site")

	result := &Result{}

	if err := s.writePage(result, indexFile, func(w io.Writer) error {
		return WriteIndex(w, snap, s.config.BasePath)
	}); err != nil {
		return nil, err
	}

	for _, kind := range snap.Kinds() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		gridFile := path.Join(strings.TrimPrefix(kind.GridPath(), "/"), indexFile)
		if err := s.writePage(result, gridFile, func(w io.Writer) error {
			return WriteGrid(w, snap, kind, s.config.BasePath)
		}); err != nil {
			return nil, fmt.Errorf("writing %s grid: %w", kind, err)
		}

		if s.config.SkipDetails {
			continue
		}
		for _, entry := range snap.Collection(kind).Entries() {
			if !safeSegment(entry.Name) {
				logger.Warn().
					Str("collection", kind.String()).
					Str("entry", entry.Name).
					Msg("Entry name cannot be a directory, detail page skipped")
				result.Skipped = append(result.Skipped, kind.String()+"/"+entry.Name)
				continue
			}
			name := entry.Name
			detailFile := path.Join(kind.String(), name, indexFile)
			if err := s.writePage(result, detailFile, func(w io.Writer) error {
				return WriteDetail(w, snap, kind, name, s.config.BasePath)
			}); err != nil {
				return nil, fmt.Errorf("writing %s %q detail: %w", kind, name, err)
			}
		}
	}

	if s.config.ThumbnailsFS != nil {
		n, err := s.copyThumbnails()
		if err != nil {
			return nil, err
		}
		result.Thumbnails = n
	}

	logger.Info().
		Int("pages", len(result.Pages)).
		Int("thumbnails", result.Thumbnails).
		Msg("Site generated successfully")
	return result, nil
}

// writePage renders into memory first so a failed render never leaves a
// truncated file behind.
func (s *Site) writePage(result *Result, rel string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	if err := s.writeFile(rel, buf.Bytes()); err != nil {
		return err
	}
	result.Pages = append(result.Pages, rel)
	return nil
}

func (s *Site) writeFile(rel string, data []byte) error {
	dest := filepath.Join(s.config.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", dest, err)
	}
	return nil
}

// copyThumbnails mirrors every image under the thumbnail URL prefix.
func (s *Site) copyThumbnails() (int, error) {
	root := strings.TrimPrefix(constants.DefaultThumbnailURLPrefix, "/")
	count := 0
	err := fs.WalkDir(s.config.ThumbnailsFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == "." {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		data, err := fs.ReadFile(s.config.ThumbnailsFS, p)
		if err != nil {
			return errors.WrapIO("read", p, err)
		}
		if err := s.writeFile(path.Join(root, p), data); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("copying thumbnails: %w", err)
	}
	return count, nil
}

func safeSegment(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

