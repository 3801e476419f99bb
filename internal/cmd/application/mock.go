// Package application provides test doubles for cmd/application.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/gallery"
	"github.com/agentstation/gallery/cmd/application"
)

var _ application.Application = (*Mock)(nil)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	g, _ := gallery.New(gallery.WithDataFS(fsys, "."))
//	mock := &application.Mock{
//	    GalleryFunc: func() (gallery.Client, error) { return g, nil },
//	}
//	cmd := list.NewCommand(mock)
type Mock struct {
	GalleryFunc       func() (gallery.Client, error)
	LoggerFunc        func() *zerolog.Logger
	OutputFormatFunc  func() string
	BasePathFunc      func() string
	ThumbnailsDirFunc func() string
	OutputDirFunc     func() string
	VersionFunc       func() string
}

// Gallery returns the gallery from the mock function or the embedded sample.
func (m *Mock) Gallery() (gallery.Client, error) {
	if m.GalleryFunc != nil {
		return m.GalleryFunc()
	}
	return gallery.New()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// BasePath returns the link prefix using the mock function or "".
func (m *Mock) BasePath() string {
	if m.BasePathFunc != nil {
		return m.BasePathFunc()
	}
	return ""
}

// ThumbnailsDir returns the thumbnails directory using the mock function or "".
func (m *Mock) ThumbnailsDir() string {
	if m.ThumbnailsDirFunc != nil {
		return m.ThumbnailsDirFunc()
	}
	return ""
}

// OutputDir returns the output directory using the mock function or "".
func (m *Mock) OutputDir() string {
	if m.OutputDirFunc != nil {
		return m.OutputDirFunc()
	}
	return ""
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
