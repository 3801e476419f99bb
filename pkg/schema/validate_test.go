package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/errors"
)

// validRecord returns a minimal record that passes validation.
func validRecord() map[string]any {
	return map[string]any{
		"name":    "stardist",
		"url":     "https://github.com/stardist/stardist/blob/main/.scivision/model.yml",
		"pkg_url": "git+https://github.com/stardist/stardist.git@main",
		"format":  "image",
		"tags":    []any{"2D", "cells"},
	}
}

func decode(t *testing.T, doc string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(doc), &v))
	return v
}

func TestValidateAppliesDefaults(t *testing.T) {
	entry, errs := Validate(validRecord())
	require.Empty(t, errs)
	require.NotNil(t, entry)

	assert.Equal(t, "stardist", entry.Name)
	assert.Equal(t, "image", entry.Format)
	assert.Equal(t, []string{"2D", "cells"}, entry.Tags)
	assert.True(t, entry.Pretrained)
	assert.True(t, entry.LabelsRequired)
	assert.NotNil(t, entry.Tasks)
	assert.Empty(t, entry.Tasks)
	assert.NotNil(t, entry.Institution)
	assert.Empty(t, entry.Institution)
	assert.Nil(t, entry.ScivisionUsable)
	assert.False(t, entry.Usable())
}

func TestValidateFullRecord(t *testing.T) {
	raw := decode(t, `{
		"name": "cellpose",
		"description": "A generalist algorithm for cell segmentation",
		"tasks": ["segmentation", "classification", "segmentation"],
		"url": "https://github.com/MouseLand/cellpose",
		"pkg_url": "cellpose==2.0",
		"format": "image",
		"pretrained": false,
		"labels_required": false,
		"institution": ["HHMI Janelia"],
		"tags": [],
		"scivision_usable": true
	}`)

	entry, errs := Validate(raw)
	require.Empty(t, errs)
	assert.Equal(t, catalogs.Tasks{catalogs.TaskSegmentation, catalogs.TaskClassification}, entry.Tasks,
		"duplicate tasks collapse to the first occurrence")
	assert.False(t, entry.Pretrained)
	assert.False(t, entry.LabelsRequired)
	assert.Equal(t, []string{"HHMI Janelia"}, entry.Institution)
	assert.Equal(t, []string{}, entry.Tags)
	assert.True(t, entry.Usable())
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	raw := validRecord()
	_, errs := Validate(raw)
	require.Empty(t, errs)
	_, hasTasks := raw["tasks"]
	assert.False(t, hasTasks, "defaults are applied to a copy")
}

func TestValidateMissingFields(t *testing.T) {
	required := []string{"name", "url", "pkg_url", "format", "tags"}

	for _, field := range required {
		t.Run(field, func(t *testing.T) {
			raw := validRecord()
			delete(raw, field)

			entry, errs := Validate(raw)
			assert.Nil(t, entry)
			require.Len(t, errs, 1)
			assert.Equal(t, errors.MissingField, errs[0].Kind)
			assert.Equal(t, field, errs[0].Field)
		})
	}

	t.Run("all at once", func(t *testing.T) {
		entry, errs := Validate(map[string]any{"description": "Only a description."})
		assert.Nil(t, entry)
		assert.Equal(t, required, errs.ByKind(errors.MissingField).Fields())
		assert.Len(t, errs, len(required))
	})
}

func TestValidateTypeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
		want  string
	}{
		{"name is a number", "name", 42.0, "expected string, got number"},
		{"pretrained is a string", "pretrained", "yes", "expected boolean, got string"},
		{"tags is a string", "tags", "cells", "expected array, got string"},
		{"institution item is a bool", "institution", []any{"ATI", true}, "expected string, got boolean"},
		{"tasks item is an object", "tasks", []any{map[string]any{}}, "expected string, got object"},
		{"format is null", "format", nil, "expected string, got null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRecord()
			raw[tt.field] = tt.value

			entry, errs := Validate(raw)
			assert.Nil(t, entry)
			require.Len(t, errs, 1)
			assert.Equal(t, errors.TypeMismatch, errs[0].Kind)
			assert.True(t, strings.HasPrefix(errs[0].Field, tt.field), errs[0].Field)
			assert.Equal(t, tt.want, errs[0].Detail)
		})
	}
}

func TestValidateInvalidEnumValue(t *testing.T) {
	raw := validRecord()
	raw["tasks"] = []any{"classification", "clustering", "denoising"}

	entry, errs := Validate(raw)
	assert.Nil(t, entry)
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.Equal(t, errors.InvalidEnumValue, e.Kind)
	}
	assert.Equal(t, "tasks[1]", errs[0].Field)
	assert.Equal(t, "clustering", errs[0].Value)
	assert.Contains(t, errs[0].Detail, `"clustering"`)
	assert.Equal(t, "tasks[2]", errs[1].Field)
}

func TestValidateUnknownFields(t *testing.T) {
	raw := validRecord()
	raw["licence"] = "MIT"
	raw["author"] = "someone"

	entry, errs := Validate(raw)
	assert.Nil(t, entry)
	require.Len(t, errs, 2)
	assert.Equal(t, []string{"author", "licence"}, errs.Fields(), "unknown fields are reported sorted")
	for _, e := range errs {
		assert.Equal(t, errors.UnknownField, e.Kind)
	}
}

func TestValidateURLConstraints(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"relative", "models/stardist.yml"},
		{"scheme only", "https:"},
		{"too long", "https://example.org/" + strings.Repeat("a", 65536)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRecord()
			raw["url"] = tt.url

			entry, errs := Validate(raw)
			assert.Nil(t, entry)
			require.NotEmpty(t, errs)
			assert.Equal(t, errors.InvalidValue, errs[0].Kind)
			assert.Equal(t, "url", errs[0].Field)
		})
	}
}

func TestValidateReportsEverythingInOnePass(t *testing.T) {
	raw := decode(t, `{
		"name": 7,
		"tasks": ["segmentation", "bogus"],
		"url": "https://example.org/model.yml",
		"format": "image",
		"extra": 1
	}`)

	entry, errs := Validate(raw)
	assert.Nil(t, entry)

	kinds := make([]errors.Kind, len(errs))
	for i, e := range errs {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []errors.Kind{
		errors.UnknownField,
		errors.MissingField,
		errors.MissingField,
		errors.TypeMismatch,
		errors.InvalidEnumValue,
	}, kinds)
	assert.Equal(t, []string{"extra", "pkg_url", "tags", "name", "tasks[1]"}, errs.Fields())
}

func TestValidateRejectsNonObjects(t *testing.T) {
	for _, raw := range []any{nil, "stardist", []any{}, 3.0} {
		entry, errs := Validate(raw)
		assert.Nil(t, entry)
		require.Len(t, errs, 1)
		assert.Equal(t, RootField, errs[0].Field)
		assert.Equal(t, errors.TypeMismatch, errs[0].Kind)
	}
}

func TestValidateYAMLDecodedRecord(t *testing.T) {
	doc := `
name: stardist
url: https://example.org/stardist.yml
pkg_url: stardist
format: image
tags: [cells]
tasks:
  - object-detection
pretrained: false
`
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &raw))

	entry, errs := Validate(raw)
	require.Empty(t, errs)
	assert.Equal(t, catalogs.Tasks{catalogs.TaskObjectDetection}, entry.Tasks)
	assert.False(t, entry.Pretrained)
}
