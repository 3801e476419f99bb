package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntrySchemaContract(t *testing.T) {
	s := Entry()

	assert.Equal(t, []string{"name", "url", "pkg_url", "format", "tags"}, s.Required)
	assert.False(t, s.AdditionalProperties)
	assert.True(t, s.IsRequired("tags"))
	assert.False(t, s.IsRequired("tasks"))

	tasks, ok := s.Property("tasks")
	require.True(t, ok)
	assert.Equal(t, TaskEnumRef, tasks.Items.Ref)

	enum, ok := s.resolve(tasks.Items.Ref)
	require.True(t, ok)
	assert.Equal(t, []string{"classification", "object-detection", "segmentation", "thresholding", "other"}, enum.Enum)

	_, ok = s.Property("license")
	assert.False(t, ok)
}

func TestEntryReturnsIndependentCopies(t *testing.T) {
	a := Entry()
	a.Required = nil
	a.AdditionalProperties = true

	b := Entry()
	assert.Len(t, b.Required, 5)
	assert.False(t, b.AdditionalProperties)
}

func TestSchemaJSONExport(t *testing.T) {
	data, err := Entry().JSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, false, doc["additionalProperties"])

	props := doc["properties"].(map[string]any)
	assert.Len(t, props, 11)

	url := props["url"].(map[string]any)
	assert.Equal(t, "uri", url["format"])
	assert.Equal(t, 1.0, url["minLength"])
	assert.Equal(t, 65536.0, url["maxLength"])

	pretrained := props["pretrained"].(map[string]any)
	assert.Equal(t, true, pretrained["default"])

	tasks := props["tasks"].(map[string]any)
	assert.Equal(t, []any{}, tasks["default"])
	assert.Equal(t, "#/definitions/TaskEnum", tasks["items"].(map[string]any)["$ref"])

	defs := doc["definitions"].(map[string]any)
	assert.Contains(t, defs, "TaskEnum")

	// properties keep their declared order
	text := string(data)
	assert.Less(t, strings.Index(text, `"name"`), strings.Index(text, `"description"`))
	assert.Less(t, strings.Index(text, `"pkg_url"`), strings.Index(text, `"scivision_usable"`))
}

func TestSchemaYAMLExport(t *testing.T) {
	data, err := Entry().YAML()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "A model catalog entry", doc["title"])
	assert.Contains(t, doc["properties"], "labels_required")

	text := string(data)
	assert.Less(t, strings.Index(text, "name:"), strings.Index(text, "tags:"))
}
