package schema

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gallery/internal/cmd/application"
)

func run(t *testing.T, format string) string {
	t.Helper()
	cmd := NewCommand(&application.Mock{OutputFormatFunc: func() string { return format }})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestSchemaJSON(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(run(t, "table")), &doc))
	assert.Contains(t, doc, "properties")
	assert.Contains(t, doc, "required")
}

func TestSchemaYAML(t *testing.T) {
	out := run(t, "yaml")
	assert.Contains(t, out, "properties:")
	assert.False(t, json.Valid([]byte(out)))
}
