package catalogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryUsable(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name  string
		value *bool
		want  bool
	}{
		{"absent defaults to false", nil, false},
		{"explicit true", &yes, true},
		{"explicit false", &no, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entry{Name: "x", ScivisionUsable: tt.value}
			assert.Equal(t, tt.want, e.Usable())
		})
	}
}

func TestTaskKindValid(t *testing.T) {
	for _, k := range AllTaskKinds() {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, TaskKind("clustering").Valid())
	assert.False(t, TaskKind("Classification").Valid())

	k, ok := ParseTaskKind("object-detection")
	assert.True(t, ok)
	assert.Equal(t, TaskObjectDetection, k)
}

func TestNewTasksKeepsFirstOccurrence(t *testing.T) {
	tasks := NewTasks(TaskSegmentation, TaskClassification, TaskSegmentation)
	assert.Equal(t, Tasks{TaskSegmentation, TaskClassification}, tasks)
	assert.Equal(t, []string{"segmentation", "classification"}, tasks.Strings())
	assert.True(t, tasks.Has(TaskClassification))
	assert.False(t, tasks.Has(TaskOther))

	empty := NewTasks()
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestHasTasks(t *testing.T) {
	assert.False(t, (&Entry{}).HasTasks())
	assert.True(t, (&Entry{Tasks: NewTasks()}).HasTasks())
}

func TestCollection(t *testing.T) {
	entries := []*Entry{
		{Name: "stardist"},
		{Name: "cellpose"},
		{Name: "stardist", Description: "duplicate"},
	}
	c := NewCollection(KindModel, entries)

	assert.Equal(t, KindModel, c.Kind())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"stardist", "cellpose", "stardist"}, c.Names())

	got, ok := c.Lookup("stardist")
	require.True(t, ok)
	assert.Empty(t, got.Description, "lookup resolves to the first entry with a name")

	_, ok = c.Lookup("missing")
	assert.False(t, ok)

	out := c.Entries()
	out[0] = nil
	assert.NotNil(t, c.Entries()[0], "Entries returns a copy")
}
