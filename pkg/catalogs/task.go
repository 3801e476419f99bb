package catalogs

import "slices"

// TaskKind is a task category a model or data source supports.
type TaskKind string

// String returns the string representation of a TaskKind.
func (t TaskKind) String() string {
	return string(t)
}

// Task kinds accepted by the catalog.
const (
	TaskClassification  TaskKind = "classification"
	TaskObjectDetection TaskKind = "object-detection"
	TaskSegmentation    TaskKind = "segmentation"
	TaskThresholding    TaskKind = "thresholding"
	TaskOther           TaskKind = "other"
)

// AllTaskKinds returns every task kind in declaration order.
func AllTaskKinds() []TaskKind {
	return []TaskKind{
		TaskClassification,
		TaskObjectDetection,
		TaskSegmentation,
		TaskThresholding,
		TaskOther,
	}
}

// Valid reports whether t is a member of the closed enumeration.
func (t TaskKind) Valid() bool {
	return slices.Contains(AllTaskKinds(), t)
}

// ParseTaskKind converts a raw string into a TaskKind.
func ParseTaskKind(s string) (TaskKind, bool) {
	t := TaskKind(s)
	return t, t.Valid()
}

// Tasks is an ordered set of task kinds.
type Tasks []TaskKind

// NewTasks builds a Tasks value keeping the first occurrence of each kind.
// The result is never nil.
func NewTasks(kinds ...TaskKind) Tasks {
	out := make(Tasks, 0, len(kinds))
	for _, k := range kinds {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}

// Has reports whether the set contains kind.
func (ts Tasks) Has(kind TaskKind) bool {
	return slices.Contains(ts, kind)
}

// Strings returns the task kinds as plain strings.
func (ts Tasks) Strings() []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	return out
}
