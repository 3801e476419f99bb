package render

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/gallery/pkg/catalogs"
)

// Badge is a small labelled pill.
type Badge struct {
	Label   string
	Variant string // Bootstrap contextual color
	Value   string
}

var taskVariants = map[catalogs.TaskKind]string{
	catalogs.TaskClassification:  "primary",
	catalogs.TaskObjectDetection: "success",
	catalogs.TaskSegmentation:    "info",
	catalogs.TaskThresholding:    "warning",
	catalogs.TaskOther:           "secondary",
}

// TaskBadge returns the badge for a task kind.
func TaskBadge(task catalogs.TaskKind) Badge {
	variant, ok := taskVariants[task]
	if !ok {
		variant = "secondary"
	}
	return Badge{
		Label:   cases.Title(language.English).String(strings.ReplaceAll(task.String(), "-", " ")),
		Variant: variant,
		Value:   task.String(),
	}
}

// UsageBadge returns the badge for the scivision usage indicator.
func UsageBadge(usable bool) Badge {
	if usable {
		return Badge{Label: "Usable with scivision", Variant: "success", Value: "true"}
	}
	return Badge{Label: "Not yet usable with scivision", Variant: "light", Value: "false"}
}
