package docs

import (
	"fmt"
	"strings"

	"github.com/agentstation/gallery/pkg/catalogs"
)

const shieldsURL = "https://img.shields.io/badge"

// taskColors mirrors the badge variants used by the HTML renderer.
var taskColors = map[catalogs.TaskKind]string{
	catalogs.TaskClassification:  "blue",
	catalogs.TaskObjectDetection: "green",
	catalogs.TaskSegmentation:    "9cf",
	catalogs.TaskThresholding:    "yellow",
	catalogs.TaskOther:           "lightgrey",
}

// badge returns a shields.io image badge. Dashes, underscores and spaces
// are escaped the way shields.io expects.
func badge(label, value, color string) string {
	return fmt.Sprintf("![%s](%s/%s-%s-%s)", label, shieldsURL, shieldEscape(label), shieldEscape(value), color)
}

func shieldEscape(s string) string {
	s = strings.ReplaceAll(s, "-", "--")
	s = strings.ReplaceAll(s, "_", "__")
	return strings.ReplaceAll(s, " ", "_")
}

// taskBadges renders one badge per task, in task order.
func taskBadges(tasks catalogs.Tasks) string {
	badges := make([]string, 0, len(tasks))
	for _, t := range tasks {
		color, ok := taskColors[t]
		if !ok {
			color = "lightgrey"
		}
		badges = append(badges, badge("task", t.String(), color))
	}
	return strings.Join(badges, " ")
}

// usageBadge renders the usage indicator.
func usageBadge(e *catalogs.Entry) string {
	if e.Usable() {
		return badge("scivision", "usable", "success")
	}
	return badge("scivision", "not usable", "inactive")
}
