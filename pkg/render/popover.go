package render

import "github.com/agentstation/gallery/pkg/catalogs"

// Popover summarizes an entry's metadata.
type Popover struct {
	Title       string
	Description string
	TaskBadges  []catalogs.TaskKind
	UsageBadge  bool
}

// Describe builds the popover summary for an entry. One task badge is
// produced per task in the entry's order. An absent usage indicator
// yields false.
func Describe(entry *catalogs.Entry) Popover {
	badges := make([]catalogs.TaskKind, len(entry.Tasks))
	copy(badges, entry.Tasks)

	return Popover{
		Title:       entry.Name,
		Description: entry.Description,
		TaskBadges:  badges,
		UsageBadge:  entry.Usable(),
	}
}
