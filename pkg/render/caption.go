package render

import "strings"

// Caption returns description ending in a full stop. Text already ending
// in "." is returned unchanged; an empty description becomes ".".
func Caption(description string) string {
	if strings.HasSuffix(description, ".") {
		return description
	}
	return description + "."
}
