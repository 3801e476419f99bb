package render

import "github.com/agentstation/gallery/pkg/constants"

// Placeholder is the synthesized visual used when an entry has no
// thumbnail: a square solid fill with the entry name centered on it.
type Placeholder struct {
	Label       string
	Fill        string
	TextColor   string
	FontSize    string
	AspectRatio float64
}

// NewPlaceholder synthesizes the placeholder for name. The result depends
// on name alone.
func NewPlaceholder(name string) *Placeholder {
	return &Placeholder{
		Label:       name,
		Fill:        constants.PlaceholderFill,
		TextColor:   constants.PlaceholderTextColor,
		FontSize:    constants.PlaceholderFontSize,
		AspectRatio: constants.PlaceholderAspectRatio,
	}
}
