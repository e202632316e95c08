package oiio

import (
	"regexp"
	"strings"
)

// View is one OCIO view under a display.
type View struct {
	Name      string
	IsDefault bool
}

// Display is one OCIO display with its ordered view list.
type Display struct {
	Name      string
	IsDefault bool
	Views     []View
}

var (
	displayLineRe = regexp.MustCompile(`^\s*-\s*"([^"]+)"\s*(\(\*\))?\s*$`)
	viewsLineRe   = regexp.MustCompile(`^\s*views:\s*(.+)$`)
	viewItemRe    = regexp.MustCompile(`"([^"]+)"\s*(\(\*\))?`)
)

// ParseColorConfig extracts the display/view catalog from the text output
// of `oiiotool --colorconfiginfo`. The relevant block starts after the
// "Known displays:" line and ends at "Named transforms:". Layout:
//
//	Known displays:
//	  - "sRGB - Display" (*)
//	    views: "ACES 1.0 - SDR Video" (*), "Un-tone-mapped", "Raw"
//
// A (*) marker flags the default display or view. When the source marks
// none, the first entry becomes the default.
func ParseColorConfig(text string) []Display {
	var displays []Display
	inBlock := false

	for _, line := range strings.Split(text, "\n") {
		if !inBlock {
			if strings.Contains(line, "Known displays:") {
				inBlock = true
			}
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), "Named transforms:") {
			break
		}

		if m := displayLineRe.FindStringSubmatch(line); m != nil {
			displays = append(displays, Display{
				Name:      m[1],
				IsDefault: m[2] != "",
			})
			continue
		}
		if m := viewsLineRe.FindStringSubmatch(line); m != nil && len(displays) > 0 {
			d := &displays[len(displays)-1]
			for _, item := range viewItemRe.FindAllStringSubmatch(m[1], -1) {
				d.Views = append(d.Views, View{
					Name:      item[1],
					IsDefault: item[2] != "",
				})
			}
		}
	}

	return ensureDefaults(displays)
}

func ensureDefaults(displays []Display) []Display {
	if len(displays) == 0 {
		return displays
	}
	hasDefault := false
	for i := range displays {
		if displays[i].IsDefault {
			hasDefault = true
		}
		views := displays[i].Views
		if len(views) == 0 {
			continue
		}
		viewDefault := false
		for _, v := range views {
			if v.IsDefault {
				viewDefault = true
				break
			}
		}
		if !viewDefault {
			views[0].IsDefault = true
		}
	}
	if !hasDefault {
		displays[0].IsDefault = true
	}
	return displays
}

// FallbackCatalog is used when discovery fails so the UI always has one
// selectable display/view pair.
func FallbackCatalog() []Display {
	return []Display{
		{
			Name:      "sRGB - Display",
			IsDefault: true,
			Views: []View{
				{Name: "Standard", IsDefault: true},
			},
		},
	}
}

// DefaultSelection returns the default display and view names out of a
// catalog, falling back to the first entries when nothing is marked.
func DefaultSelection(displays []Display) (string, string) {
	if len(displays) == 0 {
		displays = FallbackCatalog()
	}
	display := displays[0]
	for _, d := range displays {
		if d.IsDefault {
			display = d
			break
		}
	}
	if len(display.Views) == 0 {
		return display.Name, ViewNoTonemap
	}
	view := display.Views[0]
	for _, v := range display.Views {
		if v.IsDefault {
			view = v
			break
		}
	}
	return display.Name, view.Name
}
