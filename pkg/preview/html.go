package preview

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"path/filepath"

	"texpeek/pkg/oiio"
	"texpeek/pkg/texture"
)

//go:embed page.html.tmpl
var pageTemplateSrc string

var pageTemplate = template.Must(template.New("page").Parse(pageTemplateSrc))

// ViewOption is one entry of the view dropdown.
type ViewOption struct {
	Name     string
	Selected bool
}

// DisplayOption is one entry of the display dropdown with its views.
type DisplayOption struct {
	Name     string
	Selected bool
	Views    []ViewOption
}

// PageData is everything the page template consumes. It is a plain value:
// all policy (which selectors exist, which options are selected) is
// decided in BuildPage, none of it in the template.
type PageData struct {
	Title       string
	Base64Image string
	ErrorText   string
	LevelInfo   string
	Levels      []int
	Layers      []int
	Faces       []int
	Depths      []int
	Exposure    float64
	Selection   texture.Selection
	Displays    []DisplayOption
}

// BuildPage derives the template input from the current session values.
// Selectors only appear when the corresponding count is above 1. The
// "No Tonemapping" view is appended to every display's view list.
func BuildPage(base64Image string, hdr texture.Header, sel texture.Selection, catalog []oiio.Display, errText string) PageData {
	hdr = hdr.Normalize()
	if len(catalog) == 0 {
		catalog = oiio.FallbackCatalog()
	}

	data := PageData{
		Base64Image: base64Image,
		ErrorText:   errText,
		Exposure:    sel.Exposure,
		Selection:   sel,
	}
	if hdr.LevelCount > 1 {
		data.Levels = indexRange(hdr.LevelCount)
		data.LevelInfo = LevelInfoHTML(hdr, sel)
	}
	if hdr.LayerCount > 1 {
		data.Layers = indexRange(hdr.LayerCount)
	}
	if hdr.FaceCount > 1 {
		data.Faces = indexRange(hdr.FaceCount)
	}
	if hdr.PixelDepth > 1 {
		data.Depths = indexRange(hdr.PixelDepth)
	}

	for _, d := range catalog {
		opt := DisplayOption{
			Name:     d.Name,
			Selected: d.Name == sel.Display,
		}
		for _, v := range d.Views {
			opt.Views = append(opt.Views, ViewOption{
				Name:     v.Name,
				Selected: opt.Selected && v.Name == sel.View,
			})
		}
		opt.Views = append(opt.Views, ViewOption{
			Name:     oiio.ViewNoTonemap,
			Selected: opt.Selected && sel.View == oiio.ViewNoTonemap,
		})
		data.Displays = append(data.Displays, opt)
	}
	return data
}

// RenderPage renders the preview page markup. Pure function of its input.
func RenderPage(title string, data PageData) ([]byte, error) {
	data.Title = filepath.Base(title)
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render preview page: %w", err)
	}
	return buf.Bytes(), nil
}

// LevelInfoHTML describes the selected mip level's dimensions.
func LevelInfoHTML(hdr texture.Header, sel texture.Selection) string {
	w, h := hdr.LevelSize(sel.Level)
	return fmt.Sprintf("Level %d: %d x %d", sel.Level, w, h)
}

func indexRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
