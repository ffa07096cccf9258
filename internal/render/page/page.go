// Package page assembles the standalone HTML document shared by the
// interactive back ends.
package page

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

//go:embed page.html.tmpl
var pageSource string

//go:embed styles.css
var styles string

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

// ToggleID is the DOM id of the downward checkbox.
const ToggleID = "downwardToggle"

// ToggleLabel is the visible checkbox label.
const ToggleLabel = "Data downward (optional)"

// ContainerID is the DOM id of the element a back end draws into.
const ContainerID = "vis"

// Page is the input to Render.
type Page struct {
	Backend    string   // shown in the title and heading
	Title      string   // chart title
	Libraries  []string // script URLs loaded in <head>
	Container  template.HTML // chart mount point
	PointCount int           // plotted observations
	Script     template.JS   // chart setup and toggle handler
}

type view struct {
	Page
	Styles      template.CSS
	ToggleID    string
	ToggleLabel string
	ContainerID string
}

// Render executes the page template.
func Render(p Page) ([]byte, error) {
	if p.Container == "" {
		p.Container = template.HTML(fmt.Sprintf(`<div id="%s"></div>`, ContainerID)) //nolint:gosec // constant markup
	}
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, view{
		Page:        p,
		Styles:      template.CSS(styles), //nolint:gosec // embedded stylesheet
		ToggleID:    ToggleID,
		ToggleLabel: ToggleLabel,
		ContainerID: ContainerID,
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}
