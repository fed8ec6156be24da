// Package view holds the server-rendered screener page.
package view

import (
	"embed"
	"html/template"

	"github.com/seanazu/value-hunter/model"
	"github.com/seanazu/value-hunter/util"
)

//go:embed templates/*.html
var templateFS embed.FS

const ScreenerPage = "screener.html"

// Page is the data the screener template renders
type Page struct {
	Title     string
	View      model.ScreenerView
	Exchanges []model.Exchange
	Presets   []model.PresetDto
	Notice    string
}

func NewPage(v model.ScreenerView, presets []model.PresetDto) Page {
	return Page{
		Title:     "Value Hunter",
		View:      v,
		Exchanges: model.Exchanges,
		Presets:   presets,
	}
}

var funcs = template.FuncMap{
	"number": func(p *float64) string {
		if p == nil {
			return ""
		}
		return util.StringForm(*p)
	},
	"checked": func(p *bool) bool {
		return p != nil && *p
	},
	"selected": func(p *model.Exchange, e model.Exchange) bool {
		return p != nil && *p == e
	},
}

func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
