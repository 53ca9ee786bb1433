package handlers

import (
	"html/template"
	"io"

	"covid-dashboard/models"
	"covid-dashboard/presenter"
)

// NavItem is one sidebar entry.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// navLabels are the sidebar labels in models.Pages order.
var navLabels = map[models.PageName]string{
	models.PageOverview: "General",
	models.PageLocation: "Localización",
	models.PageTimeline: "Tiempo",
}

// PagePath is the HTML route of page.
func PagePath(page models.PageName) string {
	return "/dashboard/" + string(page)
}

// Navigation lists the sidebar entries with the active page highlighted.
func Navigation(active models.PageName) []NavItem {
	items := make([]NavItem, 0, len(models.Pages))
	for _, page := range models.Pages {
		items = append(items, NavItem{Label: navLabels[page], Href: PagePath(page), Active: page == active})
	}
	return items
}

// ShellPage is what the shell template draws: the sidebar and one page.
type ShellPage struct {
	Nav       []NavItem
	View      presenter.PageView
	Charts    []presenter.RenderedChart
	ExportURL string
	AssetURL  string
}

// RetryQuery is the query string that refetches the page.
func (p ShellPage) RetryQuery() string {
	return RELOAD_QUERY_ARG + "=true"
}

// Legend returns the color legend of the view's map chart, if any.
func (p ShellPage) Legend() *presenter.ColorLegend {
	for _, c := range p.View.Charts {
		if c.Kind == presenter.KindMap && c.Scale != nil {
			return c.Scale
		}
	}
	return nil
}

// queryHref turns an encoded query string into a same-page link. The query is
// already url.Values-encoded, so it is passed as a URL and not escaped again.
func queryHref(q string) template.URL {
	return template.URL("?" + q)
}

var shellTemplate = template.Must(template.New("shell").Funcs(template.FuncMap{"query": queryHref}).Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{ .View.Title }}</title>
<script src="{{ .AssetURL }}"></script>
<style>
body { margin: 0; font-family: sans-serif; display: flex; background: #f5f6fa; }
nav { width: 200px; min-height: 100vh; background: #2c3e50; padding-top: 16px; }
nav a { display: block; padding: 12px 20px; color: #ecf0f1; text-decoration: none; }
nav a.active { background: #3498db; font-weight: bold; }
main { flex: 1; padding: 24px; }
.tabs a, .toggle a { margin-right: 8px; padding: 6px 12px; border: 1px solid #ccc; border-radius: 4px; text-decoration: none; color: #333; }
.tabs a.active, .toggle a.active { background: #3498db; color: #fff; }
.stats { display: flex; gap: 16px; margin: 16px 0; }
.stat { background: #fff; padding: 12px 16px; border-radius: 6px; border-top: 4px solid #ccc; }
.stat.green { border-color: #4CAF50; } .stat.red { border-color: #FF5252; } .stat.blue { border-color: #2196F3; }
.stat.yellow { border-color: #FFD54F; } .stat.purple { border-color: #9b59b6; }
.chart { background: #fff; margin: 16px 0; padding: 8px; border-radius: 6px; }
.error { color: #c0392b; background: #fdecea; padding: 16px; border-radius: 6px; }
.legend span { display: inline-block; width: 24px; height: 12px; }
td.increasing { color: #c0392b; } td.decreasing { color: #27ae60; }
</style>
</head>
<body>
<nav>
{{- range .Nav }}
<a href="{{ .Href }}"{{ if .Active }} class="active"{{ end }}>{{ .Label }}</a>
{{- end }}
</nav>
<main>
<h1>{{ .View.Title }}</h1>
{{- if .View.Error }}
<div class="error">{{ .View.Error }}</div>
<p><a href="{{ query .RetryQuery }}">Reintentar</a></p>
{{- else }}
{{- with .View.Subtitle }}<p>{{ . }}</p>{{ end }}
{{- if .View.Tabs }}
<div class="tabs">
{{- range .View.Tabs }}<a href="{{ query .Query }}"{{ if .Active }} class="active"{{ end }}>{{ .Label }}</a>{{ end }}
</div>
{{- end }}
{{- range .View.Controls }}
<div class="toggle">{{ with .Label }}<label>{{ . }}</label> {{ end }}
{{- if .Select }}
<select onchange="window.location.search = this.value">
{{- range .Options }}<option value="?{{ .Query }}"{{ if .Selected }} selected{{ end }}>{{ .Label }}</option>{{ end }}
</select>
{{- else }}
{{- range .Options }}<a href="{{ query .Query }}"{{ if .Selected }} class="active"{{ end }}>{{ .Label }}</a>{{ end }}
{{- end }}
</div>
{{- end }}
{{- if .View.Stats }}
<div class="stats">
{{- range .View.Stats }}<div class="stat {{ .Accent }}"><div>{{ .Label }}</div><strong>{{ .Value }}</strong></div>{{ end }}
</div>
{{- end }}
{{- range .Charts }}
<div class="chart" id="chart-{{ .ID }}">
{{ .Element }}
{{- if .Preamble }}
<script type="text/javascript">{{ .Preamble }}</script>
{{- end }}
{{ .Script }}
</div>
{{- end }}
{{- with .Legend }}
<div class="legend">Less {{ range .Palette }}<span style="background: {{ . }}"></span>{{ end }} More</div>
{{- end }}
{{- with .View.Table }}
<h2>{{ .Title }}</h2>
<table>
<tr>{{ range .Columns }}<th>{{ . }}</th>{{ end }}</tr>
{{- range .Rows }}
{{- $dir := .Direction }}
<tr>{{ range .Cells }}<td class="{{ $dir }}">{{ . }}</td>{{ end }}</tr>
{{- end }}
</table>
{{- end }}
{{- range .View.Notes }}
<p class="note">{{ . }}</p>
{{- end }}
{{- range .View.Links }}
<p><a href="{{ query .Query }}">{{ .Label }}</a></p>
{{- end }}
{{- with .ExportURL }}
<p><a href="{{ . }}">Exportar CSV</a></p>
{{- end }}
{{- end }}
</main>
</body>
</html>
`))

// RenderShell writes the full HTML document of one page.
func RenderShell(w io.Writer, page ShellPage) error {
	return shellTemplate.Execute(w, page)
}
