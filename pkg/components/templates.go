package components

import "html/template"

var templates = template.Must(template.New("components").Parse(`
{{- define "link" -}}
<a href="{{.Href}}"{{if .Class}} class="{{.Class}}"{{end}}{{if .External}} target="_blank" rel="noopener"{{end}} data-i18n="{{.Key}}"{{if .HTML}} data-i18n-html{{end}}>{{.Text}}</a>
{{- end -}}

{{- define "header" -}}
<header class="site-header">
<nav class="navbar">
<div class="container">
<div class="nav-brand">
<a href="{{.Brand.Home}}"><img src="{{.Brand.Logo}}" alt="{{.Brand.Alt}}" class="logo"></a>
</div>
<div class="nav-menu">
{{- range .Links}}
{{template "link" .}}
{{- end}}
</div>
</div>
</nav>
</header>
{{- end -}}

{{- define "footer" -}}
<footer class="site-footer">
<div class="container">
<div class="footer-content">
{{- range .Sections}}
<div class="footer-section">
<h3{{if .TitleKey}} data-i18n="{{.TitleKey}}" data-i18n-html{{end}}>{{.Title}}</h3>
{{- if .Text}}
<p{{if .TextKey}} data-i18n="{{.TextKey}}" data-i18n-html{{end}}>{{.Text}}</p>
{{- end}}
{{- if .Inline}}
{{- range .Links}}
<p>{{template "link" .}}</p>
{{- end}}
{{- else if .Links}}
<ul>
{{- range .Links}}
<li>{{template "link" .}}</li>
{{- end}}
</ul>
{{- end}}
</div>
{{- end}}
</div>
<div class="footer-bottom">
<p data-i18n="{{.Copyright.Key}}">{{.Copyright.Text}}</p>
</div>
</div>
</footer>
{{- end -}}

{{- define "switcher" -}}
<div class="language-switcher">
<button type="button" class="language-button" aria-haspopup="true"><span class="language-icon">🌐</span><span>{{.Active.Name}}</span></button>
<div class="language-dropdown">
{{- range .Options}}
<a href="{{.Href}}" class="language-option{{if .Active}} active{{end}}" hreflang="{{.Tag}}" lang="{{.Tag}}" rel="alternate"><span class="language-name">{{.Name}}</span> <span class="language-code">{{.Code}}</span></a>
{{- end}}
</div>
</div>
{{- end -}}
`))
