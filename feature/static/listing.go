package static

import (
	"bytes"
	"html/template"
	"net/url"
	"path"
)

var listingTemplate = template.Must(template.New("listing").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Directory listing for {{.Path}}</title>
</head>
<body>
<h1>Directory listing for {{.Path}}</h1>
<hr>
<ul>
{{- range .Links}}
<li><a href="{{.Href}}">{{.Label}}</a></li>
{{- end}}
</ul>
<hr>
</body>
</html>
`))

type listingLink struct {
	Href  string
	Label string
}

// renderListing renders entries of the directory at the decoded request path.
func renderListing(dirPath string, entries []Entry) ([]byte, error) {
	links := make([]listingLink, 0, len(entries))
	for _, e := range entries {
		label := e.Name
		if e.IsDir {
			label += "/"
		}
		href := (&url.URL{Path: path.Join(dirPath, e.Name)}).EscapedPath()
		if e.IsDir {
			href += "/"
		}
		links = append(links, listingLink{Href: href, Label: label})
	}

	var buf bytes.Buffer
	err := listingTemplate.Execute(&buf, struct {
		Path  string
		Links []listingLink
	}{Path: dirPath, Links: links})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
