// Package web embeds the HTML templates served by the router.
package web

import (
	"embed"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"newsagency.com/newsroom/pkg/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page template. Each page is addressed by its file
// name, e.g. "topic_list.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		// Newspaper content is sanitized before it is stored.
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006, 15:04")
		},
		"pageURL": pageURL,
	}
}

// pageURL links to another page of a listing without losing the search.
func pageURL(search dto.SearchForm, page int) string {
	q := url.Values{}
	if search.Value != "" {
		q.Set(search.Field, search.Value)
	}
	q.Set("page", strconv.Itoa(page))
	return "?" + q.Encode()
}
