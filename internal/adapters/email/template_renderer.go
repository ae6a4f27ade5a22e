package email

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strings"
	"text/template"

	"portalevents/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// A message named n is made of three files: n_subject.txt, n.html and n.txt.
const (
	subjectSuffix = "_subject.txt"
	htmlSuffix    = ".html"
	textSuffix    = ".txt"
)

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

// templateRenderer holds every embedded template, parsed once.
// HTML bodies go through html/template, so interpolated values are escaped there;
// subjects and plain-text bodies are not HTML and use text/template.
type templateRenderer struct {
	html  *htmltemplate.Template
	plain *template.Template
}

// NewTemplateRenderer parses the embedded email templates.
// A template that fails to parse is a build defect, so it panics.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		html:  htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*"+htmlSuffix)),
		plain: template.Must(template.ParseFS(templateFS, "templates/*"+textSuffix)),
	}
}

// Render executes the subject, html and text parts of the named message.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	parts := []struct {
		set  executor
		file string
		out  *string
	}{
		{r.plain, templateName + subjectSuffix, &subject},
		{r.html, templateName + htmlSuffix, &htmlBody},
		{r.plain, templateName + textSuffix, &textBody},
	}
	for _, p := range parts {
		var b strings.Builder
		if err := p.set.ExecuteTemplate(&b, p.file, data); err != nil {
			return "", "", "", fmt.Errorf("render %s: %w", p.file, err)
		}
		*p.out = b.String()
	}
	return singleLine(subject), htmlBody, textBody, nil
}

// singleLine collapses line breaks so user input cannot add header lines to the subject.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
