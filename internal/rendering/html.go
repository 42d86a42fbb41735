package rendering

import (
	"bytes"
	"html/template"

	"github.com/jonathan/review-writer/internal/types"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="description" content="{{.Description}}">
</head>
<body>
<article>
{{.Body}}
</article>
</body>
</html>
`))

type pageData struct {
	Lang        string
	Title       string
	Description string
	Body        template.HTML
}

// MarkdownToHTML converts Markdown to an HTML fragment. Raw HTML in the
// source is not passed through.
func MarkdownToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", &RenderError{Message: "failed to convert markdown", Cause: err}
	}
	return buf.String(), nil
}

// HTML renders a response as a standalone page in the given language.
func HTML(resp *types.GenerationResponse, lang string) (string, error) {
	body, err := MarkdownToHTML(Markdown(resp))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageData{
		Lang:        lang,
		Title:       resp.Article.Title,
		Description: resp.Article.MetaDescription,
		// goldmark output is safe: unsafe raw HTML rendering is off
		Body: template.HTML(body), //nolint:gosec
	})
	if err != nil {
		return "", &RenderError{Message: "failed to execute page template", Cause: err}
	}
	return buf.String(), nil
}
