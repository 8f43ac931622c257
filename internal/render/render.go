package render

import "strings"

// Markdown renders markdown content for terminal display.
// Renderers are pooled per option set; glamour renderers are not safe
// for concurrent use.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	out, err := renderer.Render(content)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// MarkdownOrPlain renders content as markdown, returning it unchanged if
// rendering fails. Chat text must always be shown.
func MarkdownOrPlain(content string, opts Options) string {
	if content == "" {
		return ""
	}
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return out
}
