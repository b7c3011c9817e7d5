package ui

import (
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"farmbot/config"
	"farmbot/model"
)

// renderMarkup turns the chat formatter's markup into styled terminal text.
// Breaks become newlines and bold spans are rendered bold; the bullet marker
// is already plain text.
func renderMarkup(markup string) string {
	var b strings.Builder

	for {
		open := strings.Index(markup, model.MarkupBoldOpen)
		if open < 0 {
			break
		}
		rest := markup[open+len(model.MarkupBoldOpen):]
		end := strings.Index(rest, model.MarkupBoldClose)
		if end < 0 {
			break
		}

		b.WriteString(breaksToNewlines(markup[:open]))
		b.WriteString(boldLines(breaksToNewlines(rest[:end])))
		markup = rest[end+len(model.MarkupBoldClose):]
	}
	b.WriteString(breaksToNewlines(markup))

	return strings.TrimPrefix(b.String(), "\n")
}

func breaksToNewlines(s string) string {
	return strings.ReplaceAll(s, model.MarkupBreak, "\n")
}

// boldLines styles each line on its own so wrapping never splits an escape
// sequence across lines
func boldLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = BoldStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// renderMarkdown renders a raw bot reply as terminal markdown
func renderMarkdown(text string, width int) string {
	if width < 20 {
		width = 20
	}

	// Plain URLs stay plain so the terminal can linkify them
	ext := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(ext)
	r := markdown.NewRenderer(width, 0)
	doc := p.Parse([]byte(text))
	rendered := gomarkdown.Render(doc, r)

	return strings.TrimRight(string(rendered), "\n")
}

// renderBotEntry picks the configured renderer for a bot reply
func renderBotEntry(e model.Entry, renderer string, width int) string {
	if renderer == config.RendererMarkdown && e.Text != model.FallbackReply {
		return renderMarkdown(e.Text, width)
	}
	return renderMarkup(e.Markup)
}
