package model

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Markup emitted by Format. Front-ends translate these into their own
// emphasis and line handling.
const (
	MarkupBreak     = "<br>"
	MarkupBoldOpen  = "<strong>"
	MarkupBoldClose = "</strong>"
	MarkupBullet    = "• "
)

// A bold span never crosses a line terminator other than an inserted break
var boldPattern = regexp.MustCompile(`\*\*([^\r\n\x{2028}\x{2029}]*?)\*\*`)

// Format converts a bot reply into the widget's lightweight markup:
//
//  1. every newline becomes a break
//  2. **X** becomes bold
//  3. a line starting with "-" or "*" plus a space becomes a bullet line
//
// The steps run in this order, so bullet detection sees breaks rather than
// newlines. A bullet matched at the very start of the reply also gains a
// leading break.
func Format(text string) string {
	s := strings.ReplaceAll(text, "\n", MarkupBreak)
	s = boldPattern.ReplaceAllString(s, MarkupBoldOpen+"${1}"+MarkupBoldClose)

	segments := strings.Split(s, MarkupBreak)

	var b strings.Builder
	for i, seg := range segments {
		if item, ok := bulletItem(seg); ok {
			// The separating break (or start of string) belongs to the match
			b.WriteString(MarkupBreak)
			b.WriteString(MarkupBullet)
			b.WriteString(item)
			continue
		}
		if i > 0 {
			b.WriteString(MarkupBreak)
		}
		b.WriteString(seg)
	}

	return b.String()
}

// bulletItem reports whether a line is a list item and returns its text
func bulletItem(line string) (string, bool) {
	if len(line) < 2 || (line[0] != '-' && line[0] != '*') {
		return "", false
	}

	r, size := utf8.DecodeRuneInString(line[1:])
	if !isSpace(r) {
		return "", false
	}

	item := line[1+size:]
	if strings.ContainsAny(item, "\r\u2028\u2029") {
		return "", false
	}
	return item, true
}

// isSpace matches the whitespace class used by the web widget's patterns
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

// PlainText strips Format's markup, for clipboard copies and logs
func PlainText(markup string) string {
	r := strings.NewReplacer(
		MarkupBreak, "\n",
		MarkupBoldOpen, "",
		MarkupBoldClose, "",
	)
	return strings.TrimPrefix(r.Replace(markup), "\n")
}
