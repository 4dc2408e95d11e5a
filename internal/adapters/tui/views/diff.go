package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"provmark/internal/adapters/tui/styles"
)

// RenderDiff turns the dataset's HTML diff into styled terminal text.
// Insertions are <ins> or green spans, deletions <del>, <s>, <strike> or red
// spans. Unknown markup is dropped and its text kept.
func RenderDiff(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	var (
		b     strings.Builder
		stack []lipgloss.Style
	)
	plain := lipgloss.NewStyle()

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input, both end the fragment
			return strings.TrimSpace(b.String())

		case html.StartTagToken:
			tok := z.Token()
			switch tok.Data {
			case "br", "p", "div":
				b.WriteString("\n")
				continue
			}
			stack = append(stack, diffStyle(tok, current(stack, plain)))

		case html.EndTagToken:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case html.SelfClosingTagToken:
			if tok := z.Token(); tok.Data == "br" {
				b.WriteString("\n")
			}

		case html.TextToken:
			text := string(z.Text())
			if text == "" {
				continue
			}
			b.WriteString(current(stack, plain).Render(text))
		}
	}
}

func current(stack []lipgloss.Style, plain lipgloss.Style) lipgloss.Style {
	if len(stack) == 0 {
		return plain
	}
	return stack[len(stack)-1]
}

func diffStyle(tok html.Token, parent lipgloss.Style) lipgloss.Style {
	switch tok.Data {
	case "ins", "u":
		return styles.DiffInserted
	case "del", "s", "strike":
		return styles.DiffDeleted
	}
	for _, a := range tok.Attr {
		if a.Key != "style" && a.Key != "class" {
			continue
		}
		v := strings.ToLower(a.Val)
		switch {
		case strings.Contains(v, "green") || strings.Contains(v, "insert") || strings.Contains(v, "added"):
			return styles.DiffInserted
		case strings.Contains(v, "red") || strings.Contains(v, "delete") || strings.Contains(v, "removed"):
			return styles.DiffDeleted
		}
	}
	return parent
}

// DiffText returns the plain text of an HTML diff
func DiffText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.WriteString(string(z.Text()))
		}
	}
}
