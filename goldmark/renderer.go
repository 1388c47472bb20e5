package goldmark

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ringchat"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type bubbleRenderer struct {
	bold      lipgloss.Style
	italic    lipgloss.Style
	code      lipgloss.Style
	muted     lipgloss.Style
	underline lipgloss.Style
}

func newRenderer(theme ringchat.Theme) *bubbleRenderer {
	return &bubbleRenderer{
		bold:      lipgloss.NewStyle().Bold(true),
		italic:    lipgloss.NewStyle().Italic(true),
		code:      lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)),
		muted:     lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		underline: lipgloss.NewStyle().Underline(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *bubbleRenderer) render(source []byte, width int) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	var blocks []string
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		blocks = append(blocks, r.block(c, source, width)...)
	}
	return strings.Join(blocks, "\n")
}

// block renders one block node into output lines.
func (r *bubbleRenderer) block(node ast.Node, source []byte, width int) []string {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return r.wrap(r.inline(n, source), width)

	case *ast.Heading:
		return r.wrap(r.bold.Render(r.inline(n, source)), width)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		gutter := r.muted.Render("│") + " "
		var out []string
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			out = append(out, gutter+r.code.Render(strings.TrimRight(string(seg.Value(source)), "\n")))
		}
		return out

	case *ast.List:
		return r.list(n, source, width)

	case *ast.Blockquote:
		gutter := r.muted.Render("▏")
		var out []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			for _, line := range r.block(c, source, max(width-1, 1)) {
				out = append(out, gutter+line)
			}
		}
		return out

	case *ast.ThematicBreak:
		return []string{r.muted.Render(strings.Repeat("─", width))}

	case *ast.HTMLBlock:
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		return r.wrap(strings.TrimRight(buf.String(), "\n"), width)

	default:
		var out []string
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			out = append(out, r.block(c, source, width)...)
		}
		return out
	}
}

func (r *bubbleRenderer) list(n *ast.List, source []byte, width int) []string {
	var out []string
	num := n.Start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		marker := "• "
		if n.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		mw := lipgloss.Width(marker)
		pad := strings.Repeat(" ", mw)
		first := true
		for ic := c.FirstChild(); ic != nil; ic = ic.NextSibling() {
			for _, line := range r.block(ic, source, max(width-mw, 1)) {
				if first {
					out = append(out, marker+line)
					first = false
					continue
				}
				out = append(out, pad+line)
			}
		}
	}
	return out
}

// wrap word-wraps styled text to width cells.
func (r *bubbleRenderer) wrap(s string, width int) []string {
	return strings.Split(lipgloss.NewStyle().Width(width).Render(s), "\n")
}

// inline collects the styled text of a node's inline children.
func (r *bubbleRenderer) inline(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderInline(c, source, &buf)
	}
	return buf.String()
}

func (r *bubbleRenderer) renderInline(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		switch {
		case n.HardLineBreak():
			buf.WriteByte('\n')
		case n.SoftLineBreak():
			buf.WriteByte(' ')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		inner := r.inline(n, source)
		if n.Level == 1 {
			buf.WriteString(r.italic.Render(inner))
			return
		}
		buf.WriteString(r.bold.Render(inner))

	case *ast.CodeSpan:
		buf.WriteString(r.code.Render(r.inline(n, source)))

	case *ast.Link:
		buf.WriteString(r.underline.Render(r.inline(n, source)))
		buf.WriteString(" ")
		buf.WriteString(r.muted.Render("(" + string(n.Destination) + ")"))

	case *ast.AutoLink:
		buf.WriteString(r.underline.Render(string(n.URL(source))))

	case *ast.Image:
		buf.WriteString(r.muted.Render("[" + r.inline(n, source) + "]"))

	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(source))
		}

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.renderInline(c, source, buf)
		}
	}
}
