// Package render converts post markdown to HTML with highlighted code blocks.
package render

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

func HighlightCode(code, language, highlightTheme string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	style := styles.Get(highlightTheme)
	if style == nil {
		style = styles.Fallback
	}

	// Inline styles so the output needs no companion stylesheet.
	formatter := chromahtml.New(
		chromahtml.TabWidth(4),
		chromahtml.WithLineNumbers(false),
		chromahtml.WrapLongLines(true),
	)

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}

// RenderMarkdown renders md to HTML, routing fenced code blocks through
// chroma with the given theme.
func RenderMarkdown(md []byte, highlightTheme string) []byte {
	opts := md_html.RendererOptions{
		Flags:          md_html.CommonFlags | md_html.HrefTargetBlank,
		RenderNodeHook: highlightHook(highlightTheme),
	}
	renderer := md_html.NewRenderer(opts)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	return markdown.ToHTML(md, p, renderer)
}

func highlightHook(highlightTheme string) md_html.RenderNodeFunc {
	return func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
		block, ok := node.(*ast.CodeBlock)
		if !ok {
			return ast.GoToNext, false
		}

		language := string(block.Info)
		io.WriteString(w, HighlightCode(string(block.Literal), language, highlightTheme))
		return ast.GoToNext, true
	}
}
