package htmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
)

// A Markdown parser should rebuild the structures the converter wrote.
func TestMarkdownRoundTrip(t *testing.T) {
	const src = `<h1>Title</h1><p>Hello <b>world</b>, see <a href="https://example.com">docs</a>.</p><ul><li>one</li><li>two</li></ul>`
	md, err := ConvertString(src)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	var html bytes.Buffer
	if err := goldmark.Convert([]byte(md), &html); err != nil {
		t.Fatalf("goldmark: %v", err)
	}
	out := html.String()
	for _, want := range []string{
		"<h1>Title</h1>",
		"<strong>world</strong>",
		`<a href="https://example.com">docs</a>`,
		"<ul>",
		"<p>one</p>",
		"<p>two</p>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("round trip lost %q:\nmarkdown:\n%s\nhtml:\n%s", want, md, out)
		}
	}
}

func TestMarkdownRoundTripCodeBlock(t *testing.T) {
	md, err := ConvertString(`<pre><code>x := 1</code></pre>`)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	var html bytes.Buffer
	if err := goldmark.Convert([]byte(md), &html); err != nil {
		t.Fatalf("goldmark: %v", err)
	}
	if !strings.Contains(html.String(), "<pre><code>x := 1") {
		t.Fatalf("round trip lost code block:\nmarkdown:\n%s\nhtml:\n%s", md, html.String())
	}
}
