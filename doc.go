// Package htmd renders streams of markup-parse events as Markdown.
//
// The converter consumes open/text/close events (by default produced from
// HTML by golang.org/x/net/html's tokenizer), renders them through a per-tag
// dialect table, and returns one finished string. Rendering is driven by a
// stack machine that tracks nesting for block spacing and indentation and can
// defer later-arriving inner text into an earlier output position, so syntax
// like [text](href) comes out right even though href is known before the text
// is streamed.
//
// Core properties:
//   - Event-driven: any EventSource can feed the renderer
//   - Dialect-driven output via per-tag open/close markers
//   - Best-effort: malformed markup degrades, it never fails
//   - Full state reset at every call boundary; no cross-call leakage
//
// Example:
//
//	out, err := htmd.ConvertString(`<p>Read <a href="https://example.com">this</a>.</p>`)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(out)
//
// Unknown tags pass through literally by default; WithDropUnknown(true)
// drops their markup instead. Their text content renders either way.
package htmd
