package htmd

import (
	"strings"

	"golang.org/x/net/html"
)

// reconstructOpenTag rebuilds an open tag as source text for passthrough of
// tags the dialect does not map.
func reconstructOpenTag(name string, attrs []Attr) string {
	var b strings.Builder
	b.Grow(2 + len(name) + len(attrs)*16)
	b.WriteByte('<')
	b.WriteString(name)
	for _, attr := range attrs {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.String()
}

func reconstructCloseTag(name string) string {
	return "</" + name + ">"
}
