package htmd

import (
	"sort"
	"strings"
)

// TextAttr is the attribute key that stands for a tag's own inner text
// rather than a source attribute. Its position in a TagSpec's attribute
// order decides where deferred text is spliced in.
const TextAttr = "text"

// AttrRule renders one attribute as an open/close marker pair around its
// value.
type AttrRule struct {
	Key   string
	Open  string
	Close string
}

// TagSpec is one dialect entry: how a single tag name renders.
type TagSpec struct {
	// Open and Close wrap the rendered content; either may be empty.
	Open  string
	Close string
	// Block tags occupy their own paragraph unit and get blank-line
	// spacing from siblings (a single line break inside indented context).
	Block bool
	// Indent tags prefix their descendants with IndentText once per
	// nesting level. Used by list containers.
	Indent     bool
	IndentText string
	// Attrs render in declared order after the open marker.
	Attrs []AttrRule
}

// Dialect maps tag names to rendering rules for a target syntax.
type Dialect interface {
	Name() string
	Resolve(tag string) (TagSpec, bool)
}

type dialect struct {
	name string
	tags map[string]TagSpec
}

func (d dialect) Name() string { return d.name }

func (d dialect) Resolve(tag string) (TagSpec, bool) {
	spec, ok := d.tags[tag]
	return spec, ok
}

// NewDialect returns a Dialect from a tag table.
func NewDialect(name string, tags map[string]TagSpec) Dialect {
	return dialect{name: name, tags: tags}
}

// Tag names the render stack machine treats specially. List items resolve
// against their nearest enclosing list container, and a code tag directly
// inside a preformatted tag collapses into one code-block unit.
const (
	itemTag          = "li"
	orderedListTag   = "ol"
	unorderedListTag = "ul"
	preformattedTag  = "pre"
	codeTag          = "code"

	orderedItemTag   = "ol>li"
	unorderedItemTag = "ul>li"
)

var markdownTags = map[string]TagSpec{
	"p":          {Block: true},
	"h1":         {Block: true, Open: "# "},
	"h2":         {Block: true, Open: "## "},
	"h3":         {Block: true, Open: "### "},
	"h4":         {Block: true, Open: "#### "},
	"h5":         {Block: true, Open: "##### "},
	"h6":         {Block: true, Open: "###### "},
	"blockquote": {Block: true, Open: "> "},
	"hr":         {Block: true, Open: "---"},
	"br":         {Open: "\n"},

	preformattedTag: {Block: true, Open: "```\n", Close: "\n```"},
	codeTag:         {Open: "`", Close: "`"},

	orderedListTag:   {Block: true, Indent: true, IndentText: "    "},
	unorderedListTag: {Block: true, Indent: true, IndentText: "    "},
	orderedItemTag:   {Block: true, Open: "1. "},
	unorderedItemTag: {Block: true, Open: "* "},

	"b":      {Open: "**", Close: "**"},
	"strong": {Open: "**", Close: "**"},
	"i":      {Open: "*", Close: "*"},
	"em":     {Open: "*", Close: "*"},

	"a": {Attrs: []AttrRule{
		{Key: TextAttr, Open: "[", Close: "]"},
		{Key: "href", Open: "(", Close: ")"},
	}},
	"img": {Attrs: []AttrRule{
		{Key: "alt", Open: "![", Close: "]"},
		{Key: "src", Open: "(", Close: ")"},
	}},
}

// plainTags strips all markup and keeps only text with block spacing.
var plainTags = map[string]TagSpec{
	"p":          {Block: true},
	"h1":         {Block: true},
	"h2":         {Block: true},
	"h3":         {Block: true},
	"h4":         {Block: true},
	"h5":         {Block: true},
	"h6":         {Block: true},
	"blockquote": {Block: true},
	"hr":         {Block: true},
	"br":         {Open: "\n"},

	preformattedTag: {Block: true},
	codeTag:         {},

	orderedListTag:   {Block: true},
	unorderedListTag: {Block: true},
	orderedItemTag:   {Block: true},
	unorderedItemTag: {Block: true},

	"b":      {},
	"strong": {},
	"i":      {},
	"em":     {},

	"a":   {},
	"img": {},
}

var builtinDialects = map[string]Dialect{
	"markdown": dialect{name: "markdown", tags: markdownTags},
	"plain":    dialect{name: "plain", tags: plainTags},
}

// AvailableDialects returns the names of built-in dialects.
func AvailableDialects() []string {
	names := make([]string, 0, len(builtinDialects))
	for name := range builtinDialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DialectByName returns a built-in dialect by name.
func DialectByName(name string) (Dialect, bool) {
	if name == "" {
		return builtinDialects["markdown"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	d, ok := builtinDialects[normalized]
	return d, ok
}

// DefaultDialect returns the built-in Markdown dialect.
func DefaultDialect() Dialect {
	return builtinDialects["markdown"]
}
