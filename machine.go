package htmd

import (
	"io"
	"strings"
)

// Issue classifies a non-fatal conversion diagnostic.
type Issue uint8

const (
	// IssueUnknownTag reports a tag name absent from the dialect table.
	IssueUnknownTag Issue = iota + 1
	// IssueMismatchedClose reports a close event that does not match the
	// most recently opened tag.
	IssueMismatchedClose
	// IssueUnclosedTag reports a tag still open at end of input; a close
	// event is synthesized for it.
	IssueUnclosedTag
)

// Diagnostic describes a non-fatal irregularity observed while rendering.
// Diagnostics never change the best-effort output.
type Diagnostic struct {
	Issue Issue
	Tag   string
}

type tagKind uint8

const (
	tagGeneric tagKind = iota
	tagItem
	tagOrderedList
	tagUnorderedList
	tagPreformatted
	tagCode
)

// classifyTag resolves the special-cased tag names once, at the lookup
// boundary; the handlers switch on the kind afterwards.
func classifyTag(name string) tagKind {
	switch name {
	case itemTag:
		return tagItem
	case orderedListTag:
		return tagOrderedList
	case unorderedListTag:
		return tagUnorderedList
	case preformattedTag:
		return tagPreformatted
	case codeTag:
		return tagCode
	default:
		return tagGeneric
	}
}

type listKind uint8

const (
	listOrdered listKind = iota
	listUnordered
)

type indentLevel struct {
	tag  string
	unit string
}

// resolvedTag is the open-event result threaded to the text handler, so the
// text handler never reads a spec it was not handed.
type resolvedTag struct {
	spec TagSpec
	kind tagKind
	ok   bool
}

// machine is one render session. All state lives for a single conversion
// call and is fully reset at both call boundaries.
type machine struct {
	dialect     Dialect
	passthrough bool
	diag        func(Diagnostic)

	frags         []string // accumulating output fragments
	openTags      []string
	listKinds     []listKind
	indentTags    []indentLevel
	spliceTags    []string
	spliceAt      int
	suppressClose bool
	itemTrim      int

	fragsArr      [128]string
	openTagsArr   [32]string
	listKindsArr  [8]listKind
	indentTagsArr [8]indentLevel
	spliceTagsArr [8]string
}

func (m *machine) Reset(d Dialect, cfg convertConfig) {
	if d == nil {
		d = DefaultDialect()
	}
	m.dialect = d
	m.passthrough = !cfg.dropUnknown
	m.diag = cfg.diagnostics
	m.frags = m.fragsArr[:0]
	m.openTags = m.openTagsArr[:0]
	m.listKinds = m.listKindsArr[:0]
	m.indentTags = m.indentTagsArr[:0]
	m.spliceTags = m.spliceTagsArr[:0]
	m.spliceAt = 0
	m.suppressClose = false
	m.itemTrim = 0
}

func (m *machine) report(issue Issue, tag string) {
	if m.diag != nil {
		m.diag(Diagnostic{Issue: issue, Tag: tag})
	}
}

func (m *machine) run(src EventSource) error {
	var cur resolvedTag
	for {
		ev, err := src.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch ev.Kind {
		case EventOpen:
			cur = m.handleOpen(ev.Name, ev.Attrs, cur)
		case EventText:
			m.handleText(cur, ev.Text)
		case EventClose:
			m.handleClose(ev.Name)
		}
	}
}

func (m *machine) splicing() bool { return len(m.spliceTags) > 0 }

// emit places a fragment at the splice cursor while deferred insertion is
// active, otherwise appends.
func (m *machine) emit(frag string) {
	if frag == "" {
		return
	}
	if m.splicing() {
		m.insertAt(m.spliceAt, frag)
		m.spliceAt++
		return
	}
	m.frags = append(m.frags, frag)
}

// push always appends, bypassing the splice cursor. Attribute markers and
// values belong after the deferred text slot even while it is open.
func (m *machine) push(frag string) {
	if frag == "" {
		return
	}
	m.frags = append(m.frags, frag)
}

func (m *machine) insertAt(i int, frag string) {
	if i < 0 {
		i = 0
	}
	if i >= len(m.frags) {
		m.frags = append(m.frags, frag)
		return
	}
	m.frags = append(m.frags, "")
	copy(m.frags[i+1:], m.frags[i:])
	m.frags[i] = frag
}

func (m *machine) lastFrag() string {
	if len(m.frags) == 0 {
		return ""
	}
	return m.frags[len(m.frags)-1]
}

// trailingNewlines counts line breaks at the end of the buffer, up to max.
func (m *machine) trailingNewlines(max int) int {
	count := 0
	for i := len(m.frags) - 1; i >= 0 && count < max; i-- {
		frag := m.frags[i]
		for j := len(frag) - 1; j >= 0; j-- {
			if frag[j] != '\n' {
				return count
			}
			count++
			if count == max {
				return count
			}
		}
	}
	return count
}

// blockSeparator tops the buffer up to a blank-line separator, or to a
// single line break inside an indented context. An empty buffer needs no
// separator.
func (m *machine) blockSeparator() {
	if len(m.frags) == 0 {
		return
	}
	want := 2
	if len(m.indentTags) > 0 {
		want = 1
	}
	for have := m.trailingNewlines(want); have < want; have++ {
		m.push("\n")
	}
}

func (m *machine) topOpen() string {
	if len(m.openTags) == 0 {
		return ""
	}
	return m.openTags[len(m.openTags)-1]
}

// effectiveItem maps the generic item tag to the variant of its nearest
// enclosing list container.
func (m *machine) effectiveItem() string {
	if n := len(m.listKinds); n > 0 && m.listKinds[n-1] == listOrdered {
		return orderedItemTag
	}
	return unorderedItemTag
}

func (m *machine) handleOpen(name string, attrs []Attr, prev resolvedTag) resolvedTag {
	lookup := name
	kind := classifyTag(name)

	if kind == tagItem {
		if len(m.listKinds) > 0 {
			lookup = m.effectiveItem()
		}
		m.itemTrim++
	}

	// A code tag directly inside a preformatted tag renders as one
	// code-block unit. The check is deliberately shallow.
	collapse := false
	if kind == tagCode && m.topOpen() == preformattedTag {
		lookup = preformattedTag
		collapse = true
	}

	spec, ok := m.dialect.Resolve(lookup)
	if !ok {
		m.report(IssueUnknownTag, name)
		if m.passthrough {
			m.emit(reconstructOpenTag(name, attrs))
		}
		return prev
	}

	m.openTags = append(m.openTags, name)
	switch kind {
	case tagOrderedList:
		m.listKinds = append(m.listKinds, listOrdered)
	case tagUnorderedList:
		m.listKinds = append(m.listKinds, listUnordered)
	}

	if collapse {
		m.suppressClose = true
		if n := len(m.frags); n > 0 && m.frags[n-1] == spec.Open {
			m.frags = m.frags[:n-1]
		}
	}

	if spec.Block {
		m.blockSeparator()
	}

	if n := len(m.indentTags); n > 0 {
		if unit := m.indentTags[n-1].unit; unit != "" {
			m.emit(strings.Repeat(unit, n))
		}
	}
	if spec.Indent {
		// The outermost list level carries no indent of its own; only
		// nested levels do. Non-list indentables always push.
		nested := len(m.listKinds) > 1
		if kind != tagOrderedList && kind != tagUnorderedList {
			nested = true
		}
		if nested {
			m.indentTags = append(m.indentTags, indentLevel{tag: name, unit: spec.IndentText})
		}
	}

	m.emit(spec.Open)

	for _, rule := range spec.Attrs {
		m.push(rule.Open)
		if rule.Key == TextAttr {
			// The tag's own text arrives later but must render here,
			// before the remaining attribute markers: start deferred
			// insertion at the current buffer position.
			m.spliceAt = len(m.frags)
			m.spliceTags = append(m.spliceTags, name)
		} else if value, found := attrValue(attrs, rule.Key); found {
			m.push(value)
		}
		m.push(rule.Close)
	}

	return resolvedTag{spec: spec, kind: kind, ok: true}
}

func (m *machine) handleText(cur resolvedTag, value string) {
	if value == "" {
		return
	}
	// A block opener may have been consumed by collapsing; restore it when
	// the buffer sits at a block boundary without one.
	if cur.ok && cur.spec.Block && cur.spec.Open != "" && !m.splicing() && !m.suppressClose {
		if m.atBlockBoundary() && m.lastFrag() != cur.spec.Open {
			m.push(cur.spec.Open)
		}
	}
	if m.splicing() {
		if m.itemTrim > 0 {
			value = stripLineBreaks(value)
			if value == "" {
				return
			}
		}
		m.insertAt(m.spliceAt, value)
		m.spliceAt++
		return
	}
	if m.itemTrim > 0 || (value == "\n" && m.trailingNewlines(1) > 0) {
		value = stripLineBreaks(value)
		if value == "" {
			return
		}
	}
	m.frags = append(m.frags, value)
}

func (m *machine) atBlockBoundary() bool {
	return len(m.frags) == 0 || m.trailingNewlines(1) > 0
}

func (m *machine) handleClose(name string) {
	kind := classifyTag(name)
	lookup := name

	if kind == tagItem {
		// The item closes before its container, so the container kind is
		// still on the stack here.
		if len(m.listKinds) > 0 {
			lookup = m.effectiveItem()
		}
		if m.itemTrim > 0 {
			m.itemTrim--
		}
	}

	spec, ok := m.dialect.Resolve(lookup)
	if !ok {
		m.report(IssueUnknownTag, name)
		if m.passthrough {
			m.emit(reconstructCloseTag(name))
		}
		return
	}

	if kind == tagOrderedList || kind == tagUnorderedList {
		if n := len(m.listKinds); n > 0 {
			m.listKinds = m.listKinds[:n-1]
		}
	}

	if !m.suppressClose && spec.Close != "" {
		m.emit(spec.Close)
	}

	if spec.Indent {
		if n := len(m.indentTags); n > 0 && m.indentTags[n-1].tag == name {
			m.indentTags = m.indentTags[:n-1]
		}
	}

	if n := len(m.spliceTags); n > 0 && m.spliceTags[n-1] == name {
		m.spliceTags = m.spliceTags[:n-1]
	}

	if spec.Block {
		m.blockSeparator()
	}

	if n := len(m.openTags); n > 0 && m.openTags[n-1] == name {
		m.openTags = m.openTags[:n-1]
	} else {
		m.report(IssueMismatchedClose, name)
	}

	// Suppression is strictly one close event wide.
	m.suppressClose = false
}

// finish synthesizes close events for anything left open, most recently
// opened first, then joins and cleans the buffer.
func (m *machine) finish() string {
	for len(m.openTags) > 0 {
		name := m.openTags[len(m.openTags)-1]
		m.report(IssueUnclosedTag, name)
		before := len(m.openTags)
		m.handleClose(name)
		if len(m.openTags) == before {
			m.openTags = m.openTags[:before-1]
		}
	}
	return m.finalize()
}

// finalize joins the fragments, collapsing runs of spaces to a single space
// and dropping spaces that directly precede a line break. Line-leading
// spaces are indentation and pass through untouched, but only when content
// follows on the same line; a break drops them like any other space.
func (m *machine) finalize() string {
	total := 0
	for _, frag := range m.frags {
		total += len(frag)
	}
	var b strings.Builder
	b.Grow(total)
	pendingSpace := false
	leading := 0
	atLineStart := true
	for _, frag := range m.frags {
		for i := 0; i < len(frag); i++ {
			switch c := frag[i]; c {
			case ' ':
				if atLineStart {
					leading++
				} else {
					pendingSpace = true
				}
			case '\n':
				pendingSpace = false
				leading = 0
				atLineStart = true
				b.WriteByte('\n')
			default:
				for ; leading > 0; leading-- {
					b.WriteByte(' ')
				}
				if pendingSpace {
					b.WriteByte(' ')
					pendingSpace = false
				}
				atLineStart = false
				b.WriteByte(c)
			}
		}
	}
	for ; leading > 0; leading-- {
		b.WriteByte(' ')
	}
	if pendingSpace {
		b.WriteByte(' ')
	}
	return b.String()
}

func stripLineBreaks(s string) string {
	if !strings.ContainsRune(s, '\n') {
		return s
	}
	return strings.ReplaceAll(s, "\n", "")
}
