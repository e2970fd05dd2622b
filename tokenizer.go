package htmd

import (
	"io"

	"golang.org/x/net/html"
)

// voidTags never carry content in source markup; the tokenizer synthesizes a
// close event right after their open event so the render machine sees a
// balanced stream.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "source": true, "track": true,
	"wbr": true,
}

// htmlEvents adapts golang.org/x/net/html's tokenizer to an EventSource.
type htmlEvents struct {
	z       *html.Tokenizer
	pending []Event // synthesized closes for void and self-closing tags

	pendingArr [2]Event
}

// newHTMLEvents tokenizes HTML from r. Line breaks, tabs and carriage
// returns are stripped before tokenization; source markup line structure
// carries no meaning, only tags do.
func newHTMLEvents(r io.Reader) *htmlEvents {
	h := &htmlEvents{z: html.NewTokenizer(&markupStripper{r: r})}
	h.pending = h.pendingArr[:0]
	return h
}

func (h *htmlEvents) Next() (Event, error) {
	if len(h.pending) > 0 {
		ev := h.pending[0]
		h.pending = h.pending[:copy(h.pending, h.pending[1:])]
		return ev, nil
	}
	for {
		switch h.z.Next() {
		case html.ErrorToken:
			err := h.z.Err()
			if err == nil {
				err = io.EOF
			}
			return Event{}, err
		case html.TextToken:
			text := string(h.z.Text())
			if text == "" {
				continue
			}
			return Event{Kind: EventText, Text: text}, nil
		case html.StartTagToken:
			name, attrs := h.tagWithAttrs()
			if voidTags[name] {
				h.pending = append(h.pending, Event{Kind: EventClose, Name: name})
			}
			return Event{Kind: EventOpen, Name: name, Attrs: attrs}, nil
		case html.SelfClosingTagToken:
			name, attrs := h.tagWithAttrs()
			h.pending = append(h.pending, Event{Kind: EventClose, Name: name})
			return Event{Kind: EventOpen, Name: name, Attrs: attrs}, nil
		case html.EndTagToken:
			name, _ := h.z.TagName()
			tag := string(name)
			if voidTags[tag] {
				// already synthesized at the open
				continue
			}
			return Event{Kind: EventClose, Name: tag}, nil
		case html.CommentToken, html.DoctypeToken:
			continue
		}
	}
}

func (h *htmlEvents) tagWithAttrs() (string, []Attr) {
	name, hasAttr := h.z.TagName()
	tag := string(name)
	if !hasAttr {
		return tag, nil
	}
	var attrs []Attr
	for {
		key, val, more := h.z.TagAttr()
		attrs = append(attrs, Attr{Key: string(key), Value: string(val)})
		if !more {
			break
		}
	}
	return tag, attrs
}

// markupStripper removes line breaks, tabs and carriage returns from a
// source stream before tokenization.
type markupStripper struct {
	r io.Reader
}

func (m *markupStripper) Read(p []byte) (int, error) {
	for {
		n, err := m.r.Read(p)
		kept := 0
		for i := 0; i < n; i++ {
			switch p[i] {
			case '\n', '\t', '\r':
			default:
				p[kept] = p[i]
				kept++
			}
		}
		if kept > 0 || err != nil {
			return kept, err
		}
	}
}
