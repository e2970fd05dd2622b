package htmd

// Attr is one tag attribute in source order.
type Attr struct {
	Key   string
	Value string
}

// Event is a single markup-parse event.
type Event struct {
	Kind  EventKind
	Name  string // tag name, open and close events
	Attrs []Attr // ordered attributes, open events
	Text  string // text content, text events
}

// EventKind classifies an Event.
type EventKind uint8

const (
	// EventOpen marks the opening of a tag.
	EventOpen EventKind = iota
	// EventText carries a run of character data.
	EventText
	// EventClose marks the closing of a tag.
	EventClose
)

// EventSource yields an ordered markup event sequence. Next returns io.EOF
// when the sequence is exhausted.
type EventSource interface {
	Next() (Event, error)
}

func attrValue(attrs []Attr, key string) (string, bool) {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}
