package htmd

import (
	"io"
	"strings"
	"testing"

	"github.com/go-test/deep"
)

func collectEvents(t *testing.T, src string) []Event {
	t.Helper()
	h := newHTMLEvents(strings.NewReader(src))
	var events []Event
	for {
		ev, err := h.Next()
		if err == io.EOF {
			return events
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		events = append(events, ev)
	}
}

func TestTokenizerBasicEvents(t *testing.T) {
	got := collectEvents(t, `<p>hi</p>`)
	want := []Event{
		{Kind: EventOpen, Name: "p"},
		{Kind: EventText, Text: "hi"},
		{Kind: EventClose, Name: "p"},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Fatalf("events differ: %v", diff)
	}
}

func TestTokenizerCarriesAttributes(t *testing.T) {
	got := collectEvents(t, `<a href="u" title="x">t</a>`)
	want := []Event{
		{Kind: EventOpen, Name: "a", Attrs: []Attr{
			{Key: "href", Value: "u"},
			{Key: "title", Value: "x"},
		}},
		{Kind: EventText, Text: "t"},
		{Kind: EventClose, Name: "a"},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Fatalf("events differ: %v", diff)
	}
}

func TestTokenizerStripsLineStructure(t *testing.T) {
	got := collectEvents(t, "<p>\n\thi\r\n</p>")
	want := []Event{
		{Kind: EventOpen, Name: "p"},
		{Kind: EventText, Text: "hi"},
		{Kind: EventClose, Name: "p"},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Fatalf("events differ: %v", diff)
	}
}

func TestTokenizerSynthesizesVoidClose(t *testing.T) {
	got := collectEvents(t, `<p>a<br>b</p>`)
	want := []Event{
		{Kind: EventOpen, Name: "p"},
		{Kind: EventText, Text: "a"},
		{Kind: EventOpen, Name: "br"},
		{Kind: EventClose, Name: "br"},
		{Kind: EventText, Text: "b"},
		{Kind: EventClose, Name: "p"},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Fatalf("events differ: %v", diff)
	}
}

func TestTokenizerSelfClosingTag(t *testing.T) {
	got := collectEvents(t, `<hr/>`)
	want := []Event{
		{Kind: EventOpen, Name: "hr"},
		{Kind: EventClose, Name: "hr"},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Fatalf("events differ: %v", diff)
	}
}

func TestTokenizerIgnoresExplicitVoidClose(t *testing.T) {
	got := collectEvents(t, `<p>a<br></br>b</p>`)
	want := []Event{
		{Kind: EventOpen, Name: "p"},
		{Kind: EventText, Text: "a"},
		{Kind: EventOpen, Name: "br"},
		{Kind: EventClose, Name: "br"},
		{Kind: EventText, Text: "b"},
		{Kind: EventClose, Name: "p"},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Fatalf("events differ: %v", diff)
	}
}

func TestTokenizerSkipsCommentsAndDoctype(t *testing.T) {
	got := collectEvents(t, "<!DOCTYPE html><!-- note --><p>hi</p>")
	want := []Event{
		{Kind: EventOpen, Name: "p"},
		{Kind: EventText, Text: "hi"},
		{Kind: EventClose, Name: "p"},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Fatalf("events differ: %v", diff)
	}
}

func TestTokenizerDecodesEntities(t *testing.T) {
	got := collectEvents(t, `<p>a &amp; b</p>`)
	want := []Event{
		{Kind: EventOpen, Name: "p"},
		{Kind: EventText, Text: "a & b"},
		{Kind: EventClose, Name: "p"},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Fatalf("events differ: %v", diff)
	}
}
