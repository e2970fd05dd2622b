package htmd

import (
	"sort"
	"testing"
)

func TestDialectByName(t *testing.T) {
	for _, name := range []string{"markdown", "plain", "MARKDOWN", " plain "} {
		if _, ok := DialectByName(name); !ok {
			t.Fatalf("expected dialect %q to be available", name)
		}
	}
	if _, ok := DialectByName("latex"); ok {
		t.Fatal("expected unknown dialect to be rejected")
	}
	d, ok := DialectByName("")
	if !ok || d.Name() != "markdown" {
		t.Fatalf("expected empty name to default to markdown, got %v %v", d, ok)
	}
}

func TestAvailableDialectsSorted(t *testing.T) {
	names := AvailableDialects()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("expected sorted names, got %v", names)
	}
	present := make(map[string]struct{}, len(names))
	for _, name := range names {
		present[name] = struct{}{}
	}
	for _, name := range []string{"markdown", "plain"} {
		if _, ok := present[name]; !ok {
			t.Fatalf("expected dialect %q in available list", name)
		}
	}
}

func TestDefaultDialectResolvesCoreTags(t *testing.T) {
	d := DefaultDialect()
	for _, tag := range []string{"p", "h1", "h6", "blockquote", "hr", "br", "pre", "code", "ol", "ul", "ol>li", "ul>li", "b", "strong", "i", "em", "a", "img"} {
		if _, ok := d.Resolve(tag); !ok {
			t.Fatalf("expected %q in default dialect", tag)
		}
	}
	if _, ok := d.Resolve("li"); ok {
		t.Fatal("bare item tag should resolve through its list container")
	}
}

func TestNewDialect(t *testing.T) {
	d := NewDialect("tiny", map[string]TagSpec{
		"b": {Open: "<<", Close: ">>"},
	})
	if d.Name() != "tiny" {
		t.Fatalf("got name %q", d.Name())
	}
	got, err := ConvertString(`<b>x</b>`, WithDialect(d))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got != "<<x>>" {
		t.Fatalf("got %q", got)
	}
}
