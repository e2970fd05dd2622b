package htmd

import "testing"

func TestReconstructOpenTag(t *testing.T) {
	got := reconstructOpenTag("span", []Attr{
		{Key: "class", Value: "x"},
		{Key: "data-v", Value: `a"b`},
	})
	want := `<span class="x" data-v="a&#34;b">`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReconstructOpenTagNoAttrs(t *testing.T) {
	if got := reconstructOpenTag("span", nil); got != "<span>" {
		t.Fatalf("got %q", got)
	}
}

func TestReconstructCloseTag(t *testing.T) {
	if got := reconstructCloseTag("span"); got != "</span>" {
		t.Fatalf("got %q", got)
	}
}
