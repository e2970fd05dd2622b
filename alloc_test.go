package htmd

import (
	"os"
	"testing"
)

func TestConvertAllocations(t *testing.T) {
	src, err := os.ReadFile("testdata/sample.html")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	doc := string(src)
	allocs := testing.AllocsPerRun(100, func() {
		_, _ = ConvertString(doc)
	})
	if allocs > 600 {
		t.Fatalf("too many allocations per conversion: got %.2f", allocs)
	}
}
