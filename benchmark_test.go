package htmd

import (
	"bytes"
	"io"
	"os"
	"testing"
)

func BenchmarkConvertSample(b *testing.B) {
	data, err := os.ReadFile("testdata/sample.html")
	if err != nil {
		b.Fatalf("read: %v", err)
	}
	b.ReportAllocs()
	reader := bytes.NewReader(data)
	for i := 0; i < b.N; i++ {
		reader.Reset(data)
		_ = Convert(ConvertRequest{
			Reader: reader,
			Writer: io.Discard,
		})
	}
}

func BenchmarkConvertStringInline(b *testing.B) {
	const src = `<p>see <a href="https://example.com"><b>docs</b></a> for <i>more</i></p>`
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = ConvertString(src)
	}
}
