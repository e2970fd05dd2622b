package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/htmd"
)

func main() {
	root := "testdata"
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".html") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", root, err)
	}
	if len(paths) == 0 {
		fatalf("no html files found under %s", root)
	}
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		var out bytes.Buffer
		if err := htmd.Convert(htmd.ConvertRequest{
			Reader: bytes.NewReader(src),
			Writer: &out,
		}); err != nil {
			fatalf("convert %s: %v", path, err)
		}
		goldenPath := strings.TrimSuffix(path, ".html") + ".golden"
		if err := os.WriteFile(goldenPath, out.Bytes(), 0o644); err != nil {
			fatalf("write %s: %v", goldenPath, err)
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
