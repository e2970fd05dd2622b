package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/htmd"
	"pkt.systems/version"
)

const (
	defaultDialectName = "markdown"
	fallbackWidth      = 80
)

func init() {
	version.SetDefaultModule("pkt.systems/htmd")
}

func main() {
	var (
		dialectName  string
		listDialects bool
		dropUnknown  bool
		quiet        bool
		wrapFlag     int
		outPath      string
	)

	flags := pflag.NewFlagSet("htmd", pflag.ExitOnError)
	flags.StringVarP(&dialectName, "dialect", "d", defaultDialectName, "Output dialect name")
	flags.BoolVar(&listDialects, "list-dialects", false, "List available dialects")
	flags.BoolVar(&dropUnknown, "drop-unknown", false, "Drop markup of unmapped tags instead of passing it through")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Suppress conversion warnings")
	flags.IntVarP(&wrapFlag, "wrap", "w", 0, "Wrap output at width (0 disables, negative uses terminal width)")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintln(os.Stderr, "Convert HTML to Markdown or another dialect.")
		fmt.Fprintf(os.Stderr, "\nUsage: htmd [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nEach input is a file path or an http(s) URL, concatenated in order.")
		fmt.Fprintln(os.Stderr, "With no inputs, HTML is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if listDialects {
		printDialects()
		return
	}

	dialect, ok := htmd.DialectByName(dialectName)
	if !ok {
		fmt.Fprintf(os.Stderr, "htmd: unknown dialect %q\n\n", dialectName)
		printDialects()
		os.Exit(2)
	}

	if err := run(flags.Args(), dialect, dropUnknown, quiet, wrapFlag, outPath); err != nil {
		fmt.Fprintf(os.Stderr, "htmd: %v\n", err)
		os.Exit(1)
	}
}

func run(inputs []string, dialect htmd.Dialect, dropUnknown, quiet bool, wrapFlag int, outPath string) error {
	in, err := openInputs(inputs)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = in.Close() }()

	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if err := htmd.ValidateInput(src); err != nil {
		return err
	}

	opts := []htmd.ConvertOption{
		htmd.WithDialect(dialect),
		htmd.WithDropUnknown(dropUnknown),
	}
	if !quiet {
		opts = append(opts, htmd.WithDiagnostics(func(d htmd.Diagnostic) {
			fmt.Fprintf(os.Stderr, "htmd: warning: %s\n", describeDiagnostic(d))
		}))
	}

	out, err := htmd.ConvertReader(bytes.NewReader(src), opts...)
	if err != nil {
		return err
	}

	if width := resolveWrap(wrapFlag); width > 0 {
		out = wordwrap.String(out, width)
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
	}

	w, err := openOutput(outPath)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer func() { _ = w.Close() }()
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func describeDiagnostic(d htmd.Diagnostic) string {
	switch d.Issue {
	case htmd.IssueUnknownTag:
		return fmt.Sprintf("unknown tag <%s>", d.Tag)
	case htmd.IssueMismatchedClose:
		return fmt.Sprintf("mismatched close </%s>", d.Tag)
	case htmd.IssueUnclosedTag:
		return fmt.Sprintf("unclosed tag <%s>", d.Tag)
	default:
		return fmt.Sprintf("tag <%s>", d.Tag)
	}
}

func printDialects() {
	for _, name := range htmd.AvailableDialects() {
		fmt.Fprintln(os.Stdout, name)
	}
}

func resolveWrap(width int) int {
	switch {
	case width == 0:
		return 0
	case width > 0:
		return width
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil && w > 0 {
			return w
		}
	}
	return fallbackWidth
}

// sourceOpener defers opening an input until the reader reaches it, so a
// missing second file is not touched before the first is fully consumed.
type sourceOpener func() (io.ReadCloser, error)

// catReader concatenates a series of lazily opened inputs.
type catReader struct {
	openers []sourceOpener
	cur     io.ReadCloser
	done    bool
}

func (c *catReader) Read(p []byte) (int, error) {
	for {
		if c.done {
			return 0, io.EOF
		}
		if c.cur == nil {
			if len(c.openers) == 0 {
				c.done = true
				return 0, io.EOF
			}
			rc, err := c.openers[0]()
			if err != nil {
				return 0, err
			}
			c.openers = c.openers[1:]
			c.cur = rc
		}
		n, err := c.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			_ = c.cur.Close()
			c.cur = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (c *catReader) Close() error {
	c.done = true
	if c.cur != nil {
		return c.cur.Close()
	}
	return nil
}

func openInputs(args []string) (io.ReadCloser, error) {
	if len(args) == 0 {
		return io.NopCloser(os.Stdin), nil
	}
	openers := make([]sourceOpener, 0, len(args))
	for _, raw := range args {
		opener, err := resolveInput(raw)
		if err != nil {
			return nil, err
		}
		openers = append(openers, opener)
	}
	return &catReader{openers: openers}, nil
}

func resolveInput(raw string) (sourceOpener, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty input argument")
	}
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return func() (io.ReadCloser, error) { return fetchURL(raw) }, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return func() (io.ReadCloser, error) { return os.Open(expandPath(path)) }, nil
		}
	}
	return func() (io.ReadCloser, error) { return os.Open(expandPath(raw)) }, nil
}

func fetchURL(raw string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("get %s: %s", raw, resp.Status)
	}
	return resp.Body, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if strings.TrimSpace(path) == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	clean := expandPath(path)
	if dir := filepath.Dir(clean); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(clean)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
