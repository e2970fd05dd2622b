package htmd

// ConvertOption customizes a conversion.
type ConvertOption func(*convertConfig)

type convertConfig struct {
	dialect     Dialect
	dropUnknown bool
	diagnostics func(Diagnostic)
}

// WithDialect selects the target dialect. The default is Markdown.
func WithDialect(d Dialect) ConvertOption {
	return func(cfg *convertConfig) {
		cfg.dialect = d
	}
}

// WithDropUnknown drops the markup of tags the dialect does not map instead
// of passing it through literally. Their text content renders either way.
func WithDropUnknown(drop bool) ConvertOption {
	return func(cfg *convertConfig) {
		cfg.dropUnknown = drop
	}
}

// WithDiagnostics registers a callback for non-fatal irregularities such as
// unknown tags, mismatched closes and tags left open at end of input.
func WithDiagnostics(fn func(Diagnostic)) ConvertOption {
	return func(cfg *convertConfig) {
		cfg.diagnostics = fn
	}
}
