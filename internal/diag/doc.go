// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string ID (LEX1001, SYN2005, ...), a short Message, the Primary span and
// optional Notes pointing at related locations.
//
// Producers emit through a Reporter (usually via ReportError and a
// ReportBuilder); BagReporter collects into a Bag, which supports limits,
// sorting, deduplication and merging.
//
// The package performs no IO and no formatting beyond FormatShortDiagnostics,
// a single-line-per-entry rendering used by tests and the quiet CLI mode.
// Terminal and JSON rendering live in internal/diagfmt.
//
// The type lowering in internal/hir never reports: a malformed type becomes an
// Error node there, and the diagnostic (if any) was already produced by the
// parser.
package diag
