package diag

import (
	"fmt"
	"strings"
)

// Severity orders diagnostics: Info < Warning < Error.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// AtLeast reports whether s is floor or more severe.
func (s Severity) AtLeast(floor Severity) bool { return s >= floor }

// ParseSeverity maps a --min-severity value (case-insensitive, "warn" allowed).
func ParseSeverity(text string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "INFO", "":
		return SevInfo, nil
	case "WARNING", "WARN":
		return SevWarning, nil
	case "ERROR":
		return SevError, nil
	}
	return SevInfo, fmt.Errorf("unknown severity %q (want info|warning|error)", text)
}
