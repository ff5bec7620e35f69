package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Severity levels for lint issues.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// MarshalYAML implements the yaml.Marshaler interface.
func (s Severity) MarshalYAML() (interface{}, error) {
	return strings.ToLower(s.String()), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface, accepting
// the lowercase names used in configuration files.
func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(value.Value) {
	case "error":
		*s = SeverityError
	case "warning", "warn":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	case "off":
		*s = SeverityOff
	default:
		return fmt.Errorf("unknown severity: %q", value.Value)
	}
	return nil
}

// ConfigRule is the per-rule configuration entry.
// Options carries rule-specific boolean toggles (e.g. the presence/absence
// checks of prefer-presence-queries).
type ConfigRule struct {
	Severity Severity        `yaml:"severity"`
	Options  map[string]bool `yaml:"options,omitempty"`
}

// Position is a location in a linted source file. Line and Column are
// 1-based; Offset is the byte offset in the file.
type Position struct {
	Filename string `json:"filename,omitempty"`
	Offset   int    `json:"offset"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// TextEdit replaces the source bytes in [Start, End) with NewText.
type TextEdit struct {
	Start   uint32 `json:"start"`
	End     uint32 `json:"end"`
	NewText string `json:"newText"`
}

// Issue represents a lint issue found in the code base.
type Issue struct {
	Rule       string     `json:"rule"`
	Category   string     `json:"category,omitempty"`
	Filename   string     `json:"filename"`
	Message    string     `json:"message"`
	Suggestion string     `json:"suggestion,omitempty"`
	Note       string     `json:"note,omitempty"`
	Start      Position   `json:"start"`
	End        Position   `json:"end"`
	Severity   Severity   `json:"severity"`
	Confidence float64    `json:"confidence,omitempty"`
	Fixes      []TextEdit `json:"fixes,omitempty"`
}

// SourceCode stores the content of a source code file, line by line.
type SourceCode struct {
	Lines []string
}
