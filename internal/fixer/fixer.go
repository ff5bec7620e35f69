// Package fixer applies the text edits carried by lint issues to source
// files.
package fixer

import (
	"fmt"
	"os"
	"sort"

	tt "github.com/guicamillo/eslint-plugin-testing-library/internal/types"
)

type Fixer struct {
	DryRun        bool
	MinConfidence float64 // threshold for fixing issues
}

func New(dryRun bool, threshold float64) *Fixer {
	return &Fixer{
		DryRun:        dryRun,
		MinConfidence: threshold,
	}
}

// Fix applies the fixable issues of one file in place.
func (f *Fixer) Fix(filename string, issues []tt.Issue) error {
	var edits []tt.TextEdit
	for _, issue := range issues {
		if issue.Confidence < f.MinConfidence || len(issue.Fixes) == 0 {
			continue
		}
		if f.DryRun {
			fmt.Printf("Would fix issue in %s at line %d: %s\n", filename, issue.Start.Line, issue.Message)
			if issue.Note != "" {
				fmt.Printf("  %s\n", issue.Note)
			}
			continue
		}
		edits = append(edits, issue.Fixes...)
	}

	if f.DryRun || len(edits) == 0 {
		return nil
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	fixed, err := Apply(content, edits)
	if err != nil {
		return fmt.Errorf("failed to fix %s: %w", filename, err)
	}

	if err := os.WriteFile(filename, fixed, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Fixed issues in %s\n", filename)
	return nil
}

// Apply splices the edits into src. Edits are applied bottom-up so earlier
// offsets stay valid; overlapping edits are skipped after the first.
func Apply(src []byte, edits []tt.TextEdit) ([]byte, error) {
	sorted := make([]tt.TextEdit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start > sorted[j].Start
		}
		return sorted[i].End > sorted[j].End
	})

	out := src
	lastStart := uint32(len(src)) + 1
	for _, e := range sorted {
		if e.Start > e.End || int(e.End) > len(src) {
			return nil, fmt.Errorf("edit range [%d,%d) out of bounds", e.Start, e.End)
		}
		if e.End > lastStart {
			// overlaps an already applied edit
			continue
		}
		patched := make([]byte, 0, len(out)-int(e.End-e.Start)+len(e.NewText))
		patched = append(patched, out[:e.Start]...)
		patched = append(patched, e.NewText...)
		patched = append(patched, out[e.End:]...)
		out = patched
		lastStart = e.Start
	}
	return out, nil
}
