// Package testinglib classifies DOM Testing Library constructs: query
// variants by naming convention, presence/absence assertions around
// expect(...), and scoping helpers like within(...).
package testinglib

import (
	"regexp"
	"strings"
)

// synchronized query variants: getBy*/queryBy* (and the All forms) share a
// common suffix and differ only in the variant marker. findBy* is async and
// has no synchronized counterpart, so it never matches.
var queryVariantRe = regexp.MustCompile(`^(get|query)(All)?By[A-Z]\w*$`)

// IsSynchronizedQuery reports whether name is a query with both a
// presence-style and an absence-style counterpart.
func IsSynchronizedQuery(name string) bool {
	return queryVariantRe.MatchString(name)
}

// IsPresenceQuery reports whether name is the presence-style (getBy*)
// variant of a synchronized query.
func IsPresenceQuery(name string) bool {
	return IsSynchronizedQuery(name) && strings.HasPrefix(name, "get")
}

// IsAbsenceQuery reports whether name is the absence-style (queryBy*)
// variant of a synchronized query.
func IsAbsenceQuery(name string) bool {
	return IsSynchronizedQuery(name) && strings.HasPrefix(name, "query")
}

// VariantTarget returns the counterpart name of a synchronized query:
// getAllByRole -> queryAllByRole, queryByText -> getByText. The marker is
// swapped structurally (leading variant prefix, suffix preserved); names
// without a marker are returned unchanged.
func VariantTarget(name string) string {
	switch {
	case strings.HasPrefix(name, "get"):
		return "query" + strings.TrimPrefix(name, "get")
	case strings.HasPrefix(name, "query"):
		return "get" + strings.TrimPrefix(name, "query")
	}
	return name
}
