// Package version orders dependency version strings.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3. Maven allows
// arbitrary qualifiers such as "r09" or "Final" that semver cannot parse;
// those sort after every parseable version, lexically among themselves.
package version

import (
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// Compare returns -1, 0 or 1 when a sorts before, equal to, or after b.
// The order is total: parseable versions first by semver precedence, then
// unparseable ones, with lexical order breaking every remaining tie.
func Compare(a, b string) int {
	if a == b {
		return 0
	}
	va, errA := mm.NewVersion(a)
	vb, errB := mm.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		if c := va.Compare(vb); c != 0 {
			return c
		}
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// Less reports whether a sorts before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}
