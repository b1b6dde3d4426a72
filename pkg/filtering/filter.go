// Package filtering implements the include/exclude glob patterns that
// scope which catalog assets an ingestion run processes.
package filtering

import (
	"fmt"
	"path/filepath"

	"github.com/opencatalog/ingestkit/pkg/validation"
)

// AssetKind identifies the kind of catalog asset a filter pattern
// applies to.
type AssetKind string

// Asset kinds that can be scoped by filter patterns.
const (
	AssetTable     AssetKind = "table"
	AssetSchema    AssetKind = "schema"
	AssetDashboard AssetKind = "dashboard"
	AssetChart     AssetKind = "chart"
	AssetTopic     AssetKind = "topic"
)

// KnownAssetKinds lists every supported asset kind in display order.
var KnownAssetKinds = []AssetKind{AssetTable, AssetSchema, AssetDashboard, AssetChart, AssetTopic}

// IsKnownAssetKind reports whether the kind is one of KnownAssetKinds.
func IsKnownAssetKind(kind AssetKind) bool {
	for _, k := range KnownAssetKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// FilterPattern is a pair of glob pattern sets. An empty set means no
// filtering on that side; when both sides are present they are applied
// include-then-exclude.
type FilterPattern struct {
	Includes []string `json:"includes,omitempty" yaml:"includes,omitempty"`
	Excludes []string `json:"excludes,omitempty" yaml:"excludes,omitempty"`
}

// IsEmpty reports whether the pattern applies no filtering at all.
func (p FilterPattern) IsEmpty() bool {
	return len(p.Includes) == 0 && len(p.Excludes) == 0
}

// Matcher is a compiled filter pattern. Compilation checks every glob
// up front, so a bad pattern surfaces before any scanning begins rather
// than in the middle of a run.
type Matcher struct {
	includes []string
	excludes []string
}

// MatchAll is the compiled form of the empty pattern: every name passes.
var MatchAll = &Matcher{}

// Compile validates the pattern's globs and returns a matcher. Every
// invalid glob is reported, addressed by its position in the pattern.
func Compile(pattern FilterPattern) (*Matcher, validation.ErrorList) {
	var errs validation.ErrorList

	checkGlobs := func(globs []string, side string) {
		for i, glob := range globs {
			// filepath.Match only reports syntax errors, which is what
			// compilation needs to establish.
			if _, err := filepath.Match(glob, ""); err != nil {
				errs = append(errs, &validation.ValidationError{
					Code:    validation.CodeInvalidPattern,
					Field:   fmt.Sprintf("%s[%d]", side, i),
					Message: fmt.Sprintf("invalid glob pattern %q: %v", glob, err),
				})
			}
		}
	}
	checkGlobs(pattern.Includes, "includes")
	checkGlobs(pattern.Excludes, "excludes")

	if len(errs) > 0 {
		return nil, errs
	}
	return &Matcher{
		includes: pattern.Includes,
		excludes: pattern.Excludes,
	}, nil
}

// Matches reports whether a name passes the pattern: it must match at
// least one include glob (or the include set must be empty) and must
// not match any exclude glob.
func (m *Matcher) Matches(name string) bool {
	if len(m.includes) > 0 && !matchesAny(m.includes, name) {
		return false
	}
	return !matchesAny(m.excludes, name)
}

func matchesAny(globs []string, name string) bool {
	for _, glob := range globs {
		// Glob syntax was established at compile time.
		if ok, _ := filepath.Match(glob, name); ok {
			return true
		}
	}
	return false
}
