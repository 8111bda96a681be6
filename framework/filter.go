package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests by name.
//
// MustMatch patterns are matched the same way as "go test -run": the pattern is split on
// "/" and each piece is matched against the test ID component at the same depth, so that
// a group is run if any of its subtests could match. MustNotMatch patterns are matched
// against the whole test ID.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatchPath(id.Path)) &&
		!r.MustNotMatch.AnyMatch(id.String())
}

func (r RegexFilters) IsDefined() bool {
	return r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined()
}

type RegexList struct {
	patterns []*regexp.Regexp
	levels   [][]*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	var levels []*regexp.Regexp
	for _, part := range strings.Split(value, "/") {
		lrx, err := regexp.Compile(part)
		if err != nil {
			return fmt.Errorf("invalid regex %q in %q: %w", part, value, err)
		}
		levels = append(levels, lrx)
	}
	r.patterns = append(r.patterns, rx)
	r.levels = append(r.levels, levels)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// AnyMatchPath returns true if any pattern matches the ID components level by level. A
// path shorter than the pattern matches if all of its components do; components deeper
// than the pattern always match.
func (r RegexList) AnyMatchPath(path []string) bool {
	for _, levels := range r.levels {
		if matchLevels(levels, path) {
			return true
		}
	}
	return false
}

func matchLevels(levels []*regexp.Regexp, path []string) bool {
	for i, elem := range path {
		if i >= len(levels) {
			return true
		}
		if !levels[i].MatchString(elem) {
			return false
		}
	}
	return true
}

func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if !filters.IsDefined() {
		return
	}
	fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
	}
	fmt.Fprintln(out)
}
