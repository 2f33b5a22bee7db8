package mover

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Matcher selects candidate file names.
type Matcher struct {
	pattern string
	glob    glob.Glob
}

// NewMatcher compiles a glob pattern such as "*.eds".
func NewMatcher(pattern string) (*Matcher, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return &Matcher{pattern: pattern, glob: g}, nil
}

// MustMatcher is NewMatcher for patterns known to be valid.
func MustMatcher(pattern string) *Matcher {
	m, err := NewMatcher(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Matcher) Match(name string) bool {
	return m.glob.Match(name)
}

func (m *Matcher) String() string {
	return m.pattern
}
