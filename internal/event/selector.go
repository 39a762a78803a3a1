package event

import (
	"fmt"
	"regexp"

	"github.com/dshills/storefront/internal/event/topic"
)

// SelectorKind identifies how a Selector matches topics.
type SelectorKind int

const (
	// SelectorExact matches a single topic name.
	SelectorExact SelectorKind = iota

	// SelectorPattern matches dotted wildcard patterns (* and **).
	SelectorPattern

	// SelectorRegexp matches topic names against a regular expression.
	SelectorRegexp
)

// String returns a human-readable kind name.
func (k SelectorKind) String() string {
	switch k {
	case SelectorExact:
		return "exact"
	case SelectorPattern:
		return "pattern"
	case SelectorRegexp:
		return "regexp"
	default:
		return "unknown"
	}
}

// Selector decides which topics a subscription receives.
// The zero value matches nothing and is rejected by Subscribe.
type Selector struct {
	kind  SelectorKind
	topic topic.Topic
	re    *regexp.Regexp
}

// Exact returns a selector matching exactly t.
func Exact(t topic.Topic) Selector {
	return Selector{kind: SelectorExact, topic: t}
}

// Pattern returns a selector matching topics against a wildcard pattern.
func Pattern(p topic.Topic) Selector {
	return Selector{kind: SelectorPattern, topic: p}
}

// Regexp returns a selector matching topic names against expr.
func Regexp(expr string) (Selector, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Selector{}, fmt.Errorf("%w: %v", ErrInvalidSelector, err)
	}
	return Selector{kind: SelectorRegexp, re: re}, nil
}

// MustRegexp is like Regexp but panics on an invalid expression.
// Intended for package-level selector tables.
func MustRegexp(expr string) Selector {
	s, err := Regexp(expr)
	if err != nil {
		panic(err)
	}
	return s
}

// Kind returns the selector kind.
func (s Selector) Kind() SelectorKind {
	return s.kind
}

// IsValid reports whether the selector can match anything.
func (s Selector) IsValid() bool {
	switch s.kind {
	case SelectorExact:
		return s.topic.IsValid() && !s.topic.IsWildcard()
	case SelectorPattern:
		return s.topic.IsValid()
	case SelectorRegexp:
		return s.re != nil
	default:
		return false
	}
}

// Matches reports whether t is selected.
func (s Selector) Matches(t topic.Topic) bool {
	switch s.kind {
	case SelectorExact:
		return s.topic != "" && s.topic == t
	case SelectorPattern:
		return s.topic != "" && t.Matches(s.topic)
	case SelectorRegexp:
		return s.re != nil && s.re.MatchString(t.String())
	default:
		return false
	}
}

// String returns the selector in a loggable form.
func (s Selector) String() string {
	if s.kind == SelectorRegexp {
		if s.re == nil {
			return "regexp:<nil>"
		}
		return "regexp:" + s.re.String()
	}
	return s.kind.String() + ":" + s.topic.String()
}
