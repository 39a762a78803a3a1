package topic

import (
	"slices"
	"strings"
)

// Topic is a dotted event name such as "basket.changed" or
// "order.email.change". Patterns use the same form with wildcard segments.
type Topic string

// Wildcard segments. Any matches one segment, AnyDepth zero or more.
const (
	Any      = "*"
	AnyDepth = "**"
)

const sep = "."

func (t Topic) String() string {
	return string(t)
}

// Segments splits t on dots. The empty topic has no segments.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), sep)
}

// Child appends segment to t.
func (t Topic) Child(segment string) Topic {
	if t == "" {
		return Topic(segment)
	}
	return t + sep + Topic(segment)
}

// IsWildcard reports whether t contains a wildcard segment character.
func (t Topic) IsWildcard() bool {
	return strings.Contains(string(t), Any)
}

// IsValid reports whether t is non-empty and has no empty segments.
func (t Topic) IsValid() bool {
	return t != "" && !slices.Contains(t.Segments(), "")
}

// Matches reports whether t matches pattern.
func (t Topic) Matches(pattern Topic) bool {
	return match(t.Segments(), pattern.Segments())
}

func match(name, pattern []string) bool {
	for len(pattern) > 0 {
		head := pattern[0]
		if head == AnyDepth {
			rest := pattern[1:]
			for skip := 0; skip <= len(name); skip++ {
				if match(name[skip:], rest) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 || (head != Any && head != name[0]) {
			return false
		}
		name, pattern = name[1:], pattern[1:]
	}
	return len(name) == 0
}
