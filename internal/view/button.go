package view

// Button is a labelled action that may be disabled.
type Button struct {
	Label    string
	Disabled bool
	Focused  bool
}

// Line renders the button as "[ Label ]".
func (b Button) Line() Line {
	st := StylePlain
	switch {
	case b.Disabled:
		st = StyleMuted
	case b.Focused:
		st = StyleSelected
	}
	return styled("[ "+b.Label+" ]", st)
}
