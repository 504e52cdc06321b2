package astifilter

// scanner is a cursor over an immutable graph description. All slicing
// operations return sub-strings of the original input, no copy is made
// before a Filter or InOut is materialized.
type scanner struct {
	i int
	s string
}

func newScanner(s string) *scanner {
	return &scanner{s: s}
}

// peek returns the next byte without consuming it
func (sc *scanner) peek() (byte, bool) {
	if sc.i >= len(sc.s) {
		return 0, false
	}
	return sc.s[sc.i], true
}

// peekLen returns the next n bytes without consuming them
func (sc *scanner) peekLen(n int) (string, bool) {
	if sc.i+n > len(sc.s) {
		return "", false
	}
	return sc.s[sc.i : sc.i+n], true
}

// peekUntil returns all bytes up to the first byte matching f. It fails
// when no byte matches before the end of the input, for callers that
// require a terminator.
func (sc *scanner) peekUntil(f func(byte) bool) (string, bool) {
	for i := sc.i; i < len(sc.s); i++ {
		if f(sc.s[i]) {
			return sc.s[sc.i:i], true
		}
	}
	return "", false
}

// peekUntilEnd is like peekUntil except that reaching the end of the
// input is valid and returns the whole remainder
func (sc *scanner) peekUntilEnd(f func(byte) bool) string {
	for i := sc.i; i < len(sc.s); i++ {
		if f(sc.s[i]) {
			return sc.s[sc.i:i]
		}
	}
	return sc.s[sc.i:]
}

// remaining returns all unconsumed bytes
func (sc *scanner) remaining() string {
	return sc.s[sc.i:]
}

// skip consumes n bytes, clamped to the end of the input
func (sc *scanner) skip(n int) {
	sc.i += n
	if sc.i > len(sc.s) {
		sc.i = len(sc.s)
	}
}

// skipWhitespace consumes spaces, tabs and line breaks
func (sc *scanner) skipWhitespace() {
	for sc.i < len(sc.s) {
		switch sc.s[sc.i] {
		case ' ', '\t', '\n', '\r':
			sc.i++
		default:
			return
		}
	}
}
