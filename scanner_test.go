package astifilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScannerPeek(t *testing.T) {
	sc := newScanner("abcd")
	for _, e := range []byte("abcd") {
		b, ok := sc.peek()
		assert.True(t, ok)
		assert.Equal(t, e, b)
		sc.skip(1)
	}
	_, ok := sc.peek()
	assert.False(t, ok)
}

func TestScannerPeekLen(t *testing.T) {
	sc := newScanner("abcdefgh")
	sc.skip(1)
	v, ok := sc.peekLen(3)
	assert.True(t, ok)
	assert.Equal(t, "bcd", v)
	v, ok = sc.peekLen(3)
	assert.True(t, ok)
	assert.Equal(t, "bcd", v)
	sc.skip(2)
	v, ok = sc.peekLen(5)
	assert.True(t, ok)
	assert.Equal(t, "defgh", v)
	_, ok = sc.peekLen(6)
	assert.False(t, ok)
}

func TestScannerPeekUntil(t *testing.T) {
	isSemicolon := func(b byte) bool { return b == ';' }
	sc := newScanner("abcd;cdef;a;")
	v, ok := sc.peekUntil(isSemicolon)
	assert.True(t, ok)
	assert.Equal(t, "abcd", v)
	sc.skip(5)
	v, ok = sc.peekUntil(isSemicolon)
	assert.True(t, ok)
	assert.Equal(t, "cdef", v)
	sc.skip(5)
	v, ok = sc.peekUntil(isSemicolon)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	sc.skip(5)
	_, ok = sc.peekUntil(isSemicolon)
	assert.False(t, ok)
}

func TestScannerPeekUntilEnd(t *testing.T) {
	isSemicolon := func(b byte) bool { return b == ';' }
	sc := newScanner("abcd;cdef;a;")
	assert.Equal(t, "abcd", sc.peekUntilEnd(isSemicolon))
	sc.skip(5)
	assert.Equal(t, "cdef", sc.peekUntilEnd(isSemicolon))
	sc.skip(5)
	assert.Equal(t, "a", sc.peekUntilEnd(isSemicolon))
	sc.skip(5)
	assert.Equal(t, "", sc.peekUntilEnd(isSemicolon))
}

func TestScannerRemaining(t *testing.T) {
	sc := newScanner("abcd")
	assert.Equal(t, "abcd", sc.remaining())
	sc.skip(1)
	assert.Equal(t, "bcd", sc.remaining())
	sc.skip(3)
	assert.Equal(t, "", sc.remaining())
}

func TestScannerSkip(t *testing.T) {
	sc := newScanner("abcd")
	sc.skip(3)
	assert.Equal(t, "d", sc.remaining())
	// Clamped to the end
	sc.skip(10)
	assert.Equal(t, "", sc.remaining())
	_, ok := sc.peek()
	assert.False(t, ok)
}

func TestScannerSkipWhitespace(t *testing.T) {
	sc := newScanner("\r\n\t  \r\r\n\t\t\n\n\r")
	sc.skipWhitespace()
	_, ok := sc.peek()
	assert.False(t, ok)

	for _, s := range []string{
		"a\r\n\t \t\r\r\n\t\t\n\n\r",
		"\r\n \t\ta\r\r\n\t\t\n\n\r",
		"\r\n\t\t \r\r\n\t\t\n\n\ra",
	} {
		sc = newScanner(s)
		sc.skipWhitespace()
		b, ok := sc.peek()
		assert.True(t, ok)
		assert.Equal(t, byte('a'), b)
	}
}
