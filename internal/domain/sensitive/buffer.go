// Package sensitive holds short-lived plaintext material that must be wiped
// once the operation consuming it returns.
package sensitive

import (
	"unicode/utf8"
)

// Buffer wraps a mutable rune slice holding a plaintext password.
// It is owned by a single operation and must not be shared between goroutines.
type Buffer struct {
	runes []rune
	bytes []byte
}

// New wraps runes without copying them; the caller hands over ownership.
func New(runes []rune) *Buffer {
	return &Buffer{runes: runes}
}

// FromBytes decodes UTF-8 input into a new Buffer and zeroes src.
func FromBytes(src []byte) *Buffer {
	runes := make([]rune, 0, utf8.RuneCount(src))
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		runes = append(runes, r)
		i += size
	}
	zeroBytes(src)

	return &Buffer{runes: runes}
}

// FromString copies s into a new Buffer. The string itself cannot be wiped, so
// callers should prefer New or FromBytes when they control the input.
func FromString(s string) *Buffer {
	return &Buffer{runes: []rune(s)}
}

// Len returns the number of characters.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// Any reports whether at least one character satisfies fn.
func (b *Buffer) Any(fn func(rune) bool) bool {
	for _, r := range b.runes {
		if fn(r) {
			return true
		}
	}

	return false
}

// Bytes returns the UTF-8 encoding of the buffer. The encoding is cached and the
// rune representation is zeroed as soon as it has been produced.
func (b *Buffer) Bytes() []byte {
	if b.bytes != nil {
		return b.bytes
	}

	out := make([]byte, 0, len(b.runes)*utf8.UTFMax)
	for _, r := range b.runes {
		out = utf8.AppendRune(out, r)
	}
	zeroRunes(b.runes)
	b.bytes = out

	return b.bytes
}

// String returns the plaintext as an immutable string. It is only used when the
// policy stores secrets unhashed.
func (b *Buffer) String() string {
	if b.bytes != nil {
		return string(b.bytes)
	}

	return string(b.runes)
}

// Clear overwrites every character and cached byte with zero. It is safe to call repeatedly.
func (b *Buffer) Clear() {
	if b == nil {
		return
	}
	zeroRunes(b.runes)
	zeroBytes(b.bytes)
}

// Cleared reports whether no plaintext remains in the buffer.
func (b *Buffer) Cleared() bool {
	for _, r := range b.runes {
		if r != 0 {
			return false
		}
	}
	for _, c := range b.bytes {
		if c != 0 {
			return false
		}
	}

	return true
}

// Use runs fn with a Buffer over runes and clears it on every exit path, panics included.
func Use(runes []rune, fn func(*Buffer) error) error {
	buf := New(runes)
	defer buf.Clear()

	return fn(buf)
}

func zeroRunes(rs []rune) {
	for i := range rs {
		rs[i] = 0
	}
}

func zeroBytes(bs []byte) {
	for i := range bs {
		bs[i] = 0
	}
}
