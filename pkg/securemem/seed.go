// Package securemem provides an owned, zero-on-release container for
// seed phrases. Seed material is wiped from its backing buffer as soon
// as the last owner releases it, so accepted-but-unused candidates never
// linger in heap memory waiting for the garbage collector.
package securemem

import "unsafe"

// Seed wraps a byte buffer holding a seed phrase. A Seed has exactly one
// owner; use Clone to hand an independent copy to another owner. It is
// not safe for concurrent use.
type Seed struct {
	buf   []byte
	wiped bool
}

// NewSeed takes ownership of phrase. The caller must not retain or reuse
// the slice after the call.
func NewSeed(phrase []byte) *Seed {
	return &Seed{buf: phrase}
}

// NewSeedString copies phrase into a fresh protected buffer.
func NewSeedString(phrase string) *Seed {
	return &Seed{buf: []byte(phrase)}
}

// AsString returns a zero-copy view of the phrase. The returned string
// aliases the protected buffer: it must not be retained past Wipe or
// Expose.
func (s *Seed) AsString() string {
	if len(s.buf) == 0 || s.wiped {
		return ""
	}
	return unsafe.String(&s.buf[0], len(s.buf))
}

// Clone returns an independently-owned, independently-wiped deep copy.
func (s *Seed) Clone() *Seed {
	if s.wiped {
		return &Seed{wiped: true}
	}
	dup := make([]byte, len(s.buf))
	copy(dup, s.buf)
	return &Seed{buf: dup}
}

// Expose converts the seed into a plain, no-longer-protected string and
// wipes the backing buffer. This is the only sanctioned way to surface
// the value to unprotected code, e.g. end-of-search result delivery.
func (s *Seed) Expose() string {
	if s.wiped {
		return ""
	}
	out := string(s.buf) // plain copy, intentionally unprotected
	s.Wipe()
	return out
}

// Wipe overwrites every byte of the backing buffer with zero. It is
// idempotent and must be reachable on every exit path of the owner,
// typically via defer.
func (s *Seed) Wipe() {
	for i := range s.buf {
		s.buf[i] = 0
	}
	s.wiped = true
}

// Wiped reports whether the seed has been released.
func (s *Seed) Wiped() bool {
	return s.wiped
}

// Bytes exposes the backing buffer. It exists so tests can verify the
// buffer is fully zeroed after release; production code should use
// AsString or Expose.
func (s *Seed) Bytes() []byte {
	return s.buf
}
