// Package frame is an x86 frame/access scaffold, present but experimental
// and outside the main compile pipeline per spec.md §1's explicit
// Non-goal on real-ISA codegen. Grounded on
// original_source/underscore_codegen/src/x86.rs's Frame trait and Access
// enum; kept as a concrete consumer of internal/types.Env's escape-flag
// tracking (spec.md GLOSSARY "Escape flag"), which has no other reader;
// inference never sets the flags, so they are only set by callers of
// Env.SetEscapes such as this package's tests.
package frame

import (
	"github.com/velalang/velac/internal/symbol"
	"github.com/velalang/velac/internal/types"
)

// WordSize is the machine word width this frame model targets, matching
// x86.rs's `const WORD_SIZE: u32 = 32`.
const WordSize = 32

// Access is where a local or parameter lives: a register, or a slot at a
// byte offset from the frame pointer for a value that escapes (is
// captured or has its address taken).
type Access interface {
	accessNode()
}

// Reg is a value that never escapes, kept in a register-sized IR temp.
type Reg struct{ Temp int }

func (Reg) accessNode() {}

// Frame is a value that escapes, held at Offset bytes from the frame
// pointer.
type Frame struct{ Offset uint32 }

func (Frame) accessNode() {}

// Info is one function's frame: its formal parameters' accesses, and the
// running offset/register counters used to allocate further locals.
type Info struct {
	Name     symbol.Symbol
	Formals  []Access
	nextTemp int
	nextOff  uint32
}

// New builds a frame for name, allocating one Access per entry of escapes
// (true if that formal escapes its defining function), mirroring x86.rs's
// Frame::new iterating `formals: &[bool]`.
func New(name symbol.Symbol, escapes []bool) *Info {
	f := &Info{Name: name}
	formals := make([]Access, len(escapes))
	for i, esc := range escapes {
		formals[i] = f.AllocLocal(esc)
	}
	f.Formals = formals
	return f
}

// NewFromEnv builds a frame for name by reading each parameter's recorded
// escape flag directly out of env, the demonstration use of
// types.Env.LookEscapes this package exists to exercise.
func NewFromEnv(env *types.Env, name symbol.Symbol, params []symbol.Symbol) *Info {
	escapes := make([]bool, len(params))
	for i, p := range params {
		escapes[i] = env.LookEscapes(p)
	}
	return New(name, escapes)
}

// AllocLocal allocates one more Access in this frame: a Frame slot if
// escapes is true, otherwise a fresh Reg.
func (f *Info) AllocLocal(escapes bool) Access {
	if escapes {
		off := f.nextOff
		f.nextOff += WordSize / 8
		return Frame{Offset: off}
	}
	t := f.nextTemp
	f.nextTemp++
	return Reg{Temp: t}
}
