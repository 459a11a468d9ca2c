package symbols

import (
	"errors"
)

// ErrBindingIncomplete is the cause of every BindingOrderError.
var ErrBindingIncomplete = errors.New("symbol context accessed before name binding completed")

// BindingOrderError reports a read of a locked Context. It is raised as a
// panic: it signals a bug in the caller, not a problem in the source.
type BindingOrderError struct {
	Member string
}

func (e *BindingOrderError) Error() string {
	return "properties of the symbol context should not be accessed until name binding is completed (read of " + e.Member + ")"
}

func (e *BindingOrderError) Unwrap() error {
	return ErrBindingIncomplete
}

// Context is the per-compilation symbol context. It starts locked; its
// bindings and type manager become readable only after Unlock, which is
// one-way and idempotent.
type Context[TM any] struct {
	bindings *Bindings
	types    TM
	hasTypes bool
	unlocked bool
}

// NewContext returns a locked context over bindings.
func NewContext[TM any](bindings *Bindings) *Context[TM] {
	return &Context[TM]{bindings: bindings}
}

// Unlock opens the context for reads.
func (c *Context[TM]) Unlock() {
	c.unlocked = true
}

// Unlocked reports whether reads are allowed.
func (c *Context[TM]) Unlocked() bool {
	return c.unlocked
}

// SetTypeManager attaches the type manager; it may only be attached once.
func (c *Context[TM]) SetTypeManager(tm TM) {
	if c.hasTypes {
		panic("symbols: type manager attached twice")
	}
	c.types = tm
	c.hasTypes = true
}

// Bindings returns the bindings, panicking with *BindingOrderError while locked.
func (c *Context[TM]) Bindings() *Bindings {
	c.ensureUnlocked("Bindings")
	return c.bindings
}

// TypeManager returns the attached type manager, panicking with
// *BindingOrderError while locked.
func (c *Context[TM]) TypeManager() TM {
	c.ensureUnlocked("TypeManager")
	return c.types
}

// Cycles returns the declaration cycle sym belongs to; it is subject to the lock.
func (c *Context[TM]) Cycles(sym SymbolID) []SymbolID {
	c.ensureUnlocked("Cycles")
	return c.bindings.Cycle(sym)
}

func (c *Context[TM]) ensureUnlocked(member string) {
	if !c.unlocked {
		panic(&BindingOrderError{Member: member})
	}
}
