package phantom

import (
	"github.com/neil-smyth/phantom/fpe"
)

// Context is the facade's PIMPL: it resolves to exactly one concrete
// realization (a Signer-capable NTRU keypair, a DLP-IBE instance, or
// a bare FPE context) chosen at construction time, and exposes it
// through a type-asserting accessor rather than a concrete field -
// the Go replacement for spec §9's tagged-union "impl" pointer.
type Context struct {
	impl any
}

// NewSignerContext wraps an NTRUSigner.
func NewSignerContext(s *NTRUSigner) *Context { return &Context{impl: s} }

// NewIBEContext wraps a DLPIBE.
func NewIBEContext(ibe *DLPIBE) *Context { return &Context{impl: ibe} }

// NewFPEContext wraps an fpe.Context.
func NewFPEContext(f *fpe.Context) *Context { return &Context{impl: f} }

// AsSigner returns the wrapped Signer, if this Context was built with
// NewSignerContext.
func (c *Context) AsSigner() (Signer, bool) {
	s, ok := c.impl.(Signer)
	return s, ok
}

// AsIBE returns the wrapped IBE, if this Context was built with
// NewIBEContext.
func (c *Context) AsIBE() (IBE, bool) {
	i, ok := c.impl.(IBE)
	return i, ok
}

// AsFPE returns the wrapped fpe.Context, if this Context was built
// with NewFPEContext.
func (c *Context) AsFPE() (*fpe.Context, bool) {
	f, ok := c.impl.(*fpe.Context)
	return f, ok
}
