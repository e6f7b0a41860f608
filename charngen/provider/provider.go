// Package provider loads translation units for harness generation.
//
// Parsing C is not done here: the ClangProvider delegates it to clang and
// only decodes the AST dump clang produces. The StaticProvider wraps an
// in-memory translation unit for tests and programmatic use.
package provider

import (
	"context"

	"github.com/charnlabs/charn/charngen/ir"
)

// Provider supplies the parsed view of a C source file.
type Provider interface {
	// Load returns the translation unit to generate a harness for.
	Load(ctx context.Context) (*ir.TranslationUnit, error)
}

// StaticProvider wraps an already-built translation unit.
type StaticProvider struct {
	Unit *ir.TranslationUnit
}

// Load returns the wrapped translation unit.
func (p *StaticProvider) Load(ctx context.Context) (*ir.TranslationUnit, error) {
	if p.Unit == nil {
		return nil, ir.NewError(ir.CodeParseFailed, "static provider has no translation unit")
	}
	return p.Unit, nil
}
