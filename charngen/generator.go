// Package charngen generates C test harnesses: a synthetic main() that reads
// input values, wires up nested structs and pointers, and calls one target
// function from a translation unit.
package charngen

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/charnlabs/charn/charngen/c"
	"github.com/charnlabs/charn/charngen/ir"
	"github.com/charnlabs/charn/charngen/provider"
	"github.com/charnlabs/charn/internal/clangformat"
)

// Result contains generation output.
type Result struct {
	// Unit is the primary file of the parsed translation unit.
	Unit string

	// Target is the function the harness calls into.
	Target ir.FunctionDecl

	// Harness is the generated fragment on its own.
	Harness string

	// Output is the complete output file: the original source followed by
	// the harness. This is the text meant to be handed to a C compiler.
	Output string

	// Locals is the total number of synthesized local variables.
	Locals int
}

// Generate runs the pipeline once to completion: load the translation unit,
// select the target, flatten and synthesize each parameter in declaration
// order, and emit the harness. It either produces a complete harness or fails
// outright; there are no retries and no partial results.
func Generate(ctx context.Context, p provider.Provider, cfg *Config) (*Result, error) {
	cfg = applyConfigDefaults(cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	unit, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("parsed translation unit", "file", unit.File, "functions", len(unit.Functions))

	if strings.Contains(unit.Source, c.MarkerBegin) {
		return nil, ir.Errorf(ir.CodeHarnessExists,
			"%s already contains a test harness; delete it first", unit.File)
	}

	target, err := SelectTarget(unit, cfg.Target)
	if err != nil {
		return nil, err
	}
	slog.Info("selected target function",
		"function", target.Name, "file", target.File, "line", target.Line,
		"params", len(target.Params))

	spec := c.HarnessSpec{FunctionName: target.Name}
	locals := 0
	for i, param := range target.Params {
		seq, err := c.Flatten(param.Type, param.Name)
		if err != nil {
			return nil, err
		}
		inits, err := c.Synthesize(seq)
		if err != nil {
			return nil, err
		}
		slog.Debug("flattened parameter", "index", i, "name", param.Name, "locals", len(seq))
		locals += len(seq)
		spec.ParamNames = append(spec.ParamNames, param.Name)
		spec.Initializers = append(spec.Initializers, inits...)
	}

	emitter := &c.Emitter{}
	var harness bytes.Buffer
	emitter.EmitHarness(&harness, spec)
	var out bytes.Buffer
	emitter.EmitFile(&out, unit.Source, spec)

	output := out.Bytes()
	if cfg.Format {
		formatted, err := clangformat.Format(ctx, output)
		if err != nil {
			slog.Warn("clang-format unavailable; emitting unformatted output", "error", err)
		} else {
			output = formatted
		}
	}

	return &Result{
		Unit:    unit.File,
		Target:  *target,
		Harness: harness.String(),
		Output:  string(output),
		Locals:  locals,
	}, nil
}
