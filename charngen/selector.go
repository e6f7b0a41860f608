package charngen

import "github.com/charnlabs/charn/charngen/ir"

// SelectTarget chooses the function to harness.
//
// When name is non-empty, the function with that exact name is selected
// wherever it was declared. Otherwise the candidate set is the declarations
// in the unit's primary file, excluding main, and the one with the greatest
// source line wins; on equal lines the later declaration wins
// (last-declared-wins, never name-based).
func SelectTarget(unit *ir.TranslationUnit, name string) (*ir.FunctionDecl, error) {
	if name != "" {
		for i := range unit.Functions {
			if unit.Functions[i].Name == name {
				return &unit.Functions[i], nil
			}
		}
		return nil, ir.Errorf(ir.CodeNoFunctionFound, "no function named %q in %s", name, unit.File)
	}

	var target *ir.FunctionDecl
	for i := range unit.Functions {
		fn := &unit.Functions[i]
		if fn.File != unit.File || fn.Name == "main" {
			continue
		}
		if target == nil || fn.Line >= target.Line {
			target = fn
		}
	}
	if target == nil {
		return nil, ir.Errorf(ir.CodeNoFunctionFound, "no candidate function declared in %s", unit.File)
	}
	return target, nil
}
