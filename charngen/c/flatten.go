// Package c contains the core of harness generation: flattening parameter
// types into dependency-ordered variable sequences, synthesizing
// declaration/initialization statement pairs from them, and emitting the
// final C text fragment.
package c

import "github.com/charnlabs/charn/charngen/ir"

// LocalVariable describes one local variable of the generated harness.
type LocalVariable struct {
	Type ir.TypeDescriptor
	Name string

	// Children is the number of immediately preceding flat-sequence entries
	// this variable is wired from: 1 for pointers, the direct field count for
	// composites, 0 for primitives and string pointers.
	Children int
}

// stringSpelling is the pointer spelling treated as a whole string value
// rather than a pointer to a single char.
const stringSpelling = "char *"

// isString reports whether t is the char * string special case.
func isString(t ir.TypeDescriptor) bool {
	p, ok := t.(*ir.PointerDescriptor)
	return ok && p.Spelling() == stringSpelling
}

// Flatten recursively decomposes t into a post-order sequence of local
// variables. For every non-primitive entry at index i, the entries at
// [i-Children, i-1] are exactly its direct dependencies, in field-declaration
// order for composites or the single pointee for pointers. The synthesizer
// depends on this window property; emission order is the contract.
func Flatten(t ir.TypeDescriptor, name string) ([]LocalVariable, error) {
	var seq []LocalVariable
	if err := flattenInto(&seq, t, name); err != nil {
		return nil, err
	}
	return seq, nil
}

func flattenInto(seq *[]LocalVariable, t ir.TypeDescriptor, name string) error {
	switch d := t.(type) {
	case *ir.CompositeDescriptor:
		if d.Incomplete {
			return ir.Errorf(ir.CodeMissingDeclaration,
				"no field declarations for %q (forward declaration only?)", d.Spelling())
		}
		for _, f := range d.Fields {
			if err := flattenInto(seq, f.Type, f.Name); err != nil {
				return err
			}
		}
		*seq = append(*seq, LocalVariable{Type: t, Name: name, Children: len(d.Fields)})
	case *ir.PointerDescriptor:
		if d.Spelling() == stringSpelling {
			// Strings are terminal: read as a whole line, no pointee variable.
			*seq = append(*seq, LocalVariable{Type: t, Name: name})
			return nil
		}
		// Pointee names take a _v suffix. A parameter whose name already ends
		// in _v can collide with a sibling pointee; no collision handling.
		if err := flattenInto(seq, d.Pointee, name+"_v"); err != nil {
			return err
		}
		*seq = append(*seq, LocalVariable{Type: t, Name: name, Children: 1})
	case *ir.PrimitiveDescriptor:
		*seq = append(*seq, LocalVariable{Type: t, Name: name})
	case *ir.OpaqueDescriptor:
		return ir.Errorf(ir.CodeUnsupportedTypeKind,
			"unhandled type kind %s for %q", d.KindName, name)
	default:
		return ir.Errorf(ir.CodeUnsupportedTypeKind,
			"unhandled type kind %s for %q", t.Kind(), name)
	}
	return nil
}
