package c

import (
	"fmt"
	"strings"

	"github.com/charnlabs/charn/charngen/ir"
)

// Initializer holds the generated statements for one flat-sequence entry.
// Initializers are index-aligned with the sequence they were synthesized from.
type Initializer struct {
	// Declaration is "<spelling> <name>;".
	Declaration string

	// Assignment reads the variable from stdin (primitives, strings) or wires
	// it from already-materialized dependencies (composites, pointers). It may
	// span multiple lines.
	Assignment string

	// Cleanup releases heap memory after the call. Empty except for strings.
	Cleanup string
}

// Synthesize converts a flat sequence into an index-aligned sequence of
// initializers. Dependencies are resolved purely positionally against the
// immediately preceding Children entries; it never reorders and never matches
// by name, so the input must be exactly as Flatten emitted it.
func Synthesize(seq []LocalVariable) ([]Initializer, error) {
	inits := make([]Initializer, 0, len(seq))
	for i, v := range seq {
		assign, cleanup, err := initialize(seq, i, v)
		if err != nil {
			return nil, err
		}
		inits = append(inits, Initializer{
			Declaration: fmt.Sprintf("%s %s;", v.Type.Spelling(), v.Name),
			Assignment:  assign,
			Cleanup:     cleanup,
		})
	}
	return inits, nil
}

func initialize(seq []LocalVariable, i int, v LocalVariable) (assign, cleanup string, err error) {
	switch d := v.Type.(type) {
	case *ir.CompositeDescriptor:
		deps := seq[i-v.Children : i]
		var b strings.Builder
		fmt.Fprintf(&b, "// BEGIN assign fields of %s\n", v.Name)
		for j, f := range d.Fields {
			fmt.Fprintf(&b, "%s.%s = %s;\n", v.Name, f.Name, deps[j].Name)
		}
		fmt.Fprintf(&b, "// END assign fields of %s", v.Name)
		return b.String(), "", nil
	case *ir.PointerDescriptor:
		if isString(v.Type) {
			return readLine(v.Name, "%[1]s = malloc(%[3]s);\nstrcpy(%[1]s, %[2]s);"),
				fmt.Sprintf("free(%s);", v.Name), nil
		}
		dep := seq[i-v.Children]
		return fmt.Sprintf("// BEGIN assign ptr %[1]s\n%[1]s = &%[2]s;\n// END assign ptr %[1]s",
			v.Name, dep.Name), "", nil
	case *ir.PrimitiveDescriptor:
		return readScan(v.Name, d.PrimitiveKind)
	default:
		return "", "", ir.Errorf(ir.CodeUnsupportedKind,
			"unhandled kind %s for %q in flat sequence", v.Type.Kind(), v.Name)
	}
}

// readScan emits a prompted scanf read through the variable's address.
func readScan(name string, kind ir.PrimitiveKind) (string, string, error) {
	var format string
	switch kind {
	case ir.PrimitiveInt:
		format = "%d"
	case ir.PrimitiveUInt:
		format = "%u"
	case ir.PrimitiveChar:
		// Leading space skips whitespace left over from earlier reads.
		format = " %c"
	default:
		return "", "", ir.Errorf(ir.CodeUnsupportedKind,
			"unhandled primitive kind %s for %q", kind, name)
	}
	assign := fmt.Sprintf(
		"// BEGIN read value for %[1]s\nprintf(\"%[1]s: \");\nscanf(\"%[2]s\", &%[1]s);\n// END read value for %[1]s",
		name, format)
	return assign, "", nil
}

// readLine emits a prompted getline read into a throwaway buffer, applies fmt
// to transfer the buffer into the variable, then frees the buffer. fmt may
// reference %[1]s (variable), %[2]s (buffer) and %[3]s (buffer capacity).
func readLine(name, format string) string {
	str := name + "_s"
	strlen := name + "_sn"
	var b strings.Builder
	fmt.Fprintf(&b, "// BEGIN read value for %s\n", name)
	fmt.Fprintf(&b, "char *%s = NULL;\n", str)
	fmt.Fprintf(&b, "size_t %s = 0;\n", strlen)
	fmt.Fprintf(&b, "printf(\"%s: \");\n", name)
	fmt.Fprintf(&b, "getline(&%s, &%s, stdin);\n", str, strlen)
	fmt.Fprintf(&b, format, name, str, strlen)
	b.WriteString("\n")
	fmt.Fprintf(&b, "free(%s);\n", str)
	fmt.Fprintf(&b, "// END read value for %s", name)
	return b.String()
}
