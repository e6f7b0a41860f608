package c

import (
	"bytes"
	"fmt"
	"strings"
)

// Markers delimiting a generated harness. MarkerBegin doubles as the sentinel
// the generator checks for to refuse double generation.
const (
	MarkerBegin = "// BEGIN test harness"
	MarkerEnd   = "// END test harness"
)

// HarnessSpec describes one harness to emit: the target function, its
// parameter names in declared order, and the concatenation of each
// parameter's initializer sequence (parameters are never interleaved).
type HarnessSpec struct {
	FunctionName string
	ParamNames   []string
	Initializers []Initializer
}

// Emitter assembles C harness text from synthesized initializers. It performs
// no syntactic validation; compiling the output is the caller's concern.
type Emitter struct{}

// EmitHarness writes the harness fragment: a main() containing all
// declarations, all read/assignment statements, exactly one call into the
// target function, and the cleanup statements.
func (e *Emitter) EmitHarness(buf *bytes.Buffer, spec HarnessSpec) {
	buf.WriteString(MarkerBegin + "\n")
	buf.WriteString("#include <stdio.h>\n")
	buf.WriteString("#include <stdlib.h>\n")
	buf.WriteString("#include <string.h>\n")
	buf.WriteString("\n")
	buf.WriteString("int main() {\n")

	buf.WriteString("// BEGIN declare input variables\n")
	for _, init := range spec.Initializers {
		buf.WriteString(init.Declaration)
		buf.WriteString("\n")
	}
	buf.WriteString("// END declare input variables\n\n")

	buf.WriteString("// BEGIN read input variables\n")
	for _, init := range spec.Initializers {
		buf.WriteString(init.Assignment)
		buf.WriteString("\n")
	}
	buf.WriteString("// END read input variables\n\n")

	buf.WriteString("// BEGIN call into segment\n")
	fmt.Fprintf(buf, "%s(%s);\n", spec.FunctionName, strings.Join(spec.ParamNames, ", "))
	buf.WriteString("// END call into segment\n")

	cleanups := make([]string, 0, len(spec.Initializers))
	for _, init := range spec.Initializers {
		if init.Cleanup != "" {
			cleanups = append(cleanups, init.Cleanup)
		}
	}
	if len(cleanups) > 0 {
		buf.WriteString("\n// BEGIN cleanup input variables\n")
		for _, c := range cleanups {
			buf.WriteString(c)
			buf.WriteString("\n")
		}
		buf.WriteString("// END cleanup input variables\n")
	}

	buf.WriteString("}\n")
	buf.WriteString(MarkerEnd + "\n")
}

// EmitFile writes a complete output file: the original translation-unit text
// between original-file markers, followed by the harness fragment.
func (e *Emitter) EmitFile(buf *bytes.Buffer, source string, spec HarnessSpec) {
	buf.WriteString("//BEGIN original file\n")
	buf.WriteString(source)
	if !strings.HasSuffix(source, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("//END original file\n\n")
	e.EmitHarness(buf, spec)
}
