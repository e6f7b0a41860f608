package c

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/charnlabs/charn/charngen/ir"
)

func goldenHarnesses(t *testing.T) map[string]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "harness.txtar"))
	if err != nil {
		t.Fatalf("read golden archive: %v", err)
	}
	archive := txtar.Parse(data)
	golden := make(map[string]string, len(archive.Files))
	for _, f := range archive.Files {
		golden[f.Name] = string(f.Data)
	}
	return golden
}

func synthesizeParams(t *testing.T, fn string, params []ir.Param) HarnessSpec {
	t.Helper()
	spec := HarnessSpec{FunctionName: fn}
	for _, p := range params {
		seq, err := Flatten(p.Type, p.Name)
		if err != nil {
			t.Fatalf("Flatten(%s) error = %v", p.Name, err)
		}
		inits, err := Synthesize(seq)
		if err != nil {
			t.Fatalf("Synthesize(%s) error = %v", p.Name, err)
		}
		spec.ParamNames = append(spec.ParamNames, p.Name)
		spec.Initializers = append(spec.Initializers, inits...)
	}
	return spec
}

func TestEmitHarness_Golden(t *testing.T) {
	pair := ir.Composite("struct pair",
		ir.Field{Name: "a", Type: ir.Int()},
		ir.Field{Name: "b", Type: ir.Int()},
	)

	tests := []struct {
		golden string
		fn     string
		params []ir.Param
	}{
		{
			golden: "struct_and_pointer",
			fn:     "check",
			params: []ir.Param{
				{Name: "p", Type: pair},
				{Name: "x", Type: ir.Ptr(ir.Int())},
			},
		},
		{
			golden: "string_param",
			fn:     "copy",
			params: []ir.Param{
				{Name: "src", Type: ir.Ptr(ir.Char())},
			},
		},
	}

	golden := goldenHarnesses(t)
	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			spec := synthesizeParams(t, tt.fn, tt.params)
			var buf bytes.Buffer
			(&Emitter{}).EmitHarness(&buf, spec)

			want, ok := golden[tt.golden]
			if !ok {
				t.Fatalf("no golden file %q", tt.golden)
			}
			if got := buf.String(); got != want {
				t.Errorf("harness mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
			}
		})
	}
}

func TestEmitHarness_Order(t *testing.T) {
	// Declarations, then reads/assignments, then exactly one call.
	spec := synthesizeParams(t, "fn", []ir.Param{
		{Name: "a", Type: ir.Int()},
		{Name: "b", Type: ir.Ptr(ir.UInt())},
	})

	var buf bytes.Buffer
	(&Emitter{}).EmitHarness(&buf, spec)
	out := buf.String()

	decl := strings.Index(out, "// BEGIN declare input variables")
	read := strings.Index(out, "// BEGIN read input variables")
	call := strings.Index(out, "// BEGIN call into segment")
	if !(decl >= 0 && decl < read && read < call) {
		t.Fatalf("sections out of order: decl=%d read=%d call=%d\n%s", decl, read, call, out)
	}
	if got := strings.Count(out, "fn(a, b);"); got != 1 {
		t.Errorf("call statement count = %d, want 1\n%s", got, out)
	}
}

func TestEmitFile_WrapsOriginalSource(t *testing.T) {
	spec := synthesizeParams(t, "fn", []ir.Param{{Name: "n", Type: ir.Int()}})

	var buf bytes.Buffer
	(&Emitter{}).EmitFile(&buf, "void fn(int n) { }\n", spec)
	out := buf.String()

	if !strings.HasPrefix(out, "//BEGIN original file\nvoid fn(int n) { }\n//END original file\n") {
		t.Errorf("output does not start with the wrapped original source:\n%s", out)
	}
	if !strings.Contains(out, MarkerBegin) || !strings.Contains(out, MarkerEnd) {
		t.Errorf("output missing harness markers:\n%s", out)
	}
}
