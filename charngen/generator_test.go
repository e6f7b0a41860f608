package charngen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charnlabs/charn/charngen/ir"
	"github.com/charnlabs/charn/charngen/provider"
)

func testUnit() *ir.TranslationUnit {
	pair := ir.Composite("struct pair",
		ir.Field{Name: "a", Type: ir.Int()},
		ir.Field{Name: "b", Type: ir.Int()},
	)
	return &ir.TranslationUnit{
		File:   "main.c",
		Source: "struct pair { int a; int b; };\nvoid check(struct pair p, int *x) { }\n",
		Functions: []ir.FunctionDecl{
			{
				Name: "check", File: "main.c", Line: 2,
				Params: []ir.Param{
					{Name: "p", Type: pair},
					{Name: "x", Type: ir.Ptr(ir.Int())},
				},
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	unit := testUnit()
	result, err := Generate(context.Background(), &provider.StaticProvider{Unit: unit}, &Config{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Target.Name != "check" {
		t.Errorf("target = %s, want check", result.Target.Name)
	}
	if result.Unit != "main.c" {
		t.Errorf("unit = %s, want main.c", result.Unit)
	}
	if result.Locals != 5 {
		t.Errorf("locals = %d, want 5", result.Locals)
	}

	// The harness declares everything, reads primitives, wires the struct and
	// pointer, and calls the target once with parameters in declared order.
	for _, want := range []string{
		"int a;", "int b;", "struct pair p;", "int x_v;", "int * x;",
		"p.a = a;", "p.b = b;", "x = &x_v;",
		"check(p, x);",
	} {
		if !strings.Contains(result.Harness, want) {
			t.Errorf("harness missing %q:\n%s", want, result.Harness)
		}
	}
	if got := strings.Count(result.Harness, "check(p, x);"); got != 1 {
		t.Errorf("call statement count = %d, want 1", got)
	}

	// Output carries the original source ahead of the harness.
	if !strings.HasPrefix(result.Output, "//BEGIN original file\nstruct pair") {
		t.Errorf("output does not start with the original source:\n%s", result.Output)
	}
}

func TestGenerate_ParametersNotInterleaved(t *testing.T) {
	unit := testUnit()
	result, err := Generate(context.Background(), &provider.StaticProvider{Unit: unit}, &Config{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// All of p's statements come before any of x's.
	pDone := strings.Index(result.Harness, "p.b = b;")
	xStart := strings.Index(result.Harness, `scanf("%d", &x_v);`)
	if pDone < 0 || xStart < 0 || pDone > xStart {
		t.Errorf("parameter initializers interleaved: p ends at %d, x starts at %d", pDone, xStart)
	}
}

func TestGenerate_UnsupportedKindAborts(t *testing.T) {
	unit := &ir.TranslationUnit{
		File:   "main.c",
		Source: "void bad(float f) { }\n",
		Functions: []ir.FunctionDecl{
			{
				Name: "bad", File: "main.c", Line: 1,
				Params: []ir.Param{{Name: "f", Type: ir.Opaque("float", "float")}},
			},
		},
	}

	result, err := Generate(context.Background(), &provider.StaticProvider{Unit: unit}, &Config{})
	if result != nil {
		t.Error("Generate() returned a partial result alongside the error")
	}
	var genErr *ir.Error
	if !errors.As(err, &genErr) || genErr.Code != ir.CodeUnsupportedTypeKind {
		t.Fatalf("Generate() error = %v, want code %s", err, ir.CodeUnsupportedTypeKind)
	}
}

func TestGenerate_RefusesExistingHarness(t *testing.T) {
	unit := testUnit()
	unit.Source += "// BEGIN test harness\nint main() { }\n// END test harness\n"

	_, err := Generate(context.Background(), &provider.StaticProvider{Unit: unit}, &Config{})
	var genErr *ir.Error
	if !errors.As(err, &genErr) || genErr.Code != ir.CodeHarnessExists {
		t.Fatalf("Generate() error = %v, want code %s", err, ir.CodeHarnessExists)
	}
}

func TestGenerate_InvalidTargetName(t *testing.T) {
	_, err := Generate(context.Background(),
		&provider.StaticProvider{Unit: testUnit()},
		&Config{Target: "not a c identifier"})
	var genErr *ir.Error
	if !errors.As(err, &genErr) || genErr.Code != ir.CodeInvalidConfig {
		t.Fatalf("Generate() error = %v, want code %s", err, ir.CodeInvalidConfig)
	}
}

func TestGenerator_ToFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "harness.c")

	result, err := FromTranslationUnit(testUnit()).ToFile(context.Background(), out)
	if err != nil {
		t.Fatalf("ToFile() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != result.Output {
		t.Error("file content does not match result output")
	}
}

func TestGenerator_TargetOption(t *testing.T) {
	unit := testUnit()
	unit.Functions = append(unit.Functions, ir.FunctionDecl{
		Name: "later", File: "main.c", Line: 99,
		Params: []ir.Param{{Name: "n", Type: ir.Int()}},
	})

	result, err := FromTranslationUnit(unit).Target("check").Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Target.Name != "check" {
		t.Errorf("target = %s, want check", result.Target.Name)
	}
}
