package ir

import (
	"errors"
	"testing"
)

func TestConstructorSpellings(t *testing.T) {
	tests := []struct {
		name string
		desc TypeDescriptor
		kind DescriptorKind
		want string
	}{
		{"int", Int(), KindPrimitive, "int"},
		{"uint", UInt(), KindPrimitive, "unsigned int"},
		{"char", Char(), KindPrimitive, "char"},
		{"pointer", Ptr(Int()), KindPointer, "int *"},
		{"string", Ptr(Char()), KindPointer, "char *"},
		{"pointer to pointer", Ptr(Ptr(Int())), KindPointer, "int * *"},
		{"composite", Composite("struct point"), KindComposite, "struct point"},
		{"opaque", Opaque("float", "float"), KindOpaque, "float"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.desc.Kind() != tt.kind {
				t.Errorf("Kind() = %s, want %s", tt.desc.Kind(), tt.kind)
			}
			if tt.desc.Spelling() != tt.want {
				t.Errorf("Spelling() = %q, want %q", tt.desc.Spelling(), tt.want)
			}
		})
	}
}

func TestKindStrings(t *testing.T) {
	if KindComposite.String() != "Composite" {
		t.Errorf("KindComposite = %s", KindComposite)
	}
	if DescriptorKind(99).String() != "Unknown" {
		t.Errorf("out-of-range kind = %s", DescriptorKind(99))
	}
	if PrimitiveUInt.String() != "UInt" {
		t.Errorf("PrimitiveUInt = %s", PrimitiveUInt)
	}
}

func TestError(t *testing.T) {
	err := NewError(CodeNoFunctionFound, "no candidate functions")
	if err.Error() != "no_function_found: no candidate functions" {
		t.Errorf("Error() = %q", err.Error())
	}

	wrapped := Errorf(CodeUnsupportedTypeKind, "kind %q", "float")
	var genErr *Error
	if !errors.As(wrapped, &genErr) {
		t.Fatal("Errorf result does not match *Error")
	}
	if genErr.Code != CodeUnsupportedTypeKind || genErr.Message != `kind "float"` {
		t.Errorf("Errorf = %+v", genErr)
	}
}
