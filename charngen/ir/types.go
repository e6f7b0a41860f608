// Package ir defines the intermediate representation for C type descriptors.
// Providers build these from an external parser's output; the generator
// consumes them without ever touching C source text itself.
package ir

// DescriptorKind identifies the category of a type descriptor.
type DescriptorKind int

const (
	KindPrimitive DescriptorKind = iota // int, unsigned int, char
	KindPointer                         // T *
	KindComposite                       // struct with named, ordered fields
	KindOpaque                          // anything the generator does not support
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindPointer:
		return "Pointer"
	case KindComposite:
		return "Composite"
	case KindOpaque:
		return "Opaque"
	default:
		return "Unknown"
	}
}

// TypeDescriptor is the base interface for all C type descriptors.
// Descriptors are immutable after construction and may be revisited across
// recursive walks; they are never cached or rewritten.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() DescriptorKind

	// Spelling returns the display spelling of the type, used verbatim in
	// generated declarations (e.g. "int", "struct point", "char *").
	Spelling() string

	// Ensure only types in this package can implement TypeDescriptor.
	sealed()
}

// PrimitiveKind identifies the subkind of a primitive type.
type PrimitiveKind int

const (
	PrimitiveInt  PrimitiveKind = iota // signed integer
	PrimitiveUInt                      // unsigned integer
	PrimitiveChar                      // single character
)

// String returns the string representation of the primitive kind.
func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveInt:
		return "Int"
	case PrimitiveUInt:
		return "UInt"
	case PrimitiveChar:
		return "Char"
	default:
		return "Unknown"
	}
}

// PrimitiveDescriptor represents a primitive C type with no further
// structural decomposition.
type PrimitiveDescriptor struct {
	PrimitiveKind PrimitiveKind
	TypeSpelling  string
}

func (d *PrimitiveDescriptor) Kind() DescriptorKind { return KindPrimitive }
func (d *PrimitiveDescriptor) Spelling() string     { return d.TypeSpelling }
func (d *PrimitiveDescriptor) sealed()              {}

// PointerDescriptor represents a C pointer type (T *).
type PointerDescriptor struct {
	// Pointee is the pointed-to type.
	Pointee      TypeDescriptor
	TypeSpelling string
}

func (d *PointerDescriptor) Kind() DescriptorKind { return KindPointer }
func (d *PointerDescriptor) Spelling() string     { return d.TypeSpelling }
func (d *PointerDescriptor) sealed()              {}

// Field is a named member of a composite type.
type Field struct {
	Name string
	Type TypeDescriptor
}

// CompositeDescriptor represents a structure with named, ordered fields.
type CompositeDescriptor struct {
	// Fields are the direct members in declaration order.
	Fields       []Field
	TypeSpelling string

	// Incomplete marks a composite whose field list could not be resolved,
	// e.g. a forward-declared struct. The flattener rejects these instead of
	// treating them as empty.
	Incomplete bool
}

func (d *CompositeDescriptor) Kind() DescriptorKind { return KindComposite }
func (d *CompositeDescriptor) Spelling() string     { return d.TypeSpelling }
func (d *CompositeDescriptor) sealed()              {}

// OpaqueDescriptor represents a type kind the generator does not support
// (floats, arrays, unions, function pointers, ...). KindName preserves the
// parser's kind so failures can identify the offender.
type OpaqueDescriptor struct {
	// KindName is the parser-reported kind, e.g. "float" or "int [4]".
	KindName     string
	TypeSpelling string
}

func (d *OpaqueDescriptor) Kind() DescriptorKind { return KindOpaque }
func (d *OpaqueDescriptor) Spelling() string     { return d.TypeSpelling }
func (d *OpaqueDescriptor) sealed()              {}

// Convenience constructors.

// Int returns a PrimitiveDescriptor for a signed int.
func Int() *PrimitiveDescriptor {
	return &PrimitiveDescriptor{PrimitiveKind: PrimitiveInt, TypeSpelling: "int"}
}

// UInt returns a PrimitiveDescriptor for an unsigned int.
func UInt() *PrimitiveDescriptor {
	return &PrimitiveDescriptor{PrimitiveKind: PrimitiveUInt, TypeSpelling: "unsigned int"}
}

// Char returns a PrimitiveDescriptor for a char.
func Char() *PrimitiveDescriptor {
	return &PrimitiveDescriptor{PrimitiveKind: PrimitiveChar, TypeSpelling: "char"}
}

// Ptr returns a PointerDescriptor for a pointer to the given type.
func Ptr(pointee TypeDescriptor) *PointerDescriptor {
	return &PointerDescriptor{Pointee: pointee, TypeSpelling: pointee.Spelling() + " *"}
}

// Composite returns a CompositeDescriptor with the given spelling and fields.
func Composite(spelling string, fields ...Field) *CompositeDescriptor {
	return &CompositeDescriptor{TypeSpelling: spelling, Fields: fields}
}

// Opaque returns an OpaqueDescriptor for an unsupported type kind.
func Opaque(kindName, spelling string) *OpaqueDescriptor {
	return &OpaqueDescriptor{KindName: kindName, TypeSpelling: spelling}
}
