package ir

// Param is a function parameter: a name and its type handle.
type Param struct {
	Name string
	Type TypeDescriptor
}

// FunctionDecl describes one function declaration reported by the parser.
type FunctionDecl struct {
	Name string

	// File and Line locate the declaration in source. File is empty when the
	// parser could not attribute the declaration to a file (e.g. builtins).
	File string
	Line int

	// Params are the declared parameters in order.
	Params []Param
}

// TranslationUnit is the parsed view of a single C source file.
type TranslationUnit struct {
	// File is the primary file of the translation unit.
	File string

	// Source is the original source text. It is carried along so the emitted
	// harness can be appended to a copy of the input.
	Source string

	// Functions are the enumerated function declarations in source order.
	Functions []FunctionDecl
}
