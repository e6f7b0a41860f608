package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strings"

	"github.com/charnlabs/charn/charngen/ir"
)

// ClangProvider parses a C file by running clang and decoding its JSON AST
// dump. clang owns all C parsing; this provider only maps the dump into IR.
type ClangProvider struct {
	// File is the C source file to parse.
	File string

	// ClangPath is the clang executable. Defaults to "clang".
	ClangPath string

	// Flags are extra compiler flags (include paths, defines, ...).
	Flags []string
}

// Load runs clang over the file and builds the translation unit.
func (p *ClangProvider) Load(ctx context.Context) (*ir.TranslationUnit, error) {
	source, err := os.ReadFile(p.File)
	if err != nil {
		return nil, ir.Errorf(ir.CodeParseFailed, "read %s: %v", p.File, err)
	}

	clangPath := p.ClangPath
	if clangPath == "" {
		clangPath = "clang"
	}

	args := []string{"-fsyntax-only", "-Xclang", "-ast-dump=json"}
	args = append(args, p.Flags...)
	args = append(args, p.File)

	cmd := exec.CommandContext(ctx, clangPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		// clang exits nonzero on hard errors but still dumps what it parsed;
		// only fail when there is no AST to work with.
		if stdout.Len() == 0 {
			return nil, ir.Errorf(ir.CodeParseFailed, "%s: %v\n%s", p.File, err, stderr.String())
		}
	}

	unit, err := DecodeAST(stdout.Bytes(), p.File)
	if err != nil {
		return nil, err
	}
	unit.Source = string(source)
	return unit, nil
}

// astNode is the subset of clang's JSON AST node shape this provider reads.
type astNode struct {
	Kind               string    `json:"kind"`
	Name               string    `json:"name"`
	TagUsed            string    `json:"tagUsed"`
	CompleteDefinition bool      `json:"completeDefinition"`
	Loc                *astLoc   `json:"loc"`
	Type               *astType  `json:"type"`
	Inner              []astNode `json:"inner"`
}

type astLoc struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

type astType struct {
	QualType string `json:"qualType"`
}

// resolver builds TypeDescriptors from qualType spellings, using the record
// and typedef declarations collected from the dump. Records memoize into a
// single shared descriptor per tag so self-referential structs resolve to a
// cyclic in-memory graph instead of recursing forever here; walking such a
// graph is the flattener's (unguarded) problem.
type resolver struct {
	records  map[string]*astNode // tag name -> RecordDecl
	typedefs map[string]string   // typedef name -> underlying qualType
	memo     map[string]*ir.CompositeDescriptor
}

// DecodeAST maps a clang JSON AST dump onto a translation unit for the given
// primary file. Declarations clang pulled in from headers keep their own file
// attribution so target selection can restrict itself to the primary file.
func DecodeAST(dump []byte, primaryFile string) (*ir.TranslationUnit, error) {
	var root astNode
	if err := json.Unmarshal(dump, &root); err != nil {
		return nil, ir.Errorf(ir.CodeParseFailed, "decode clang AST: %v", err)
	}
	if root.Kind != "TranslationUnitDecl" {
		return nil, ir.Errorf(ir.CodeParseFailed, "unexpected root node kind %q", root.Kind)
	}

	r := &resolver{
		records:  make(map[string]*astNode),
		typedefs: make(map[string]string),
		memo:     make(map[string]*ir.CompositeDescriptor),
	}

	// First pass: index records and typedefs so field types resolve no matter
	// where the declaration sits relative to its uses.
	for i := range root.Inner {
		n := &root.Inner[i]
		switch n.Kind {
		case "RecordDecl":
			if n.Name != "" {
				// A later complete definition wins over a forward declaration.
				if prev, ok := r.records[n.Name]; !ok || !prev.CompleteDefinition {
					r.records[n.Name] = n
				}
			}
		case "TypedefDecl":
			if n.Name != "" && n.Type != nil {
				r.typedefs[n.Name] = n.Type.QualType
			}
		}
	}

	unit := &ir.TranslationUnit{File: primaryFile}

	// Second pass: collect function declarations. clang omits the file name
	// from locations that repeat the previous node's file, so track it.
	currentFile := ""
	for i := range root.Inner {
		n := &root.Inner[i]
		if n.Loc != nil && n.Loc.File != "" {
			currentFile = n.Loc.File
		}
		if n.Kind != "FunctionDecl" {
			continue
		}
		fn := ir.FunctionDecl{Name: n.Name, File: currentFile}
		if n.Loc != nil {
			fn.Line = n.Loc.Line
		}
		for j := range n.Inner {
			parm := &n.Inner[j]
			if parm.Kind != "ParmVarDecl" || parm.Type == nil {
				continue
			}
			fn.Params = append(fn.Params, ir.Param{
				Name: parm.Name,
				Type: r.resolve(parm.Type.QualType),
			})
		}
		unit.Functions = append(unit.Functions, fn)
	}

	return unit, nil
}

// resolve maps a qualType spelling to a TypeDescriptor. Unknown spellings
// become Opaque so the flattener can name the offending kind when it fails.
func (r *resolver) resolve(qualType string) ir.TypeDescriptor {
	spelling := strings.TrimSpace(qualType)

	switch spelling {
	case "int":
		return ir.Int()
	case "unsigned int":
		return ir.UInt()
	case "char":
		return ir.Char()
	}

	if pointee, ok := strings.CutSuffix(spelling, "*"); ok {
		return &ir.PointerDescriptor{
			Pointee:      r.resolve(pointee),
			TypeSpelling: spelling,
		}
	}

	if tag, ok := strings.CutPrefix(spelling, "struct "); ok {
		return r.resolveRecord(tag, spelling)
	}

	if underlying, ok := r.typedefs[spelling]; ok && underlying != spelling {
		return r.resolve(underlying)
	}
	if _, ok := r.records[spelling]; ok {
		return r.resolveRecord(spelling, spelling)
	}

	return ir.Opaque(spelling, spelling)
}

func (r *resolver) resolveRecord(tag, spelling string) ir.TypeDescriptor {
	if memo, ok := r.memo[tag]; ok {
		return memo
	}

	decl, ok := r.records[tag]
	if !ok || !decl.CompleteDefinition {
		return &ir.CompositeDescriptor{TypeSpelling: spelling, Incomplete: true}
	}

	// Insert before resolving fields so self-references share this node.
	composite := &ir.CompositeDescriptor{TypeSpelling: spelling}
	r.memo[tag] = composite
	for i := range decl.Inner {
		f := &decl.Inner[i]
		if f.Kind != "FieldDecl" || f.Type == nil {
			continue
		}
		composite.Fields = append(composite.Fields, ir.Field{
			Name: f.Name,
			Type: r.resolve(f.Type.QualType),
		})
	}
	return composite
}
