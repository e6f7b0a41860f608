package charngen

import (
	"context"
	"path/filepath"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/charnlabs/charn/charngen/ir"
	"github.com/charnlabs/charn/charngen/provider"
	"github.com/charnlabs/charn/charngen/sink"
)

// Config holds the configuration for harness generation.
type Config struct {
	// Target optionally names the function to harness. When empty, the
	// last function declared in the primary file is selected.
	Target string `validate:"omitempty,cident"`

	// ClangPath is the clang executable used to parse the input.
	// Defaults to "clang".
	ClangPath string

	// ClangFlags are extra flags passed to clang, e.g. -I</path/to/include>.
	ClangFlags []string

	// Format pipes the generated file through clang-format.
	Format bool
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Target must be a plausible C identifier before it is ever handed to the
	// selector; anything else is a config mistake, not a missing function.
	if err := v.RegisterValidation("cident", func(fl validator.FieldLevel) bool {
		return identRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// validateConfig checks cfg and wraps failures in the generation error
// envelope so callers can branch on the code.
func validateConfig(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return ir.Errorf(ir.CodeInvalidConfig, "invalid config: %v", err)
	}
	return nil
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg *Config) *Config {
	// Make a copy to avoid mutating the input
	result := *cfg
	if result.ClangPath == "" {
		result.ClangPath = "clang"
	}
	return &result
}

// Generator provides a fluent API for harness generation.
// Create with FromFile() or FromTranslationUnit() and configure with method
// chaining.
//
// Example:
//
//	charngen.FromFile("segment.c").
//	    Target("handle_packet").
//	    ToFile(ctx, "segment_harness.c")
type Generator struct {
	prov provider.Provider
	file string
	cfg  Config
}

// FromFile creates a Generator that parses the given C file with clang.
func FromFile(path string) *Generator {
	return &Generator{file: path}
}

// FromTranslationUnit creates a Generator for an already-parsed unit.
func FromTranslationUnit(unit *ir.TranslationUnit) *Generator {
	return &Generator{prov: &provider.StaticProvider{Unit: unit}}
}

// FromProvider creates a Generator backed by a custom provider.
func FromProvider(p provider.Provider) *Generator {
	return &Generator{prov: p}
}

// Target selects the function to harness by name.
func (g *Generator) Target(name string) *Generator {
	g.cfg.Target = name
	return g
}

// ClangPath sets the clang executable used to parse the input.
func (g *Generator) ClangPath(path string) *Generator {
	g.cfg.ClangPath = path
	return g
}

// ClangFlags appends flags passed to clang.
func (g *Generator) ClangFlags(flags ...string) *Generator {
	g.cfg.ClangFlags = append(g.cfg.ClangFlags, flags...)
	return g
}

// Format enables piping the output through clang-format.
func (g *Generator) Format() *Generator {
	g.cfg.Format = true
	return g
}

// Generate runs the pipeline and returns the result in memory.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	return Generate(ctx, g.provider(), &g.cfg)
}

// ToFile runs the pipeline and writes the complete output file to path.
// This is a terminal operation.
func (g *Generator) ToFile(ctx context.Context, path string) (*Result, error) {
	result, err := g.Generate(ctx)
	if err != nil {
		return nil, err
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	fs := sink.NewFilesystemSink(dir)
	if err := fs.WriteFile(ctx, base, []byte(result.Output)); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *Generator) provider() provider.Provider {
	if g.prov != nil {
		return g.prov
	}
	return &provider.ClangProvider{
		File:      g.file,
		ClangPath: g.cfg.ClangPath,
		Flags:     g.cfg.ClangFlags,
	}
}
