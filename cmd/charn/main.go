package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/charnlabs/charn/charngen"
	"github.com/charnlabs/charn/internal/makeflags"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Generate a test harness for a function in a C file."`

	Logs    bool `help:"Print informational logs to stderr." short:"l"`
	Verbose bool `help:"Print informational and diagnostic logs to stderr." short:"v"`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

type GenCmd struct {
	Input      string `arg:"" help:"Path to the C input file." type:"existingfile"`
	Out        string `help:"Path to the output file (defaults to stdout)." short:"o"`
	Func       string `help:"Target a specific function (defaults to the last function in the input file)." short:"n"`
	ClangFlags string `help:"Flags to pass to clang, e.g. -I</path/to/include>." short:"c"`
	Makefile   string `help:"Path to a Makefile whose CFLAGS variable supplies clang flags." short:"m" type:"existingfile"`
	Format     bool   `help:"Format the output with clang-format." short:"f"`
}

func (c *GenCmd) Run() error {
	ctx := context.Background()

	// .env can supply defaults for the clang invocation; flags still win.
	// A missing .env is fine.
	_ = godotenv.Load()

	g := charngen.FromFile(c.Input)
	if c.Func != "" {
		g = g.Target(c.Func)
	}
	if cc := os.Getenv("CHARN_CC"); cc != "" {
		g = g.ClangPath(cc)
	}
	if env := os.Getenv("CHARN_CLANG_FLAGS"); env != "" {
		g = g.ClangFlags(strings.Fields(env)...)
	}
	if c.ClangFlags != "" {
		g = g.ClangFlags(strings.Fields(c.ClangFlags)...)
	}
	if c.Makefile != "" {
		flags, err := makeflags.Extract(c.Makefile)
		if err != nil {
			return err
		}
		g = g.ClangFlags(flags...)
	}
	if c.Format {
		g = g.Format()
	}

	if c.Out != "" {
		result, err := g.ToFile(ctx, c.Out)
		if err != nil {
			return err
		}
		slog.Info("wrote harness", "target", result.Target.Name, "out", c.Out)
		return nil
	}

	result, err := g.Generate(ctx)
	if err != nil {
		return err
	}
	fmt.Print(result.Output)
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("charn"),
		kong.Description("Generate C test harnesses that read inputs and call one target function."),
		kong.UsageOnError(),
	)

	level := slog.LevelError
	if cli.Logs {
		level = slog.LevelInfo
	}
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
