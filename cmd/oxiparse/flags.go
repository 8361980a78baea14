package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dhamidi/oxiparse/config"
	"github.com/dhamidi/oxiparse/oxiby/parser"
)

// parseFlags are the parser settings every command accepts. Flags given on
// the command line override the configuration file.
type parseFlags struct {
	configPath string
	policy     string
	maxDepth   int
	comments   bool
}

func (f *parseFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "configuration file (default: oxiparse.toml or oxiparse.yaml found from the input directory upwards)")
	fs.StringVar(&f.policy, "policy", parser.PolicyFailFast.String(), "error policy: fail-fast or tolerant")
	fs.IntVar(&f.maxDepth, "max-depth", parser.DefaultMaxDepth, "maximum nesting depth of expressions, types and patterns")
	fs.BoolVar(&f.comments, "comments", false, "keep comments with the tree")
}

func (f *parseFlags) load(fs *pflag.FlagSet, dir string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if f.configPath != "" {
		cfg, err = config.Load(f.configPath)
	} else {
		cfg, err = config.Discover(dir)
	}
	if err != nil {
		return nil, err
	}

	if fs.Changed("policy") {
		cfg.Policy = f.policy
	}
	if fs.Changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if fs.Changed("comments") {
		cfg.Comments = f.comments
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

func addColorFlag(fs *pflag.FlagSet, color *bool) {
	fs.BoolVar(color, "color", true, "colour diagnostics when the terminal supports it")
}

// readInput reads the file named by args, or standard input when args is
// empty or "-".
func readInput(cmd *cobra.Command, args []string) (name string, src []byte, err error) {
	if len(args) == 0 || args[0] == "-" {
		src, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", src, nil
	}
	src, err = os.ReadFile(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return args[0], src, nil
}

func inputDir(name string) string {
	if name == "<stdin>" {
		return "."
	}
	return filepath.Dir(name)
}
