package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dhamidi/oxiparse/format"
	"github.com/dhamidi/oxiparse/oxiby/workspace"
)

func newCheckCmd() *cobra.Command {
	var flags parseFlags
	var color bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Parse files and directories and report syntax errors",
		Long: `Parse files and directories and report syntax errors.

Directories are searched recursively for source files, which are parsed in
parallel. The command fails when any file has an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			renderer := format.NewDiagnosticRenderer(cmd.ErrOrStderr(), color)
			files, errCount := 0, 0
			for _, arg := range args {
				ws, err := checkPath(ctx, cmd.Flags(), &flags, arg)
				if err != nil {
					return err
				}
				for _, path := range ws.Files() {
					f := ws.GetFile(path)
					files++
					errCount += len(f.Errors)
					if err := renderer.RenderAll(f.Content, f.Errors); err != nil {
						return err
					}
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "checked %d files, %d errors\n", files, errCount)
			if errCount > 0 {
				return fmt.Errorf("found %d syntax errors", errCount)
			}
			return nil
		},
	}

	flags.register(cmd.Flags())
	addColorFlag(cmd.Flags(), &color)
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up after this long (0 means no limit)")

	return cmd
}

// checkPath parses path, a directory or a single file, in a workspace of
// its own so each argument picks up its nearest configuration file.
func checkPath(ctx context.Context, fs *pflag.FlagSet, flags *parseFlags, path string) (*workspace.Workspace, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	dir := path
	if !info.IsDir() {
		dir = filepath.Dir(path)
	}
	cfg, err := flags.load(fs, dir)
	if err != nil {
		return nil, err
	}

	ws := workspace.New(dir, cfg)
	if !info.IsDir() {
		return ws, ws.ScanFile(path)
	}
	if err := ws.ScanAll(ctx); err != nil {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}
	return ws, nil
}
