package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dhamidi/oxiparse/format"
	"github.com/dhamidi/oxiparse/oxiby/workspace"
)

func newWatchCmd() *cobra.Command {
	var flags parseFlags
	var color bool

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Check a directory and re-check files as they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			cfg, err := flags.load(cmd.Flags(), dir)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			ws := workspace.New(dir, cfg)
			if err := ws.ScanAll(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderer := format.NewDiagnosticRenderer(cmd.ErrOrStderr(), color)
			for _, d := range ws.Diagnostics() {
				f := ws.GetFile(d.Path)
				if err := renderer.Render(f.Content, d.Error); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "watching %d files in %s\n", len(ws.Files()), dir)

			w, err := workspace.NewWatcher(ws)
			if err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			defer w.Close()

			errC := make(chan error, 1)
			go func() { errC <- w.Run(ctx) }()

			for ev := range w.Events() {
				switch ev.Kind {
				case workspace.EventParsed:
					if ev.File == nil {
						continue
					}
					if len(ev.File.Errors) == 0 {
						fmt.Fprintf(out, "ok %s\n", ev.Path)
						continue
					}
					if err := renderer.RenderAll(ev.File.Content, ev.File.Errors); err != nil {
						return err
					}
				case workspace.EventRemoved:
					fmt.Fprintf(out, "removed %s\n", ev.Path)
				}
			}

			if err := <-errC; err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	flags.register(cmd.Flags())
	addColorFlag(cmd.Flags(), &color)

	return cmd
}
