package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/milk9111/rube/config"
	"github.com/milk9111/rube/inspect"
	"github.com/milk9111/rube/scenes"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <scene>",
	Short: "Reload a scene file on every change and print its summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	l, err := newLoader(cfg)
	if err != nil {
		return err
	}
	src := sceneSource{name: args[0]}
	out := cmd.OutOrStdout()

	report := func() {
		sc, err := loadScene(l, src)
		if err != nil {
			fmt.Fprintf(out, "load failed: %v\n", err)
			return
		}
		_ = inspect.Print(out, inspect.Summarize(sc, cfg.Backend))
	}
	report()

	w, err := scenes.NewWatcher(cfg.Watch.Debounce, src.name)
	if err != nil {
		return fmt.Errorf("watch %s: %w", src.name, err)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "watching %s\n", src.name)
	return watchLoop(ctx, out, w.Events, w.Errors, report)
}

// watchLoop reports each change until events closes or ctx is done. A closed
// errs channel is dropped from the select.
func watchLoop(ctx context.Context, out io.Writer, events <-chan string, errs <-chan error, report func()) error {
	for {
		select {
		case name, ok := <-events:
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "\n%s changed\n", name)
			report()
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			fmt.Fprintf(out, "watch error: %v\n", err)
		case <-ctx.Done():
			return nil
		}
	}
}
