package main

import (
	"fmt"
	"path/filepath"

	"github.com/milk9111/rube/config"
	"github.com/milk9111/rube/scene"
	"github.com/milk9111/rube/scenes"
	"github.com/milk9111/rube/viewer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var viewCmd = &cobra.Command{
	Use:   "view [scene]",
	Short: "Open a window that simulates and draws a scene",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runView,
}

func init() {
	viewCmd.Flags().String("sample", "", "view an embedded sample scene")
	viewCmd.Flags().Bool("watch", false, "reload the scene when the file changes")
	viewCmd.Flags().Bool("paused", false, "start with the simulation paused")
	_ = viper.BindPFlag("viewer.paused", viewCmd.Flags().Lookup("paused"))
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	src, err := sourceFromArgs(cmd, args)
	if err != nil {
		return err
	}
	l, err := newLoader(cfg)
	if err != nil {
		return err
	}

	var changes <-chan string
	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		if src.sample {
			return fmt.Errorf("--watch needs a scene file, not a sample")
		}
		w, err := scenes.NewWatcher(cfg.Watch.Debounce, src.name)
		if err != nil {
			return fmt.Errorf("watch %s: %w", src.name, err)
		}
		defer w.Close()
		changes = w.Events
	}

	load := func() (*scene.Scene, error) { return loadScene(l, src) }
	g, err := viewer.NewGame(cfg.Viewer, filepath.Base(src.name), load, changes)
	if err != nil {
		return err
	}
	return viewer.Run(g)
}
