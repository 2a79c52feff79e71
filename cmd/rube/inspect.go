package main

import (
	"fmt"
	"os"

	"github.com/milk9111/rube/config"
	"github.com/milk9111/rube/inspect"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [scene]",
	Short: "Load a scene and print its bodies, fixtures and joints",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("sample", "", "inspect an embedded sample scene")
	inspectCmd.Flags().String("script", "", "tengo script to run over the scene summary")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
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
	sc, err := loadScene(l, src)
	if err != nil {
		return err
	}
	summary := inspect.Summarize(sc, cfg.Backend)

	scriptPath, _ := cmd.Flags().GetString("script")
	if scriptPath == "" {
		return inspect.Print(cmd.OutOrStdout(), summary)
	}
	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	lines, err := inspect.RunScript(cmd.Context(), script, summary)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
