package main

import (
	"fmt"
	"log"
	"os"

	"github.com/milk9111/rube/config"
	"github.com/milk9111/rube/loader"
	"github.com/milk9111/rube/physics"
	"github.com/milk9111/rube/physics/b2"
	"github.com/milk9111/rube/physics/chipmunk"
	"github.com/milk9111/rube/scene"
	"github.com/milk9111/rube/scenes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:          "rube",
	Short:        "Load, inspect and view RUBE physics scenes",
	Long:         "rube builds the physics world described by a RUBE scene export and lets you inspect, watch or view it.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .rube.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log loader diagnostics")
	rootCmd.PersistentFlags().String("backend", config.BackendChipmunk, "physics backend: chipmunk or box2d")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".rube")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.BindEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

func newEngine(backend string) (physics.Engine, error) {
	switch backend {
	case config.BackendChipmunk:
		return chipmunk.New(), nil
	case config.BackendBox2D:
		return b2.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

func newLoader(cfg config.Config) (*loader.Loader, error) {
	engine, err := newEngine(cfg.Backend)
	if err != nil {
		return nil, err
	}
	var opts loader.Options
	if cfg.Verbose {
		opts.Logf = log.Printf
	}
	return loader.New(engine, opts), nil
}

// sceneSource names where a scene comes from: a path (or sample name) given
// as an argument, or an embedded sample.
type sceneSource struct {
	name   string
	sample bool
}

func (s sceneSource) String() string {
	if s.sample {
		return "sample " + s.name
	}
	return s.name
}

func sourceFromArgs(cmd *cobra.Command, args []string) (sceneSource, error) {
	sample, _ := cmd.Flags().GetString("sample")
	switch {
	case sample != "" && len(args) > 0:
		return sceneSource{}, fmt.Errorf("give either a scene path or --sample, not both")
	case sample != "":
		return sceneSource{name: sample, sample: true}, nil
	case len(args) == 1:
		return sceneSource{name: args[0]}, nil
	default:
		return sceneSource{}, fmt.Errorf("a scene path or --sample is required (samples: %v)", scenes.Samples())
	}
}

func loadScene(l *loader.Loader, src sceneSource) (*scene.Scene, error) {
	load := scenes.Load
	if src.sample {
		load = scenes.LoadSample
	}
	data, format, err := load(src.name)
	if err != nil {
		return nil, err
	}
	sc, err := l.LoadBytes(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return sc, nil
}
