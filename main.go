package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rm-hull/frame-interpolator/cmd"
	"github.com/rm-hull/frame-interpolator/internal"
	"github.com/rm-hull/frame-interpolator/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var cfg config.Config
	var configPath string
	var blendOut, expandOut, animateOut, pullOut string
	var rootPath string
	var steps int
	var fractions, pullFractions []float64
	var animate bool
	var start int
	var debug bool

	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found")
	}

	rootCmd := &cobra.Command{
		Use:           "frame-interpolator",
		Long:          `Linear interpolation of image frame sequences`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.GetConfig(configPath)
			if err != nil {
				return err
			}

			if err := cmd.ApplyFlags(c, &cfg); err != nil {
				return err
			}

			if err := internal.SetupLogger(cfg.LogLevel, cfg.LogDir); err != nil {
				return err
			}
			internal.ShowVersion()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-dir", "", "Directory for rotating JSON log files")
	rootCmd.PersistentFlags().String("space", "rgb", "Colour space to interpolate in (rgb, hcl, lab)")

	blendCmd := &cobra.Command{
		Use:   "blend <from> <to> [--out <dir>] [--steps <n>] [--t <fraction>...]",
		Short: "Write the in-between frames of two images",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Blend(cfg, args[0], args[1], blendOut, steps, fractions)
		},
	}
	blendCmd.Flags().StringVar(&blendOut, "out", "./export", "Directory to export frames to")
	blendCmd.Flags().IntVar(&steps, "steps", 1, "Number of in-between frames")
	blendCmd.Flags().Float64SliceVar(&fractions, "t", nil, "Explicit fractions to blend at, overrides --steps")
	blendCmd.Flags().String("easing", "linear", "Easing used to space the in-between frames")

	expandCmd := &cobra.Command{
		Use:   "expand <dir> [--out <dir>] [--subdivisions <n>] [--mode faithful|compact] [--animate]",
		Short: "Insert interpolated frames between every pair of frames in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Expand(cfg, args[0], expandOut, animate)
		},
	}
	expandCmd.Flags().StringVar(&expandOut, "out", "./export", "Directory to export frames to")
	expandCmd.Flags().Int("subdivisions", 0, "Number of intermediate frames per pair")
	expandCmd.Flags().String("mode", "faithful", "Sequence layout (faithful, compact)")
	expandCmd.Flags().Int("fps", 24, "Frame rate of the animation")
	expandCmd.Flags().BoolVar(&animate, "animate", false, "Also write an animated PNG")

	animateCmd := &cobra.Command{
		Use:   "animate <dir> [--out <file>] [--fps <n>]",
		Short: "Encode the frames of a directory as an animated PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Animate(cfg, args[0], animateOut)
		},
	}
	animateCmd.Flags().StringVar(&animateOut, "out", "./animated.png", "File to write the animation to")
	animateCmd.Flags().Int("fps", 24, "Frame rate of the animation")

	playCmd := &cobra.Command{
		Use:   "play <dir> [--subdivisions <n>] [--fps <n>] [--start <index>]",
		Short: "Play back an expanded sequence to the log or an MQTT topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Play(cfg, args[0], start)
		},
	}
	playCmd.Flags().Int("subdivisions", 0, "Number of intermediate frames per pair")
	playCmd.Flags().Int("fps", 24, "Playback frame rate")
	playCmd.Flags().IntVar(&start, "start", 0, "Frame to start playback from")

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--root <path>] [--port <port>] [--debug]",
		Short: "Start HTTP API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.ApiServer(cfg, rootPath, debug)
		},
	}
	apiServerCmd.Flags().StringVar(&rootPath, "root", "./data/frames", "Path to frames folder")
	apiServerCmd.Flags().Int("port", 8080, "Port to run HTTP server on")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")

	pullCmd := &cobra.Command{
		Use:   "pull <url> [--out <dir>] [--t <fraction>...]",
		Short: "Download the frames served by another api-server",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Pull(cfg, args[0], pullOut, pullFractions)
		},
	}
	pullCmd.Flags().Float64SliceVar(&pullFractions, "t", nil, "Also fetch remote blends at these fractions between neighbouring frames")
	pullCmd.Flags().StringVar(&pullOut, "out", "./pulled", "Directory to export frames to")

	rootCmd.AddCommand(blendCmd, expandCmd, animateCmd, playCmd, apiServerCmd, pullCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
