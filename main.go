package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tmayes/go-orbit-tracer/pkg/core"
	"github.com/tmayes/go-orbit-tracer/pkg/renderer"
	"github.com/tmayes/go-orbit-tracer/pkg/scene"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbit-tracer",
		Short: "Progressive path tracer with an orbiting animated camera",
		Long: `An offline Monte Carlo path tracer. The camera orbits the scene over the
animation; each frame is refined progressively with deterministic
low-discrepancy sampling, so renders are reproducible across runs and
worker counts.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./orbit-tracer.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", true, "progress output")

	rootCmd.AddCommand(renderCmd())

	cobra.OnInitialize(initConfig)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("orbit-tracer")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := renderer.Config{
				Width:    viper.GetInt("width"),
				Height:   viper.GetInt("height"),
				Frames:   viper.GetInt("frames"),
				Passes:   viper.GetInt("passes"),
				TileSize: viper.GetInt("tile-size"),
				Workers:  viper.GetInt("workers"),
			}
			if err := validateConfig(config); err != nil {
				return err
			}

			outputDir := viper.GetString("output")
			preview := viper.GetBool("preview")

			return runRender(config, outputDir, preview)
		},
	}

	defaults := renderer.DefaultConfig()
	cmd.Flags().Int("width", defaults.Width, "image width in pixels")
	cmd.Flags().Int("height", defaults.Height, "image height in pixels")
	cmd.Flags().Int("frames", defaults.Frames, "animation frame count (0 renders one static frame)")
	cmd.Flags().Int("passes", defaults.Passes, "samples per pixel")
	cmd.Flags().Int("tile-size", defaults.TileSize, "tile size in pixels")
	cmd.Flags().Int("workers", defaults.Workers, "parallel workers (0 = CPU count)")
	cmd.Flags().String("output", "output/default", "output directory")
	cmd.Flags().Bool("preview", false, "also write downscaled preview thumbnails")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		log.Fatal(err)
	}

	return cmd
}

// validateConfig rejects dimensions the kernel treats as precondition
// violations (zero width/height divides by zero in the pixel mapping)
func validateConfig(config renderer.Config) error {
	if config.Width <= 0 || config.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", config.Width, config.Height)
	}
	if config.Passes <= 0 {
		return fmt.Errorf("passes must be positive, got %d", config.Passes)
	}
	if config.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", config.Frames)
	}
	if config.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", config.TileSize)
	}
	return nil
}

func runRender(config renderer.Config, outputDir string, preview bool) error {
	var logger core.Logger
	if verbose {
		logger = core.NewStdoutLogger()
	} else {
		logger = core.NewSilentLogger()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	world := scene.NewDefaultScene()
	pr := renderer.NewProgressiveRenderer(world, config, logger)

	passChan, frameChan, errChan := pr.RenderProgressive(ctx)

	go func() {
		for result := range passChan {
			if result.IsLast {
				logger.Printf("Frame %d: pass %d/%d done in %v\n",
					result.Frame, result.Stats.PassNumber, config.Passes, result.Stats.Elapsed)
			}
		}
	}()

	for result := range frameChan {
		path := renderer.FramePath(outputDir, result.Frame)
		if err := renderer.SavePNG(result.Image, path); err != nil {
			return err
		}
		logger.Printf("Saved %s\n", path)

		if preview {
			previewPath := renderer.PreviewPath(path)
			if err := renderer.SavePreview(result.Image, previewPath, 160); err != nil {
				return err
			}
		}
	}

	if err := <-errChan; err != nil {
		return fmt.Errorf("render aborted: %w", err)
	}
	return nil
}
