package main

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mdouchement/ngr"
	"github.com/mdouchement/ngr/tilecache"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ngrpaint",
	Short: "Render a region of an NGR raw slide to PNG",
	Long: `ngrpaint reads Hamamatsu NGR raw slide data and renders a requested
region of one pyramid level to a PNG file.

NGR files are headerless, so the pyramid geometry must be supplied: either
for a single level through flags, or for a whole pyramid through a YAML
config file listing one entry per level:

  levels:
    - file: slide.ngr
      offset: 256
      width: 51200
      height: 38400
      columnwidth: 256

Examples:
  # Render 512x512 pixels from the top-left of a single-level file
  ngrpaint --file slide.ngr --width 51200 --height 38400 --column-width 256 --region-width 512 --region-height 512 -o out.png

  # Render from level 2 of a pyramid described in ngr.yaml
  ngrpaint --config ngr.yaml --level 2 --x 1024 --y 1024 --region-width 800 --region-height 600 -o out.png`,
	RunE: runPaint,
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML file describing the pyramid levels")
	rootCmd.PersistentFlags().Bool("verbose", false, "log per-tile decode details to stderr")

	// Single-level mode
	rootCmd.PersistentFlags().String("file", "", "NGR pixel data file (single-level mode)")
	rootCmd.PersistentFlags().Int64("offset", 0, "byte offset where pixel data begins")
	rootCmd.PersistentFlags().Int64("width", 0, "level width in pixels")
	rootCmd.PersistentFlags().Int64("height", 0, "level height in pixels")
	rootCmd.PersistentFlags().Int64("column-width", 0, "tile column width in pixels")

	// Region selection
	rootCmd.Flags().Int32("level", 0, "pyramid level to read")
	rootCmd.Flags().Int64("x", 0, "region origin x, in base-resolution pixels")
	rootCmd.Flags().Int64("y", 0, "region origin y, in base-resolution pixels")
	rootCmd.Flags().Int32("region-width", 0, "region width in pixels (required)")
	rootCmd.Flags().Int32("region-height", 0, "region height in pixels (required)")
	rootCmd.Flags().StringP("output", "o", "", "output PNG file (default: stdout)")
	rootCmd.Flags().Int64("cache-budget", 0, "tile cache budget in bytes (default 32 MiB)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("file", rootCmd.PersistentFlags().Lookup("file"))
	viper.BindPFlag("offset", rootCmd.PersistentFlags().Lookup("offset"))
	viper.BindPFlag("width", rootCmd.PersistentFlags().Lookup("width"))
	viper.BindPFlag("height", rootCmd.PersistentFlags().Lookup("height"))
	viper.BindPFlag("column-width", rootCmd.PersistentFlags().Lookup("column-width"))
	viper.BindPFlag("level", rootCmd.Flags().Lookup("level"))
	viper.BindPFlag("x", rootCmd.Flags().Lookup("x"))
	viper.BindPFlag("y", rootCmd.Flags().Lookup("y"))
	viper.BindPFlag("region-width", rootCmd.Flags().Lookup("region-width"))
	viper.BindPFlag("region-height", rootCmd.Flags().Lookup("region-height"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("cache-budget", rootCmd.Flags().Lookup("cache-budget"))
}

// initConfig reads in the config file and matching environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintln(os.Stderr, "Cannot read config file:", err)
			os.Exit(1)
		}
	}
	viper.AutomaticEnv()
}

// levelConfig is one pyramid level entry of the YAML config.
type levelConfig struct {
	File        string `mapstructure:"file"`
	Offset      int64  `mapstructure:"offset"`
	Width       int64  `mapstructure:"width"`
	Height      int64  `mapstructure:"height"`
	ColumnWidth int64  `mapstructure:"columnwidth"`
}

// loadLevels builds the level descriptors, either from the config file or
// from the single-level flags.
func loadLevels() ([]*ngr.Level, error) {
	var entries []levelConfig
	if err := viper.UnmarshalKey("levels", &entries); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		file := viper.GetString("file")
		if file == "" {
			return nil, fmt.Errorf("no levels configured: use --config or --file")
		}
		entries = []levelConfig{{
			File:        file,
			Offset:      viper.GetInt64("offset"),
			Width:       viper.GetInt64("width"),
			Height:      viper.GetInt64("height"),
			ColumnWidth: viper.GetInt64("column-width"),
		}}
	}

	levels := make([]*ngr.Level, len(entries))
	for i, e := range entries {
		levels[i] = &ngr.Level{
			Filename:    e.File,
			Start:       e.Offset,
			Width:       e.Width,
			Height:      e.Height,
			ColumnWidth: e.ColumnWidth,
		}
	}
	return levels, nil
}

// openSlide installs the NGR backend on a fresh handle.
func openSlide() (*ngr.Slide, error) {
	if viper.GetBool("verbose") {
		ngr.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	levels, err := loadLevels()
	if err != nil {
		return nil, err
	}

	s := ngr.NewSlide(tilecache.New(viper.GetInt64("cache-budget")))
	if err := ngr.Install(s, levels); err != nil {
		return nil, err
	}
	return s, nil
}

func runPaint(cmd *cobra.Command, args []string) error {
	w := viper.GetInt32("region-width")
	h := viper.GetInt32("region-height")
	if w <= 0 || h <= 0 {
		return fmt.Errorf("region size %dx%d: use --region-width and --region-height", w, h)
	}

	s, err := openSlide()
	if err != nil {
		return err
	}
	defer s.Close()

	level := viper.GetInt32("level")
	if level < 0 || level >= s.LevelCount() {
		return fmt.Errorf("level %d out of range [0, %d)", level, s.LevelCount())
	}

	img, err := s.ReadRegion(viper.GetInt64("x"), viper.GetInt64("y"), level, w, h)
	if err != nil {
		return err
	}

	var out *os.File
	if output := viper.GetString("output"); output != "" {
		out, err = os.Create(output)
		if err != nil {
			return err
		}
		defer out.Close()
	} else {
		out = os.Stdout
	}

	return png.Encode(out, img)
}
