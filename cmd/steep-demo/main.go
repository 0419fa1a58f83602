package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/steeptui/steep/pkg/ioctx"
	"github.com/steeptui/steep/pkg/steep"
)

// Config holds the application configuration
type Config struct {
	Debug      bool
	FPS        int
	AltScreen  bool
	Mouse      string
	ConfigFile string
	LogFile    string
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "steep-demo [flags]",
		Short: "Interactive demo for the steep TUI runtime",
		Long: `steep-demo runs a small interactive program built on the steep
runtime: a ticking clock, a counter, and an event inspector that echoes
every key, mouse, focus, and paste event it receives.`,
		Example: `  # Run the demo
  steep-demo

  # Run on the alternate screen with full mouse reporting
  steep-demo --alt-screen --mouse all

  # Run with debug logging to a file
  steep-demo --debug --log-file steep.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().IntVar(&cfg.FPS, "fps", 0, "Paint rate in frames per second (1-120)")
	rootCmd.Flags().BoolVar(&cfg.AltScreen, "alt-screen", false, "Run on the alternate screen buffer")
	rootCmd.Flags().StringVar(&cfg.Mouse, "mouse", "", "Mouse reporting mode: cell or all")
	rootCmd.Flags().StringVar(&cfg.ConfigFile, "config", "", "Path to a steep.toml config file")
	rootCmd.Flags().StringVar(&cfg.LogFile, "log-file", "", "Path to log file (logging disabled if not specified)")

	ctx := context.Background()
	ctx = ioctx.StdoutToContext(ctx, os.Stdout)
	ctx = ioctx.StderrToContext(ctx, os.Stderr)
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config) error {
	// With the terminal in raw mode stderr is useless for logs, so
	// logging stays off unless a file is given.
	logDest := io.Discard
	if cfg.LogFile != "" {
		logFile, err := os.Create(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close() //nolint:errcheck
		logDest = logFile
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(logDest, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	opts, err := programOptions(cfg)
	if err != nil {
		return err
	}
	opts = append(opts,
		steep.WithContext(ctx),
		steep.WithLogger(logger),
	)

	prog := steep.New(newDemoModel(), opts...)
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}

// programOptions merges steep.toml settings with command-line flags,
// flags winning.
func programOptions(cfg Config) ([]steep.Option, error) {
	var opts []steep.Option

	if cfg.ConfigFile != "" {
		fileCfg, err := steep.LoadConfig(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fileCfg.Options()...)
	} else {
		cwd, _ := os.Getwd()
		configPath, fileCfg, err := steep.FindConfig(cwd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load steep.toml: %v\n", err)
		} else if fileCfg != nil {
			slog.Debug("loaded config", "path", configPath)
			opts = append(opts, fileCfg.Options()...)
		}
	}

	if cfg.FPS != 0 {
		opts = append(opts, steep.WithFPS(cfg.FPS))
	}
	if cfg.AltScreen {
		opts = append(opts, steep.WithAltScreen())
	}
	switch cfg.Mouse {
	case "":
	case "cell":
		opts = append(opts, steep.WithMouseCellMotion())
	case "all":
		opts = append(opts, steep.WithMouseAllMotion())
	default:
		return nil, fmt.Errorf("unknown mouse mode %q (want cell or all)", cfg.Mouse)
	}

	return opts, nil
}
