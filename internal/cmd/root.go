package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/vlist/internal/config"
	"github.com/charmbracelet/vlist/internal/log"
	"github.com/charmbracelet/vlist/internal/source"
	"github.com/charmbracelet/vlist/internal/tui"
	"github.com/charmbracelet/vlist/internal/version"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")

	addSourceFlags(rootCmd)
	rootCmd.Flags().StringP("filter", "F", "", "Initial fuzzy filter")
	rootCmd.Flags().BoolP("watch", "w", false, "Reload the file when it changes")
	rootCmd.Flags().Bool("no-scrollbar", false, "Hide the scrollbar")
	rootCmd.Flags().Bool("no-mouse", false, "Disable mouse wheel scrolling")
}

var rootCmd = &cobra.Command{
	Use:   "vlist [file]",
	Short: "Scroll through very long lists in the terminal",
	Long: heredoc.Doc(`
		vlist shows a list of records of any height in a fixed-height viewport.
		Only the records around the scroll position are rendered; their heights
		are measured after each render and used to keep the scroll position
		stable.

		Records come from a JSON array, a text file of blank-line separated
		paragraphs, or are generated when no file is given.
	`),
	Example: heredoc.Doc(`
		# Browse ten thousand generated records
		vlist

		# Browse a JSON array, keyed and displayed by its fields
		vlist --key-field id --text-field title items.json

		# Follow a file as it is rewritten
		vlist --watch notes.txt

		# Start with a fuzzy filter
		vlist --filter "error" log.txt
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupConfig(cmd, args)
		if err != nil {
			return err
		}
		log.Setup(cfg.LogFile(), cfg.Options.Debug)

		records, err := loadRecords(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		opts := tui.Options{}
		opts.Filter, _ = cmd.Flags().GetString("filter")
		if cfg.Source.File != "" {
			opts.Title = filepath.Base(cfg.Source.File)
		}
		if cfg.Source.Watch && cfg.Source.File != "" {
			watcher, err := source.Watch(ctx, cfg.Source.File)
			if err != nil {
				return err
			}
			defer watcher.Close()
			opts.Watcher = watcher
		}

		program := tea.NewProgram(
			tui.New(cfg, records, opts),
			tea.WithAltScreen(),
			tea.WithContext(ctx),
			tea.WithMouseCellMotion(),
		)

		slog.Info("Starting list", "records", len(records), "item_height", cfg.List.ItemHeight)
		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// addSourceFlags registers the flags that describe the records and how they
// are laid out.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("items", "n", 0, "Number of records to generate when no file is given")
	cmd.Flags().Uint64("seed", 0, "Seed for generated records")
	cmd.Flags().IntP("item-height", "i", 0, "Nominal record height in lines")
	cmd.Flags().StringP("key-field", "k", "", "JSON field identifying a record")
	cmd.Flags().StringP("text-field", "t", "", "JSON field to display")
	cmd.Flags().Bool("highlight", false, "Syntax highlight records displayed as raw JSON")
}

// setupConfig loads the configuration for the working directory and applies
// the flags that were set on the command line.
func setupConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	cwd, err := resolveCwd(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cwd, debug)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Source.File = args[0]
	}
	if cfg.Source.File != "" && !filepath.IsAbs(cfg.Source.File) {
		cfg.Source.File = filepath.Join(cwd, cfg.Source.File)
	}

	flags := cmd.Flags()
	if flags.Changed("items") {
		cfg.Source.Items, _ = flags.GetInt("items")
	}
	if flags.Changed("seed") {
		cfg.Source.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("item-height") {
		height, _ := flags.GetInt("item-height")
		if height <= 0 {
			return nil, fmt.Errorf("item height must be positive, got %d", height)
		}
		cfg.List.ItemHeight = height
	}
	if flags.Changed("key-field") {
		cfg.Source.KeyField, _ = flags.GetString("key-field")
	}
	if flags.Changed("text-field") {
		cfg.Source.TextField, _ = flags.GetString("text-field")
	}
	if flags.Changed("highlight") {
		cfg.Source.Highlight, _ = flags.GetBool("highlight")
	}
	if flags.Lookup("watch") != nil && flags.Changed("watch") {
		cfg.Source.Watch, _ = flags.GetBool("watch")
	}
	if flags.Lookup("no-scrollbar") != nil && flags.Changed("no-scrollbar") {
		cfg.List.DisableScrollbar, _ = flags.GetBool("no-scrollbar")
	}
	if flags.Lookup("no-mouse") != nil && flags.Changed("no-mouse") {
		cfg.List.DisableMouse, _ = flags.GetBool("no-mouse")
	}
	return cfg, nil
}

func resolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		if err := os.Chdir(cwd); err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}

func loadRecords(cfg *config.Config) ([]source.Record, error) {
	if cfg.Source.File == "" {
		return source.Generate(cfg.Source.Items, cfg.Source.Seed), nil
	}
	records, err := source.Load(cfg.Source.File)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded records", "path", cfg.Source.File, "records", len(records))
	return records, nil
}
