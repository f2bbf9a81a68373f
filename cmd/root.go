// Package cmd wires up the CLI: flag and config resolution, repo
// validation, and starting the TUI.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dlukegordon/majjit/internal/config"
	"github.com/dlukegordon/majjit/internal/jj"
	"github.com/dlukegordon/majjit/internal/log"
	"github.com/dlukegordon/majjit/internal/ui"
	"github.com/dlukegordon/majjit/internal/watcher"
)

var (
	// Version is set at build time via ldflags.
	Version = "dev"

	flagRepository    string
	flagRevisions     string
	flagDebug         bool
	flagNoAutoRefresh bool
)

var rootCmd = &cobra.Command{
	Use:           "majjit",
	Short:         "A magit-style TUI for jj",
	Long:          "majjit shows the jj log as a foldable tree: unfold a change\ninto its files, a file into its diff hunks, and run jj commands\nwith magit-style key sequences.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagRepository, "repository", "R", "", "path to the jj repository (default: current directory)")
	rootCmd.Flags().StringVarP(&flagRevisions, "revisions", "r", "", "revset to log (default: jj's configured default)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "write debug logs to majjit.log")
	rootCmd.Flags().BoolVar(&flagNoAutoRefresh, "no-auto-refresh", false, "do not refresh when the repo changes")

	rootCmd.AddCommand(initConfigCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if flagDebug || os.Getenv("MAJJIT_DEBUG") != "" {
		cleanup, err := log.Init("majjit.log")
		if err != nil {
			return fmt.Errorf("setting up debug log: %w", err)
		}
		defer cleanup()
		log.SetEnabled(true)
	}

	root, err := jj.EnsureValidRepo(flagRepository)
	if err != nil {
		if errors.Is(err, jj.ErrNotARepo) {
			return fmt.Errorf("%s is not inside a jj repository", displayPath(flagRepository))
		}
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("revisions") {
		cfg.Revisions = flagRevisions
	}
	if flagNoAutoRefresh {
		cfg.AutoRefresh = false
	}

	runner := jj.NewExecutor(root)
	runner.SetIgnoreImmutable(cfg.IgnoreImmutable)

	var refresh <-chan struct{}
	if cfg.AutoRefresh {
		w, err := watcher.New(jj.OpHeadsDir(root))
		if err != nil {
			log.Warn(log.CatWatcher, "auto-refresh unavailable", "err", err)
		} else {
			defer w.Close()
			refresh = w.Events()
		}
	}

	model, err := ui.New(runner, cfg, refresh)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	if m, ok := final.(*ui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

func displayPath(path string) string {
	if path == "" {
		return "the current directory"
	}
	return path
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a default config file to the repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := jj.EnsureValidRepo(flagRepository)
		if err != nil {
			return err
		}
		path, err := config.WriteDefault(filepath.Join(root, ".majjit"))
		if err != nil {
			return err
		}
		fmt.Println("wrote", path)
		return nil
	},
}
