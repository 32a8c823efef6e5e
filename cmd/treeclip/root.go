package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"treeclip/internal/clipboard"
	"treeclip/internal/config"
	"treeclip/internal/log"
	"treeclip/internal/snippet"
	"treeclip/internal/tree"
	"treeclip/internal/tui"
	"treeclip/internal/watch"
)

var (
	cfgFile    string
	printOnly  bool
	showHidden bool
	debugMode  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "treeclip [directory]",
		Short: "Browse a directory tree and copy selected files to the clipboard as Markdown",
		Long: `Treeclip shows a directory tree in the terminal. Navigate with vim-style
keys (j/k, gg, [count]G), toggle files and whole directories with Enter,
and quit with q. The selected files are copied to the system clipboard as
Markdown fenced code blocks, ready to paste.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/treeclip/config.yaml)")
	rootCmd.Flags().BoolVar(&printOnly, "print", false, "write the snippet to stdout instead of the clipboard")
	rootCmd.Flags().BoolVar(&showHidden, "hidden", false, "include hidden files and directories")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	// Load config
	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadConfigFile(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("hidden") {
		cfg.Settings.ShowHidden = showHidden
	}
	if cmd.Flags().Changed("debug") {
		cfg.Settings.Debug = debugMode
	}

	if cfg.Settings.Debug {
		if err := log.Setup(log.DefaultPath(), true); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		}
	}

	// Determine the start directory
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	t, err := tree.Scan(root, tree.Options{
		IgnoreDirs:  cfg.Ignore.Dirs,
		IgnoreGlobs: cfg.Ignore.Patterns,
		ShowHidden:  cfg.Settings.ShowHidden,
	})
	if err != nil {
		return err
	}
	log.Info("scanned %s: %d entries", root, t.Len())

	model := tui.New(t, cfg)

	var watcher *watch.Watcher
	if cfg.Settings.Watch {
		watcher, err = watch.New()
		if err == nil {
			err = watcher.AddTree(root)
		}
		if err == nil {
			err = watcher.Start()
		}
		if err != nil {
			// The session works fine without staleness warnings
			log.Warn("watcher disabled: %v", err)
			watcher = nil
		}
	}
	if watcher != nil {
		model.SetWatcher(watcher)
		defer watcher.Stop()
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("terminal session failed: %w", err)
	}

	final, ok := finalModel.(*tui.Model)
	if !ok {
		return fmt.Errorf("unexpected model type %T", finalModel)
	}

	paths := final.SelectedPaths()
	if len(paths) == 0 {
		fmt.Println("Nothing selected.")
		return nil
	}

	res := snippet.Build(t.Root, paths)
	for _, skipped := range res.Skipped {
		fmt.Fprintf(os.Stderr, "Skipped (binary or unreadable): %s\n", skipped)
	}

	if printOnly {
		fmt.Println(res.Text)
		return nil
	}

	if err := clipboard.Write(res.Text); err != nil {
		return err
	}
	fmt.Printf("Copied %d file(s) to the clipboard.\n", len(paths)-len(res.Skipped))
	return nil
}
