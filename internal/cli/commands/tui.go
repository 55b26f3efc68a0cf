package commands

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/rcpassos/rasalint/internal/config"
	"github.com/rcpassos/rasalint/internal/project"
	"github.com/rcpassos/rasalint/internal/tui"
	"github.com/rcpassos/rasalint/internal/validator"
	"github.com/spf13/cobra"
)

func TUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse issues interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTUI(".")
		},
	}
}

// RunTUI starts the interactive issue browser with live file watching.
func RunTUI(start string) error {
	root, err := project.FindRoot(start)
	if err != nil {
		return err
	}
	cfg, err := config.LoadFromRoot(root)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	v := validator.New(root, cfg)
	defer v.Close()

	reports := make(chan *validator.Report, 1)
	v.Subscribe(func(report *validator.Report) {
		// Drop the buffered report if the TUI is behind; only the newest
		// pass matters.
		select {
		case reports <- report:
		default:
			select {
			case <-reports:
			default:
			}
			reports <- report
		}
	})

	done := make(chan struct{})
	defer close(done)
	go watchForTUI(root, v, done)

	m := tui.NewModel(root, v, reports)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func watchForTUI(root string, v *validator.Validator, done <-chan struct{}) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("file watching unavailable", "error", err)
		return
	}
	defer watcher.Close()
	if err := addDirs(watcher, root); err != nil {
		slog.Warn("file watching incomplete", "error", err)
	}

	for {
		select {
		case <-done:
			return
		case evt, ok := <-watcher.Events:
			if !ok {
				return
			}
			if evt.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					_ = watcher.Add(evt.Name)
				}
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				v.OnFilesChanged([]string{evt.Name})
			}
		case <-watcher.Errors:
		}
	}
}
