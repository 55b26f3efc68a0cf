package commands

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rcpassos/rasalint/internal/config"
	"github.com/rcpassos/rasalint/internal/project"
	"github.com/rcpassos/rasalint/internal/validator"
	"github.com/spf13/cobra"
)

func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Revalidate whenever project files change",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := project.FindRoot(".")
			if err != nil {
				return err
			}
			cfg, err := config.LoadFromRoot(root)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			v := validator.New(root, cfg)
			defer v.Close()

			v.Subscribe(func(report *validator.Report) {
				printReport(cmd.OutOrStdout(), root, report)
			})

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			defer watcher.Close()
			if err := addDirs(watcher, root); err != nil {
				return err
			}

			v.Validate(cmd.Context())

			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case evt, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if evt.Op&fsnotify.Create != 0 {
						if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
							_ = watcher.Add(evt.Name)
						}
					}
					if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
						v.OnFilesChanged([]string{evt.Name})
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					slog.Warn("watch error", "error", err)
				}
			}
		},
	}
	return cmd
}

// addDirs registers every non-hidden directory under root; fsnotify watches
// are not recursive.
func addDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && (d.Name() == "models" || d.Name() == ".rasa" || d.Name()[0] == '.') {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
