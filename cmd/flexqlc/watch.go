package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "watch <fixture.json>",
		Short: "Recompile a fixture every time it or the schema file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchFixture(cmd.Context(), schemaPath, args[0])
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "schema.json", "path to the fixture schema file")
	return cmd
}

func watchFixture(ctx context.Context, schemaPath, fixturePath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, p := range []string{schemaPath, fixturePath} {
		if err := watcher.Add(filepath.Dir(p)); err != nil {
			return err
		}
	}

	recompile := func() {
		cq, err := compileFixture(ctx, fs, schemaPath, fixturePath)
		if err != nil {
			log.Errorf("compile failed: %s", err)
			return
		}
		if err := printCompound(cq); err != nil {
			log.Errorf("print failed: %s", err)
		}
	}
	recompile()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != schemaPath && event.Name != fixturePath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Infof("%s changed, recompiling", event.Name)
			recompile()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch error: %s", err)
		}
	}
}
