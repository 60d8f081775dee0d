package main

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

// watch calls fn after every write to one of paths until ctx is done.
func watch(ctx context.Context, paths []string, fn func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}

	klog.InfoS("Watching for changes", "paths", paths)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			klog.V(2).InfoS("File changed", "path", ev.Name, "op", ev.Op.String())
			fn()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			klog.ErrorS(err, "Watcher error")
		}
	}
}
