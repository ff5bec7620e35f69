package lint

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/guicamillo/eslint-plugin-testing-library/internal/types"
)

// debounce window for editors that fire several write events per save
const watchDebounce = 200 * time.Millisecond

// Watch re-lints files under the given paths whenever they change, passing
// each batch of issues to handler. It blocks until ctx is done.
func Watch(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	opts Options,
	handler func(string, []tt.Issue),
) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range paths {
		err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || p == path {
				return watcher.Add(p)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	lastRun := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !Lintable(event.Name, opts) {
				continue
			}
			if time.Since(lastRun[event.Name]) < watchDebounce {
				continue
			}
			lastRun[event.Name] = time.Now()

			issues, err := engine.Run(event.Name)
			if err != nil {
				logger.Error("Error re-linting file", zap.String("file", event.Name), zap.Error(err))
				continue
			}
			handler(event.Name, issues)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(err))
		}
	}
}
