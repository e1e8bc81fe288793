package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/notegraph/internal/apperr"
	"github.com/starford/notegraph/internal/watcher"
)

// Watch converts the tree into the output file, then converts it again from
// scratch after every burst of changes until ctx is cancelled or a signal
// arrives. A failed rebuild is logged and the previous file stays.
func Watch(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}
	if app.config.Output.Path == "" {
		return fmt.Errorf("watch needs an output file: %w", apperr.ErrConfig)
	}

	res, err := app.convert()
	if err != nil {
		return err
	}
	if err := app.write(res); err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	gCtx, stop := signal.NotifyContext(gCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	last := res.etag()
	g.Go(func() error {
		return watcher.Watch(gCtx, app.config.Notes.Root, watcher.DefaultDebounce, app.logger, func() {
			res, err := app.convert()
			if err != nil {
				app.logger.Warn("rebuild failed", slog.String("error", err.Error()))
				return
			}
			if res.etag() == last {
				app.logger.Debug("rebuild unchanged")
				return
			}
			if err := app.write(res); err != nil {
				app.logger.Error("write failed", slog.String("error", err.Error()))
				return
			}
			last = res.etag()
		})
	})

	if err := g.Wait(); err != nil {
		return err
	}
	app.logger.Info("Watch stopped")
	return nil
}
