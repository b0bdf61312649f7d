package main

import (
	"context"
	"sync"

	"essay-grader-service/internal/app"
	"essay-grader-service/internal/config"
)

// commandContext opens the application lazily so --help never touches storage.
type commandContext struct {
	appOnce sync.Once
	app     *app.App
	appErr  error
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensureApp(ctx context.Context) (*app.App, error) {
	c.appOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			c.appErr = err
			return
		}
		app.InitLogger(&cfg.Logger)
		c.app, c.appErr = app.New(ctx, cfg)
	})
	return c.app, c.appErr
}

func (c *commandContext) close() {
	if c.app != nil {
		c.app.Close()
	}
}
