package refresh

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/jjo/stocks/types"
)

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type (
	nameDelegate     func() string
	nextDelegate     func(error) time.Duration
	runDelegate      func(context.Context) error
	tableDelegate    func(context.Context) (*types.Table, error)
)

type mockJob struct {
	nameFn nameDelegate
	nextFn nextDelegate
	runFn  runDelegate
}

func (m *mockJob) Name() string {
	if m.nameFn != nil {
		return m.nameFn()
	}

	return ""
}

func (m *mockJob) Next(err error) time.Duration {
	if m.nextFn != nil {
		return m.nextFn(err)
	}

	return 0
}

func (m *mockJob) Run(ctx context.Context) error {
	if m.runFn != nil {
		return m.runFn(ctx)
	}

	return nil
}

type mockRunner struct {
	runFn tableDelegate
}

func (m *mockRunner) Run(ctx context.Context) (*types.Table, error) {
	if m.runFn != nil {
		return m.runFn(ctx)
	}

	return nil, nil
}
