package server

import (
	"context"

	"github.com/jjo/stocks/types"
)

type runDelegate func(context.Context) (*types.Table, error)

type mockRunner struct {
	runFn runDelegate
}

func (m *mockRunner) Run(ctx context.Context) (*types.Table, error) {
	if m.runFn != nil {
		return m.runFn(ctx)
	}

	return nil, nil
}
