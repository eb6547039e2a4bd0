package executor

import (
	"context"
	"io"
)

// mockProcessRunner is a ProcessRunner for tests.
type mockProcessRunner struct {
	runFunc       func(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error)
	shouldTimeout bool
	callCount     int
}

func (m *mockProcessRunner) Run(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	m.callCount++

	if m.shouldTimeout {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}
	if m.runFunc != nil {
		return m.runFunc(ctx, path, args, stdin)
	}
	return []byte("{}"), nil, nil
}
