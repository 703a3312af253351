package shell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap/zaptest"

	"github.com/lambda-feedback/relay/internal/shell"
)

func TestShell_StartFailure(t *testing.T) {
	s := shell.New(zaptest.NewLogger(t))

	err := s.Run(context.Background(), fx.Invoke(func(lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				return errors.New("address in use")
			},
		})
	}))

	var exitErr *shell.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode)
}

func TestShell_Shutdown(t *testing.T) {
	s := shell.New(zaptest.NewLogger(t))

	stopped := false

	err := s.Run(context.Background(), fx.Invoke(func(lc fx.Lifecycle, shutdowner fx.Shutdowner) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				return shutdowner.Shutdown(fx.ExitCode(0))
			},
			OnStop: func(context.Context) error {
				stopped = true
				return nil
			},
		})
	}))

	var exitErr *shell.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 0, exitErr.ExitCode)
	assert.True(t, stopped)
}

func TestIsExitError(t *testing.T) {
	assert.False(t, shell.IsExitError(nil))
	assert.False(t, shell.IsExitError(errors.New("other")))
	assert.True(t, shell.IsExitError(shell.NewExitError(2)))
}
