package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDispatchOrdersCommand(t *testing.T) {
	t.Run("valid courier id", func(t *testing.T) {
		cmd, err := commands.NewDispatchOrdersCommand(7)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, int64(7), cmd.CourierID())
	})

	t.Run("non-positive courier id", func(t *testing.T) {
		_, err := commands.NewDispatchOrdersCommand(0)
		require.Error(t, err)

		_, err = commands.NewDispatchOrdersCommand(-1)
		require.Error(t, err)
	})
}

func TestDispatchOrdersCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.DispatchOrdersCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrDispatchOrdersCommandIsNotConstructed)
}
