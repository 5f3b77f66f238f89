package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(42, 3.5, 12, []string{"10:00-14:00", "16:00-21:30"})

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, int64(42), cmd.OrderID())
	assert.Equal(t, 3.5, cmd.Weight())
	assert.Equal(t, 12, cmd.Region())
	assert.Len(t, cmd.DeliveryHours(), 2)
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	testCases := []struct {
		name          string
		orderID       int64
		weight        float64
		region        int
		deliveryHours []string
	}{
		{"non-positive id", 0, 3.5, 1, []string{"10:00-14:00"}},
		{"non-positive weight", 1, 0, 1, []string{"10:00-14:00"}},
		{"negative region", 1, 3.5, -1, []string{"10:00-14:00"}},
		{"empty delivery hours", 1, 3.5, 1, nil},
		{"malformed window", 1, 3.5, 1, []string{"10:00"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := commands.NewCreateOrderCommand(tc.orderID, tc.weight, tc.region, tc.deliveryHours)
			require.Error(t, err)
		})
	}
}

func TestNewCreateOrderCommand_EmptyHoursError(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(1, 3.5, 1, []string{})

	require.ErrorIs(t, err, order.ErrDeliveryHoursAreRequired)
}

func TestCreateOrderCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.CreateOrderCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
