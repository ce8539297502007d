package commands_test

import (
	"testing"
	"time"

	"washday/internal/core/application/usecases/commands"
	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "Ada Smith", "ada@example.com", "+14155550101",
		mustAddress(t, "600 Guerrero St", "San Francisco", "94110"),
		mustAddress(t, "48 Dolores St", "San Francisco", "94103"),
		order.ServiceWashFold, 20,
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), order.WindowMorning,
		mustMoney(t, 0),
	)
	require.NoError(t, err)
	return cmd
}

func TestNewCreateOrderCommand(t *testing.T) {
	pickup := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("should create valid command", func(t *testing.T) {
		cmd := validCreateOrderCommand(t)

		require.NoError(t, cmd.Validate())
		assert.Equal(t, "ada@example.com", cmd.CustomerEmail())
		assert.Equal(t, order.ServiceWashFold, cmd.ServiceType())
		assert.Equal(t, 20, cmd.DeclaredPounds())
	})

	t.Run("should reject empty customer name", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "", "ada@example.com", "",
			mustAddress(t, "600 Guerrero St", "San Francisco", "94110"),
			mustAddress(t, "48 Dolores St", "San Francisco", "94103"),
			order.ServiceWashFold, 20, pickup, order.WindowMorning, mustMoney(t, 0),
		)

		require.ErrorIs(t, err, commands.ErrCustomerNameIsRequired)
	})

	t.Run("should reject empty email", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "Ada Smith", "", "",
			mustAddress(t, "600 Guerrero St", "San Francisco", "94110"),
			mustAddress(t, "48 Dolores St", "San Francisco", "94103"),
			order.ServiceWashFold, 20, pickup, order.WindowMorning, mustMoney(t, 0),
		)

		require.ErrorIs(t, err, commands.ErrCustomerEmailIsRequired)
	})

	t.Run("should reject unconstructed address", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "Ada Smith", "ada@example.com", "",
			order.Address{},
			mustAddress(t, "48 Dolores St", "San Francisco", "94103"),
			order.ServiceWashFold, 20, pickup, order.WindowMorning, mustMoney(t, 0),
		)

		require.Error(t, err)
	})

	t.Run("should reject zero pickup date", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "Ada Smith", "ada@example.com", "",
			mustAddress(t, "600 Guerrero St", "San Francisco", "94110"),
			mustAddress(t, "48 Dolores St", "San Francisco", "94103"),
			order.ServiceWashFold, 20, time.Time{}, order.WindowMorning, mustMoney(t, 0),
		)

		require.ErrorIs(t, err, commands.ErrPickupDateIsRequired)
	})

	t.Run("should reject default constructed command", func(t *testing.T) {
		cmd := commands.CreateOrderCommand{}

		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
