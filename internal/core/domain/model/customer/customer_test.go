package customer_test

import (
	"testing"

	"washday/internal/core/domain/model/customer"
	"washday/internal/core/domain/model/kernel"
	"washday/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("should create valid customer", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.NewUUID(), "Ada Washington", "Ada@Example.com", "+13135550100", true)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "ada@example.com", c.Email())
		assert.True(t, c.IsGuest())
	})

	t.Run("should reject missing name", func(t *testing.T) {
		_, err := customer.NewCustomer(kernel.NewUUID(), "", "ada@example.com", "", false)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject malformed emails", func(t *testing.T) {
		tests := []string{"", "plainaddress", "@example.com", "ada@", "ada @example.com"}
		for _, email := range tests {
			t.Run(email, func(t *testing.T) {
				_, err := customer.NewCustomer(kernel.NewUUID(), "Ada", email, "", false)
				require.Error(t, err)
			})
		}
	})
}

func TestCustomer_Register(t *testing.T) {
	c, err := customer.NewCustomer(kernel.NewUUID(), "Ada Washington", "ada@example.com", "", true)
	require.NoError(t, err)

	c.Register()

	assert.False(t, c.IsGuest())
}

func TestCustomer_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var c customer.Customer
		require.ErrorIs(t, c.Validate(), customer.ErrCustomerIsNotConstructed)
	})
}
