package laundromat_test

import (
	"testing"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/laundromat"
	"washday/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustZip(t *testing.T, code string) kernel.PostalCode {
	t.Helper()
	zip, err := kernel.NewPostalCode(code)
	require.NoError(t, err)
	return zip
}

func TestNewLaundromat(t *testing.T) {
	t.Run("should create active laundromat", func(t *testing.T) {
		l, err := laundromat.NewLaundromat(
			kernel.NewUUID(),
			"Midtown Wash Co",
			[]kernel.PostalCode{mustZip(t, "48201"), mustZip(t, "48226")},
			25,
		)

		require.NoError(t, err)
		require.NoError(t, l.Validate())
		assert.True(t, l.IsActive())
		assert.Equal(t, 25, l.DailyCapacity())
		assert.Len(t, l.ServiceAreas(), 2)
	})

	t.Run("should reject empty name", func(t *testing.T) {
		_, err := laundromat.NewLaundromat(
			kernel.NewUUID(), "", []kernel.PostalCode{mustZip(t, "48201")}, 25)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject empty service area", func(t *testing.T) {
		_, err := laundromat.NewLaundromat(kernel.NewUUID(), "Midtown Wash Co", nil, 25)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject non-positive capacity", func(t *testing.T) {
		_, err := laundromat.NewLaundromat(
			kernel.NewUUID(), "Midtown Wash Co", []kernel.PostalCode{mustZip(t, "48201")}, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestLaundromat_Covers(t *testing.T) {
	l, err := laundromat.NewLaundromat(
		kernel.NewUUID(),
		"Midtown Wash Co",
		[]kernel.PostalCode{mustZip(t, "48201"), mustZip(t, "48226")},
		25,
	)
	require.NoError(t, err)

	assert.True(t, l.Covers(mustZip(t, "48201")))
	assert.True(t, l.Covers(mustZip(t, "48226")))
	assert.False(t, l.Covers(mustZip(t, "48034")))
}

func TestLaundromat_ActiveFlag(t *testing.T) {
	l, err := laundromat.NewLaundromat(
		kernel.NewUUID(), "Midtown Wash Co", []kernel.PostalCode{mustZip(t, "48201")}, 25)
	require.NoError(t, err)

	l.Deactivate()
	assert.False(t, l.IsActive())

	l.Activate()
	assert.True(t, l.IsActive())
}

func TestLaundromat_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var l laundromat.Laundromat
		require.ErrorIs(t, l.Validate(), laundromat.ErrLaundromatIsNotConstructed)
	})
}
