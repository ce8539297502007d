package queries_test

import (
	"testing"

	"washday/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackOrderQuery_Valid(t *testing.T) {
	query, err := queries.NewTrackOrderQuery("aaaabbbbccccddddaaaabbbbccccdddd")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "aaaabbbbccccddddaaaabbbbccccdddd", query.AccessToken())
}

func TestNewTrackOrderQuery_EmptyToken(t *testing.T) {
	_, err := queries.NewTrackOrderQuery("")
	assert.ErrorIs(t, err, queries.ErrAccessTokenIsRequired)
}

func TestTrackOrderQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.TrackOrderQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrTrackOrderQueryIsNotConstructed)
}
