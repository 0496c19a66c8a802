package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	mockDB := NewMockDB(t)
	require.NotNil(t, mockDB.DB)
	require.NotNil(t, mockDB.Mock)
	mockDB.ExpectationsWereMet(t)
}

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("property-1"), NewTestUUID("property-1"))
	assert.NotEqual(t, NewTestUUID("property-1"), NewTestUUID("property-2"))
}

func TestTestTransactor(t *testing.T) {
	tx := &TestTransactor{}
	ctx := ContextWithTimeout(t, time.Second)

	require.NoError(t, tx.WithinTransaction(ctx, func(context.Context) error { return nil }))
	assert.Error(t, tx.WithinTransaction(ctx, func(context.Context) error { return assert.AnError }))
	assert.Equal(t, 2, tx.Begun)
	assert.Equal(t, 1, tx.Committed)
	assert.Equal(t, 1, tx.RolledBack)
}
