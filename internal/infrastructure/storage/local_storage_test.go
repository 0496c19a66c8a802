package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalObjectStorage_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalObjectStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	key := "expenses/abc/def.png"
	require.NoError(t, s.Put(ctx, key, strings.NewReader("png bytes"), 9, "image/png"))
	assert.FileExists(t, filepath.Join(dir, "expenses", "abc", "def.png"))

	body, err := s.Get(ctx, key)
	require.NoError(t, err)
	got, err := io.ReadAll(body)
	require.NoError(t, body.Close())
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(got))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// deleting again is not an error
	require.NoError(t, s.Delete(ctx, key))
}

func TestLocalObjectStorage_SizeMismatchLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalObjectStorage(dir)
	require.NoError(t, err)

	err = s.Put(context.Background(), "expenses/a/b.pdf", strings.NewReader("short"), 100, "application/pdf")
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "expenses", "a"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalObjectStorage_RejectsEscapingKeys(t *testing.T) {
	s, err := NewLocalObjectStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"../outside.pdf", "expenses/../../outside.pdf", ""} {
		assert.Error(t, s.Put(ctx, key, strings.NewReader("x"), 1, "text/plain"), key)
	}
}

func TestNew_SelectsDriver(t *testing.T) {
	cfg := &config.Config{Attachments: config.AttachmentsConfig{Driver: "local", BasePath: t.TempDir()}}
	s, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LocalObjectStorage{}, s)

	cfg.Attachments.Driver = "ftp"
	_, err = New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
