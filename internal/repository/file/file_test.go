package file

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFileRepository_NotFound verifies Read returns ErrNotFound for a missing file.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository()

	data, err := repo.Read(context.Background(), filepath.Join(t.TempDir(), "missing.dll"))
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, data)
}

// TestFileRepository_WriteRead_Roundtrip ensures Write followed by Read returns identical bytes
// and that a second Write overwrites a longer file completely.
func TestFileRepository_WriteRead_Roundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "solution.zip")
	repo := NewFileRepository()

	require.NoError(t, repo.Write(context.Background(), path, []byte("a much longer first version")))

	want := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0xff}
	require.NoError(t, repo.Write(context.Background(), path, want))

	got, err := repo.Read(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestFileRepository_WriteIntoMissingDirectory surfaces the OS error.
func TestFileRepository_WriteIntoMissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "no", "such", "dir", "solution.zip")

	err := NewFileRepository().Write(context.Background(), path, []byte("x"))
	require.Error(t, err)
}
