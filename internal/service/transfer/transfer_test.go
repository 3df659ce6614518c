package transfer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/domain/resource"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/repository/file"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/session/sessiontest"
)

// TestEncodeDecode checks padding and binary round trips.
func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	require.Equal(t, "TVo=", Encode([]byte("MZ")))
	require.Empty(t, Encode(nil))

	payload := []byte{0x00, 0xff, 0x10, 0x80, 0x7f}

	decoded, err := Decode(Encode(payload))
	require.NoError(t, err)
	require.Equal(t, payload, decoded)

	_, err = Decode("not base64!")
	require.Error(t, err)
}

// TestUpload sends the encoded file as a single delta.
func TestUpload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "foo.js")
	repo := file.NewFileRepository()
	require.NoError(t, repo.Write(context.Background(), path, []byte("alert(1);")))

	fake := new(sessiontest.Fake)
	id := uuid.New()

	require.NoError(t, Upload(context.Background(), fake, repo, resource.WebResource, id, path))
	require.Equal(t, []resource.Delta{{
		Kind:    resource.WebResource,
		ID:      id,
		Content: Encode([]byte("alert(1);")),
	}}, fake.Updates)
}

// TestUploadMissingFile sends nothing when the file cannot be read.
func TestUploadMissingFile(t *testing.T) {
	t.Parallel()

	fake := new(sessiontest.Fake)
	path := filepath.Join(t.TempDir(), "missing.dll")

	err := Upload(context.Background(), fake, file.NewFileRepository(), resource.PluginAssembly, uuid.New(), path)
	require.ErrorIs(t, err, file.ErrNotFound)
	require.Empty(t, fake.Updates)
}

// TestDownload writes the bytes unchanged.
func TestDownload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "solution.zip")
	repo := file.NewFileRepository()
	payload := []byte("PK\x03\x04")

	require.NoError(t, Download(context.Background(), repo, path, payload))

	got, err := repo.Read(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}
