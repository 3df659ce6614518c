package transfer

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/domain/resource"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/logger"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/repository/file"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/session"
)

// Encode renders raw bytes the way content columns store them.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode reverses Encode.
func Decode(content string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	return data, nil
}

// Upload reads path and replaces the content of record id with it.
// Nothing is sent if the file cannot be read.
func Upload(
	ctx context.Context,
	conn session.Connection,
	files file.Reader,
	kind resource.Kind,
	id uuid.UUID,
	path string,
) error {
	data, err := files.Read(ctx, path)
	if err != nil {
		return err
	}

	logger.DebugKV(ctx, "Uploading file", "path", path, "bytes", len(data), "id", id)

	delta := resource.Delta{
		Kind:    kind,
		ID:      id,
		Content: Encode(data),
	}

	return conn.Update(ctx, delta)
}

// Download writes data to path as is.
func Download(ctx context.Context, files file.Writer, path string, data []byte) error {
	logger.DebugKV(ctx, "Writing file", "path", path, "bytes", len(data))

	return files.Write(ctx, path, data)
}
