package solution

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/dataverse"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/logger"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/repository/file"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/session"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/transfer"
)

// Options contains inputs for the export.
type Options struct {
	// SolutionName is the unique name of the solution to export.
	SolutionName string
	// Path is where the package is written. An existing file is overwritten.
	Path string
}

var (
	errEmptySolutionName = errors.New("solution name is empty")
	errEmptyPath         = errors.New("destination path is empty")
)

// Run exports the solution as unmanaged and writes the returned bytes to opts.Path.
func Run(ctx context.Context, remote session.Remote, files file.Writer, opts *Options) error {
	ctx = logger.WithName(ctx, "export-solution")

	if opts.SolutionName == "" {
		return errEmptySolutionName
	}

	if opts.Path == "" {
		return errEmptyPath
	}

	logger.Info(ctx, "Exporting solution...")

	conn, err := remote.Connection(ctx)
	if err != nil {
		return err
	}

	request := &dataverse.ExportSolutionRequest{
		SolutionName: opts.SolutionName,
		Managed:      false,
	}

	var response dataverse.ExportSolutionResponse
	if err = conn.Execute(ctx, request, &response); err != nil {
		return fmt.Errorf("export solution %q: %w", opts.SolutionName, err)
	}

	if err = transfer.Download(ctx, files, opts.Path, response.ExportSolutionFile); err != nil {
		return fmt.Errorf("save solution %q: %w", opts.SolutionName, err)
	}

	logger.InfoKV(ctx, "Solution exported", "path", opts.Path, "bytes", len(response.ExportSolutionFile))

	return nil
}
