package pluginassembly

import (
	"context"
	"errors"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/domain/resource"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/logger"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/repository/file"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/resolver"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/session"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/transfer"
)

// Options contains inputs for the update.
type Options struct {
	// Path is the local assembly file, e.g. bin/Release/Contoso.Plugins.dll.
	Path string
}

var errEmptyPath = errors.New("assembly path is empty")

// Run resolves the assembly named after opts.Path and uploads the file into it.
func Run(ctx context.Context, remote session.Remote, files file.Reader, opts *Options) error {
	ctx = logger.WithName(ctx, "update-plugin-assembly")

	if opts.Path == "" {
		return errEmptyPath
	}

	name := resource.PluginAssemblyName(opts.Path)

	logger.Info(ctx, "Retrieving plug-in assembly...")

	query, err := remote.Query(ctx)
	if err != nil {
		return err
	}

	assembly, err := resolver.Resolve(ctx, query, resource.PluginAssembly, name)
	if err != nil {
		return err
	}

	logger.DebugKV(ctx, "Resolved plug-in assembly", "name", name, "id", assembly.ID)
	logger.Info(ctx, "Updating plug-in assembly...")

	conn, err := remote.Connection(ctx)
	if err != nil {
		return err
	}

	return transfer.Upload(ctx, conn, files, resource.PluginAssembly, assembly.ID, opts.Path)
}
