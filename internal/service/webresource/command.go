package webresource

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/dataverse"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/domain/resource"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/logger"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/repository/file"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/resolver"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/session"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/transfer"
)

// Options contains inputs for the update.
type Options struct {
	// Prefix is prepended to the file name to form the web resource name. It may be empty.
	Prefix string
	// Path is the local file, e.g. src/form.js.
	Path string
}

var errEmptyPath = errors.New("web resource path is empty")

// Run resolves the web resource, uploads the file into it and publishes it.
func Run(ctx context.Context, remote session.Remote, files file.Reader, opts *Options) error {
	ctx = logger.WithName(ctx, "update-web-resource")

	if opts.Path == "" {
		return errEmptyPath
	}

	name := resource.WebResourceName(opts.Prefix, opts.Path)

	logger.Info(ctx, "Retrieving web resource...")

	query, err := remote.Query(ctx)
	if err != nil {
		return err
	}

	webResource, err := resolver.Resolve(ctx, query, resource.WebResource, name)
	if err != nil {
		return err
	}

	logger.DebugKV(ctx, "Resolved web resource", "name", name, "id", webResource.ID)
	logger.Info(ctx, "Updating web resource...")

	conn, err := remote.Connection(ctx)
	if err != nil {
		return err
	}

	if err = transfer.Upload(ctx, conn, files, resource.WebResource, webResource.ID, opts.Path); err != nil {
		return err
	}

	logger.Info(ctx, "Publishing web resource...")

	if err = conn.Execute(ctx, dataverse.NewPublishWebResourcesRequest(webResource.ID), nil); err != nil {
		return fmt.Errorf("publish web resource %q: %w", name, err)
	}

	return nil
}
