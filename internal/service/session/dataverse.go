package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/config"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/dataverse"
)

var errNotDataverse = errors.New("connection is not a Dataverse client")

// NewDataverse returns a session backed by the Dataverse Web API. The connection
// string is read from the environment only when the first remote call needs it,
// so a missing variable fails that call rather than startup.
func NewDataverse(cfg *config.Config, opts ...dataverse.Option) *Session {
	connect := func(ctx context.Context) (Connection, error) {
		conn, err := config.LoadConnection(cfg.EnvFile)
		if err != nil {
			return nil, err
		}

		options := append([]dataverse.Option{
			dataverse.WithAPIVersion(cfg.APIVersion),
			dataverse.WithCallTimeout(cfg.Timeout),
		}, opts...)

		client, err := dataverse.Dial(ctx, conn.ConnectionString, options...)
		if err != nil {
			return nil, err
		}

		return client, nil
	}

	newQuery := func(conn Connection) (QueryContext, error) {
		client, ok := conn.(*dataverse.Client)
		if !ok {
			return nil, fmt.Errorf("%w: %T", errNotDataverse, conn)
		}

		return client.NewQueryContext(), nil
	}

	return New(connect, newQuery)
}
