// Package sessiontest provides an in-memory stand-in for the remote platform.
package sessiontest

import (
	"context"
	"errors"
	"strings"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/dataverse"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/domain/resource"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/session"
)

// ErrRemote is a generic failure tests can inject.
var ErrRemote = errors.New("remote failure")

// Fake records every call and serves resources from memory. It implements
// session.Remote, session.Connection and session.QueryContext at once.
type Fake struct {
	// Resources is what Find searches, per kind.
	Resources map[resource.Kind][]resource.Resource
	// ExportFile is returned by ExportSolution.
	ExportFile []byte

	// ConnectErr fails Connection and Query.
	ConnectErr error
	// FindErr fails Find.
	FindErr error
	// UpdateErr fails Update.
	UpdateErr error
	// ExecuteErr fails Execute for the given action name.
	ExecuteErr map[string]error

	// Calls lists "connect", "find", "update" and "execute:<Action>" in order.
	Calls []string
	// Executed holds every request passed to Execute.
	Executed []dataverse.Request
	// Updates holds every delta passed to Update.
	Updates []resource.Delta
	// Closed counts Close calls.
	Closed int
}

var (
	_ session.Remote       = (*Fake)(nil)
	_ session.Connection   = (*Fake)(nil)
	_ session.QueryContext = (*Fake)(nil)
)

// Connection implements session.Remote.
func (f *Fake) Connection(context.Context) (session.Connection, error) {
	f.Calls = append(f.Calls, "connect")

	if f.ConnectErr != nil {
		return nil, f.ConnectErr
	}

	return f, nil
}

// Query implements session.Remote.
func (f *Fake) Query(ctx context.Context) (session.QueryContext, error) {
	if _, err := f.Connection(ctx); err != nil {
		return nil, err
	}

	return f, nil
}

// Find returns the stored resources of kind whose name equals name ignoring case,
// like the platform's default filter.
func (f *Fake) Find(_ context.Context, kind resource.Kind, name string) ([]resource.Resource, error) {
	f.Calls = append(f.Calls, "find")

	if f.FindErr != nil {
		return nil, f.FindErr
	}

	var found []resource.Resource

	for _, r := range f.Resources[kind] {
		if strings.EqualFold(r.Name, name) {
			found = append(found, r)
		}
	}

	return found, nil
}

// Update implements session.Connection.
func (f *Fake) Update(_ context.Context, delta resource.Delta) error {
	f.Calls = append(f.Calls, "update")
	f.Updates = append(f.Updates, delta)

	return f.UpdateErr
}

// Execute implements session.Connection and answers ExportSolution with ExportFile.
func (f *Fake) Execute(_ context.Context, request dataverse.Request, response any) error {
	f.Calls = append(f.Calls, "execute:"+request.Action())
	f.Executed = append(f.Executed, request)

	if err := f.ExecuteErr[request.Action()]; err != nil {
		return err
	}

	if export, ok := response.(*dataverse.ExportSolutionResponse); ok {
		export.ExportSolutionFile = append([]byte(nil), f.ExportFile...)
	}

	return nil
}

// Close implements session.Connection and session.QueryContext.
func (f *Fake) Close() error {
	f.Closed++

	return nil
}

// Count returns how many recorded calls equal call.
func (f *Fake) Count(call string) int {
	n := 0

	for _, c := range f.Calls {
		if c == call {
			n++
		}
	}

	return n
}
