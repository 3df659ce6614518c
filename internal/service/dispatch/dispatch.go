package dispatch

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/logger"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/repository/file"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/pluginassembly"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/session"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/solution"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/webresource"
)

// Command names.
const (
	ExportUnmanagedSolution = "exportunmanagedsolution"
	UpdatePluginAssembly    = "updatepluginassembly"
	UpdateWebResource       = "updatewebresource"
)

// command describes one entry of the table: its positional parameter names and
// the workflow it runs. params never includes the command name itself.
type command struct {
	name   string
	params []string
	run    func(ctx context.Context, d *Dispatcher, args []string) error
}

// commands is ordered the way usage lists them.
//
//nolint:gochecknoglobals // Static command table.
var commands = []command{
	{
		name:   ExportUnmanagedSolution,
		params: []string{"solution", "path"},
		run: func(ctx context.Context, d *Dispatcher, args []string) error {
			return solution.Run(ctx, d.remote, d.files, &solution.Options{
				SolutionName: args[0],
				Path:         args[1],
			})
		},
	},
	{
		name:   UpdatePluginAssembly,
		params: []string{"path"},
		run: func(ctx context.Context, d *Dispatcher, args []string) error {
			return pluginassembly.Run(ctx, d.remote, d.files, &pluginassembly.Options{
				Path: args[0],
			})
		},
	},
	{
		name:   UpdateWebResource,
		params: []string{"prefix", "path"},
		run: func(ctx context.Context, d *Dispatcher, args []string) error {
			return webresource.Run(ctx, d.remote, d.files, &webresource.Options{
				Prefix: args[0],
				Path:   args[1],
			})
		},
	},
}

// Dispatcher runs one command per invocation.
type Dispatcher struct {
	program string
	out     io.Writer
	remote  session.Remote
	files   file.Repository
}

// New creates a dispatcher. program is shown in usage lines; usage goes to out.
func New(program string, out io.Writer, remote session.Remote, files file.Repository) *Dispatcher {
	return &Dispatcher{
		program: program,
		out:     out,
		remote:  remote,
		files:   files,
	}
}

// Dispatch runs the command named by args[0] with the rest of args.
// Workflow errors are returned as is.
func (d *Dispatcher) Dispatch(ctx context.Context, args []string) error {
	cmd, ok := lookup(args)
	if !ok {
		logger.DebugKV(ctx, "No command matched", "args", args)

		return d.Usage()
	}

	return cmd.run(ctx, d, args[1:])
}

// Usage prints every command with its parameter names.
func (d *Dispatcher) Usage() error {
	return Usage(d.out, d.program)
}

// Usage writes the usage text for program to w.
func Usage(w io.Writer, program string) error {
	var b strings.Builder

	b.WriteString("Usage:\n")

	for _, cmd := range commands {
		b.WriteString(program)
		b.WriteByte(' ')
		b.WriteString(cmd.name)

		for _, param := range cmd.params {
			b.WriteByte(' ')
			b.WriteString(param)
		}

		b.WriteByte('\n')
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("print usage: %w", err)
	}

	return nil
}

// Matches reports whether args name a command with the right number of arguments.
func Matches(args []string) bool {
	_, ok := lookup(args)

	return ok
}

// lookup finds the command named by args[0] and checks its arity.
func lookup(args []string) (command, bool) {
	if len(args) == 0 {
		return command{}, false
	}

	for _, cmd := range commands {
		if !strings.EqualFold(cmd.name, args[0]) {
			continue
		}

		return cmd, len(args) == len(cmd.params)+1
	}

	return command{}, false
}
