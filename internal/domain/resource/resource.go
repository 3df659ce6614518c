package resource

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies a remote resource collection.
type Kind int

const (
	// PluginAssembly is a compiled extension registered under its file name without extension.
	PluginAssembly Kind = iota + 1
	// WebResource is a static asset registered under a prefixed file name with extension.
	WebResource
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case PluginAssembly:
		return "plug-in assembly"
	case WebResource:
		return "web resource"
	default:
		return "unknown resource"
	}
}

// Resource is a remote record with binary content.
type Resource struct {
	// ID is the stable remote identifier.
	ID uuid.UUID
	// Name is the unique name the record is looked up by.
	Name string
	// Content is the base64-encoded payload. Queries leave it empty.
	Content string
}

// Delta is a partial update: only the identifier and the changed content travel.
type Delta struct {
	Kind    Kind
	ID      uuid.UUID
	Content string
}

// PluginAssemblyName derives the remote name of a plug-in assembly from a local path
// by dropping the directory and the final extension: "bin/Foo.Bar.dll" -> "Foo.Bar".
func PluginAssemblyName(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WebResourceName derives the remote name of a web resource from a prefix and a local path.
// The extension is kept: ("pfx_", "src/foo.js") -> "pfx_foo.js".
func WebResourceName(prefix, path string) string {
	return prefix + filepath.Base(path)
}
