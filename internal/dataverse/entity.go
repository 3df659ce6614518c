package dataverse

import (
	"fmt"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/domain/resource"
)

// entity describes the Web API collection behind a resource kind.
type entity struct {
	// set is the entity set name used in URLs.
	set string
	// id is the primary key attribute.
	id string
}

//nolint:gochecknoglobals // Static metadata of the platform tables.
var entities = map[resource.Kind]entity{
	resource.PluginAssembly: {set: "pluginassemblies", id: "pluginassemblyid"},
	resource.WebResource:    {set: "webresourceset", id: "webresourceid"},
}

func entityOf(kind resource.Kind) (entity, error) {
	e, ok := entities[kind]
	if !ok {
		return entity{}, fmt.Errorf("dataverse: no entity set for %s", kind)
	}

	return e, nil
}
