// Command powerapps-cli exports solutions and pushes plug-in assemblies and web
// resources to a Dataverse environment.
package main

import "github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/cmd/powerapps-cli/cmd"

func main() {
	cmd.Execute()
}
