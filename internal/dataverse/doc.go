// Package dataverse is a small client for the Dataverse Web API.
//
// It covers what the CLI needs: parsing connection strings, authenticating
// with the client credentials flow, executing actions such as ExportSolution
// and PublishXml, partially updating records and looking records up by name.
// Record identifiers are GUIDs and travel as uuid.UUID values.
package dataverse
