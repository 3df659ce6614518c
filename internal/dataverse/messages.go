package dataverse

import (
	"strings"

	"github.com/google/uuid"
)

// Request is an unbound Web API action sent with Execute.
// The value itself is marshaled as the JSON body.
type Request interface {
	Action() string
}

// ExportSolutionRequest asks for a solution package.
type ExportSolutionRequest struct {
	SolutionName string `json:"SolutionName"`
	// Managed selects the managed variant. It is always serialized.
	Managed bool `json:"Managed"`
}

// Action implements Request.
func (*ExportSolutionRequest) Action() string { return "ExportSolution" }

// ExportSolutionResponse carries the exported package. The API returns it base64-encoded,
// which encoding/json decodes into raw bytes.
type ExportSolutionResponse struct {
	ExportSolutionFile []byte `json:"ExportSolutionFile"`
}

// PublishXMLRequest publishes the customizations listed in ParameterXML.
type PublishXMLRequest struct {
	ParameterXML string `json:"ParameterXml"`
}

// Action implements Request.
func (*PublishXMLRequest) Action() string { return "PublishXml" }

// NewPublishWebResourcesRequest builds a PublishXml request for the given web resources.
func NewPublishWebResourcesRequest(ids ...uuid.UUID) *PublishXMLRequest {
	var b strings.Builder

	b.WriteString("<importexportxml><webresources>")

	for _, id := range ids {
		b.WriteString("<webresource>")
		b.WriteString(id.String())
		b.WriteString("</webresource>")
	}

	b.WriteString("</webresources></importexportxml>")

	return &PublishXMLRequest{ParameterXML: b.String()}
}

// WhoAmIResponse identifies the caller; used to verify a fresh connection.
type WhoAmIResponse struct {
	UserID         uuid.UUID `json:"UserId"`
	BusinessUnitID uuid.UUID `json:"BusinessUnitId"`
	OrganizationID uuid.UUID `json:"OrganizationId"`
}
