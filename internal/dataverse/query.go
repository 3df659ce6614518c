package dataverse

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/domain/resource"
)

// QueryContext looks records up through its client.
type QueryContext struct {
	client *Client
	closed bool
}

// Find returns every record of kind whose name equals name. Only the id and name
// columns are selected, so Content is left empty.
func (q *QueryContext) Find(ctx context.Context, kind resource.Kind, name string) ([]resource.Resource, error) {
	if q.closed {
		return nil, ErrClosed
	}

	e, err := entityOf(kind)
	if err != nil {
		return nil, err
	}

	query := url.Values{
		"$select": []string{e.id + ",name"},
		"$filter": []string{"name eq " + quoteLiteral(name)},
	}

	var page struct {
		Value []map[string]any `json:"value"`
	}

	if err = q.client.do(ctx, http.MethodGet, e.set, query, nil, nil, &page); err != nil {
		return nil, fmt.Errorf("query %s %q: %w", kind, name, err)
	}

	found := make([]resource.Resource, 0, len(page.Value))

	for _, row := range page.Value {
		rawID, _ := row[e.id].(string)

		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("query %s %q: bad %s %q: %w", kind, name, e.id, rawID, err)
		}

		rowName, _ := row["name"].(string)

		found = append(found, resource.Resource{ID: id, Name: rowName})
	}

	return found, nil
}

// Close ends the query context. The client stays open.
func (q *QueryContext) Close() error {
	q.closed = true

	return nil
}

// quoteLiteral renders s as an OData string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
