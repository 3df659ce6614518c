package integration

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/config"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/dataverse"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/session"
)

const (
	apiRoot     = "/api/data/v9.2/"
	bearerToken = "integration-token"
)

// record is one row of a stubbed table.
type record struct {
	id      uuid.UUID
	name    string
	content string
}

// table is a stubbed entity set.
type table struct {
	idAttr string
	rows   []*record
}

// stubDataverse keeps just enough state to serve the calls the CLI makes.
type stubDataverse struct {
	mu sync.Mutex

	tables    map[string]*table
	solutions map[string][]byte

	connects  int
	exports   []map[string]any
	published []string
	patches   int
}

func newStubDataverse() *stubDataverse {
	return &stubDataverse{
		tables: map[string]*table{
			"pluginassemblies": {idAttr: "pluginassemblyid"},
			"webresourceset":   {idAttr: "webresourceid"},
		},
		solutions: make(map[string][]byte),
	}
}

// add inserts a row into set and returns its id.
func (s *stubDataverse) add(set, name, content string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.tables[set].rows = append(s.tables[set].rows, &record{id: id, name: name, content: content})

	return id
}

// content returns the content column of the row with id in set.
func (s *stubDataverse) content(set string, id uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.tables[set].rows {
		if row.id == id {
			return row.content
		}
	}

	return ""
}

// recorded is a snapshot of what the stub has received.
type recorded struct {
	connects  int
	patches   int
	exports   []map[string]any
	published []string
}

// calls returns a copy of the recorded calls.
func (s *stubDataverse) calls() recorded {
	s.mu.Lock()
	defer s.mu.Unlock()

	return recorded{
		connects:  s.connects,
		patches:   s.patches,
		exports:   append([]map[string]any(nil), s.exports...),
		published: append([]string(nil), s.published...),
	}
}

// start serves the stub until the test ends.
func (s *stubDataverse) start(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	return srv
}

// ServeHTTP implements http.Handler.
func (s *stubDataverse) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+bearerToken {
		writeError(w, http.StatusUnauthorized, "0x80040220", "missing token")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, apiRoot)

	switch {
	case r.Method == http.MethodGet && path == "WhoAmI":
		s.connects++
		writeJSON(w, map[string]string{"UserId": uuid.NewString()})
	case r.Method == http.MethodPost && path == "ExportSolution":
		s.exportSolution(w, r)
	case r.Method == http.MethodPost && path == "PublishXml":
		s.publishXML(w, r)
	case r.Method == http.MethodGet:
		s.query(w, r, path)
	case r.Method == http.MethodPatch:
		s.patch(w, r, path)
	default:
		writeError(w, http.StatusNotFound, "0x80060888", "unsupported "+r.Method+" "+path)
	}
}

func (s *stubDataverse) exportSolution(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "0x80048d19", err.Error())
		return
	}

	s.exports = append(s.exports, body)

	name, _ := body["SolutionName"].(string)

	data, ok := s.solutions[name]
	if !ok {
		writeError(w, http.StatusNotFound, "0x8004f005", fmt.Sprintf("solution %s does not exist", name))
		return
	}

	writeJSON(w, map[string]string{"ExportSolutionFile": base64.StdEncoding.EncodeToString(data)})
}

func (s *stubDataverse) publishXML(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ParameterXML string `json:"ParameterXml"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "0x80048d19", err.Error())
		return
	}

	s.published = append(s.published, body.ParameterXML)
	w.WriteHeader(http.StatusNoContent)
}

func (s *stubDataverse) query(w http.ResponseWriter, r *http.Request, set string) {
	tbl, ok := s.tables[set]
	if !ok {
		writeError(w, http.StatusNotFound, "0x80060888", "unknown entity set "+set)
		return
	}

	filter := r.URL.Query().Get("$filter")

	literal, ok := strings.CutPrefix(filter, "name eq '")
	if !ok || !strings.HasSuffix(literal, "'") {
		writeError(w, http.StatusBadRequest, "0x80060888", "unsupported filter "+filter)
		return
	}

	name := strings.ReplaceAll(strings.TrimSuffix(literal, "'"), "''", "'")
	values := make([]map[string]string, 0)

	for _, row := range tbl.rows {
		if strings.EqualFold(row.name, name) {
			values = append(values, map[string]string{tbl.idAttr: row.id.String(), "name": row.name})
		}
	}

	writeJSON(w, map[string]any{"value": values})
}

func (s *stubDataverse) patch(w http.ResponseWriter, r *http.Request, path string) {
	set, rawID, ok := strings.Cut(strings.TrimSuffix(path, ")"), "(")
	tbl, known := s.tables[set]

	if !ok || !known {
		writeError(w, http.StatusNotFound, "0x80060888", "unknown resource "+path)
		return
	}

	if r.Header.Get("If-Match") != "*" {
		writeError(w, http.StatusPreconditionRequired, "0x80060882", "If-Match is required")
		return
	}

	var body struct {
		Content string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "0x80048d19", err.Error())
		return
	}

	for _, row := range tbl.rows {
		if row.id.String() == rawID {
			row.content = body.Content
			s.patches++
			w.WriteHeader(http.StatusNoContent)

			return
		}
	}

	writeError(w, http.StatusPreconditionFailed, "0x80060882", "record does not exist")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; odata.metadata=minimal")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"code": code, "message": message}})
}

// newSession points a Dataverse session at srv through the environment, the
// way the CLI is configured. It calls t.Setenv, so callers cannot be parallel.
func newSession(t *testing.T, srv *httptest.Server) *session.Session {
	t.Helper()

	t.Setenv(config.ConnectionStringVariable, "Url="+srv.URL)

	cfg := config.Default()
	cfg.EnvFile = filepath.Join(t.TempDir(), ".env")

	sess := session.NewDataverse(cfg,
		dataverse.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: bearerToken})),
	)

	t.Cleanup(func() {
		require.NoError(t, sess.Close())
	})

	return sess
}
