package dataverse

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// AuthTypeClientSecret is the only interactive-free auth type supported.
const AuthTypeClientSecret = "clientsecret"

const defaultAuthorityHost = "https://login.microsoftonline.com/"

var (
	// ErrInvalidConnectionString is returned when a connection string cannot be used.
	ErrInvalidConnectionString = errors.New("invalid connection string")

	errUnsupportedAuthType = errors.New("unsupported AuthType")
	errMissingCredentials  = errors.New("ClientId, ClientSecret and TenantId or Authority are required")
)

// ConnectionString is the parsed form of a Dataverse connection string such as
// "AuthType=ClientSecret;Url=https://org.crm.dynamics.com;ClientId=...;ClientSecret=...;TenantId=...".
type ConnectionString struct {
	AuthType     string
	URL          *url.URL
	ClientID     string
	ClientSecret string
	TenantID     string
	Authority    string
}

// ParseConnectionString splits s into its keys. Keys are case-insensitive, may contain
// spaces ("Service Uri") and values may be wrapped in single or double quotes.
// Unknown keys are ignored.
func ParseConnectionString(s string) (*ConnectionString, error) {
	cs := new(ConnectionString)

	for _, part := range splitPairs(s) {
		key, value, found := strings.Cut(part, "=")
		if !found {
			return nil, fmt.Errorf("%w: %q is not a key=value pair", ErrInvalidConnectionString, part)
		}

		key = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), " ", ""))
		value = unquote(strings.TrimSpace(value))

		switch key {
		case "authtype":
			cs.AuthType = value
		case "url", "serviceuri", "server":
			u, err := url.Parse(strings.TrimRight(value, "/"))
			if err != nil {
				return nil, fmt.Errorf("%w: Url: %w", ErrInvalidConnectionString, err)
			}

			cs.URL = u
		case "clientid", "appid", "applicationid":
			cs.ClientID = value
		case "clientsecret", "secret":
			cs.ClientSecret = value
		case "tenantid", "tenant":
			cs.TenantID = value
		case "authority":
			cs.Authority = value
		}
	}

	if cs.URL == nil || cs.URL.Host == "" || (cs.URL.Scheme != "https" && cs.URL.Scheme != "http") {
		return nil, fmt.Errorf("%w: Url must be an absolute http(s) address", ErrInvalidConnectionString)
	}

	return cs, nil
}

// ValidateCredentials checks that the client credentials flow can be used.
func (cs *ConnectionString) ValidateCredentials() error {
	if !strings.EqualFold(strings.TrimSpace(cs.AuthType), AuthTypeClientSecret) {
		return fmt.Errorf("%w: %w %q", ErrInvalidConnectionString, errUnsupportedAuthType, cs.AuthType)
	}

	if cs.ClientID == "" || cs.ClientSecret == "" || (cs.TenantID == "" && cs.Authority == "") {
		return fmt.Errorf("%w: %w", ErrInvalidConnectionString, errMissingCredentials)
	}

	return nil
}

// TokenURL returns the OAuth 2.0 token endpoint of the configured tenant.
func (cs *ConnectionString) TokenURL() string {
	authority := cs.Authority
	if authority == "" {
		authority = defaultAuthorityHost + cs.TenantID
	}

	return strings.TrimRight(authority, "/") + "/oauth2/v2.0/token"
}

// Scope returns the resource scope requested for the environment.
func (cs *ConnectionString) Scope() string {
	return cs.URL.Scheme + "://" + cs.URL.Host + "/.default"
}

// splitPairs splits on semicolons that are not inside quotes and drops empty parts.
func splitPairs(s string) []string {
	var (
		parts []string
		quote rune
		start int
	)

	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ';':
			parts = appendPart(parts, s[start:i])
			start = i + 1
		}
	}

	return appendPart(parts, s[start:])
}

func appendPart(parts []string, part string) []string {
	if strings.TrimSpace(part) == "" {
		return parts
	}

	return append(parts, part)
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '\'' || first == '"') {
			return value[1 : len(value)-1]
		}
	}

	return value
}
