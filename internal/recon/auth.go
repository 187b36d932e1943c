package recon

import (
	"encoding/base64"
	"net/url"
	"os"
	"strings"
)

// EnvNamespace prefixes every API key environment variable.
const EnvNamespace = "SUBSWEEP"

// AuthKind selects how an API key is attached to requests.
type AuthKind int

const (
	AuthNone AuthKind = iota
	AuthHeader
	AuthQueryParam
	AuthURLSlug
)

// AuthMethod describes how a module authenticates against its API.
type AuthMethod struct {
	Kind AuthKind
	// Name is the header or query parameter name.
	Name string
	// Encode, if set, turns the raw key into the header value.
	Encode func(key string) string
}

func NoAuth() AuthMethod                    { return AuthMethod{} }
func APIKeyAsHeader(name string) AuthMethod { return AuthMethod{Kind: AuthHeader, Name: name} }
func APIKeyAsURLSlug() AuthMethod           { return AuthMethod{Kind: AuthURLSlug} }

func APIKeyAsQueryParam(name string) AuthMethod {
	return AuthMethod{Kind: AuthQueryParam, Name: name}
}

// Encoded returns a copy of a that transforms the key with fn before use.
func (a AuthMethod) Encoded(fn func(string) string) AuthMethod {
	a.Encode = fn
	return a
}

// IsSet reports whether the method needs an API key.
func (a AuthMethod) IsSet() bool { return a.Kind != AuthNone }

func (a AuthMethod) String() string {
	switch a.Kind {
	case AuthHeader:
		return "header " + a.Name
	case AuthQueryParam:
		return "query " + a.Name
	case AuthURLSlug:
		return "url slug"
	default:
		return "none"
	}
}

func (a AuthMethod) headerValue(key string) string {
	if a.Encode != nil {
		return a.Encode(key)
	}
	return key
}

// bearer formats key as a bearer token.
func bearer(key string) string { return "Bearer " + key }

// basicAuth encodes an "id:secret" key as a basic auth header value.
func basicAuth(key string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(key))
}

// APIKeyEnv returns the environment variable holding the named module's key,
// e.g. SUBSWEEP_WHOISXMLAPI_APIKEY.
func APIKeyEnv(module string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, module)
	return EnvNamespace + "_" + name + "_APIKEY"
}

// lookupAPIKey reads the module's key. Empty values count as missing.
func lookupAPIKey(module string) (string, bool) {
	key, ok := os.LookupEnv(APIKeyEnv(module))
	key = strings.TrimSpace(key)
	return key, ok && key != ""
}

// setQueryWithoutOverride adds name=value unless the URL already has name.
func setQueryWithoutOverride(u *url.URL, name, value string) {
	q := u.Query()
	if q.Has(name) {
		return
	}
	q.Set(name, value)
	u.RawQuery = q.Encode()
}

// setQuery sets name=value, replacing any existing value.
func setQuery(u *url.URL, name, value string) *url.URL {
	next := *u
	q := next.Query()
	q.Set(name, value)
	next.RawQuery = q.Encode()
	return &next
}
