// Package cookies turns a pre-captured cookie header stored in an environment
// variable into a cookie jar.
package cookies

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
)

// ErrConfiguration is wrapped by every error caused by missing or malformed
// configuration.
var ErrConfiguration = errors.New("configuration error")

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Jar maps cookie names to values.
type Jar map[string]string

// Cookies returns the jar as http cookies, sorted by name.
func (j Jar) Cookies() []*http.Cookie {
	names := make([]string, 0, len(j))
	for name := range j {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*http.Cookie, 0, len(names))
	for _, name := range names {
		out = append(out, &http.Cookie{Name: name, Value: j[name]})
	}
	return out
}

// Store resolves cookie jars from environment variables.
type Store struct {
	lookup LookupFunc
}

// NewStore creates a store, a nil lookup reads the process environment.
func NewStore(lookup LookupFunc) Store {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return Store{lookup: lookup}
}

// Resolve reads `envVar` and parses it with Parse. On any error the returned
// jar is empty, never nil.
func (s Store) Resolve(envVar string) (Jar, error) {
	raw, ok := s.lookup(envVar)
	if !ok {
		return Jar{}, fmt.Errorf("%w: environment variable %s is not set", ErrConfiguration, envVar)
	}
	jar, err := Parse(raw)
	if err != nil {
		return Jar{}, fmt.Errorf("%s: %w", envVar, err)
	}
	return jar, nil
}

// Parse parses `name1=value1; name2=value2`. Each pair is split on its first
// `=` so values may contain `=`, a repeated name keeps the last value.
func Parse(raw string) (Jar, error) {
	if raw == "" {
		return Jar{}, fmt.Errorf("%w: cookie string is empty", ErrConfiguration)
	}

	jar := Jar{}
	for i, pair := range strings.Split(raw, "; ") {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return Jar{}, fmt.Errorf("%w: cookie pair %d is not in name=value form", ErrConfiguration, i)
		}
		jar[name] = value
	}
	return jar, nil
}
