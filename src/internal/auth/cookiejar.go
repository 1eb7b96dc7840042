package auth

import (
	"net/http"
	"strings"
)

// CookieJar accumulates cookie state observed across a chain of HTTP
// responses into a single replay-ready header value. Cookies are keyed by
// name and the most recently merged value wins; attributes such as Path,
// Expires or Secure are stripped before storage.
type CookieJar struct {
	names  []string
	values map[string]string
}

func NewCookieJar() *CookieJar {
	return &CookieJar{values: make(map[string]string)}
}

// Merge ingests raw Set-Cookie values, one per distinct header occurrence.
// Callers must never pass a comma-joined header blob: an Expires attribute
// contains a comma and would corrupt the split. Malformed values are ignored.
func (j *CookieJar) Merge(rawSetCookieValues []string) {
	for _, raw := range rawSetCookieValues {
		// Only the leading name=value pair is replayed.
		pair := raw
		if idx := strings.Index(pair, ";"); idx >= 0 {
			pair = pair[:idx]
		}

		name, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}

		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if _, seen := j.values[name]; !seen {
			j.names = append(j.names, name)
		}
		j.values[name] = strings.TrimSpace(value)
	}
}

// MergeResponse ingests every Set-Cookie header occurrence of a response.
func (j *CookieJar) MergeResponse(resp *http.Response) {
	j.Merge(resp.Header.Values("Set-Cookie"))
}

// Serialize returns the current best-known Cookie header value. Cookies
// appear in first-seen order so the output does not depend on map iteration.
func (j *CookieJar) Serialize() string {
	pairs := make([]string, 0, len(j.names))
	for _, name := range j.names {
		pairs = append(pairs, name+"="+j.values[name])
	}
	return strings.Join(pairs, "; ")
}

// Empty reports whether no cookie has been merged yet.
func (j *CookieJar) Empty() bool {
	return len(j.names) == 0
}
