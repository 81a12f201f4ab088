// Package dburl prepares Postgres connection strings for the API server and
// the migration command.
package dburl

import (
	"net/url"
	"strings"
)

const binaryResultParam = "disable_prepared_binary_result"

// Normalize turns off binary results for prepared statements unless the URL
// already sets the parameter. Poolers in transaction mode cannot serve them.
// Keyword style DSNs are returned as given.
func Normalize(raw string, disableBinaryResult bool) string {
	raw = strings.TrimSpace(raw)
	if !disableBinaryResult {
		return raw
	}

	parsed, ok := parse(raw)
	if !ok {
		return raw
	}
	query := parsed.Query()
	if query.Get(binaryResultParam) == "" {
		query.Set(binaryResultParam, "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

// Name returns the database name from either URL or keyword style DSNs.
func Name(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, ok := parse(trimmed); ok {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		value, found := strings.CutPrefix(token, "dbname=")
		if !found {
			continue
		}
		if name := strings.Trim(strings.TrimSpace(value), `"'`); name != "" {
			return name
		}
	}
	return ""
}

// Redact hides the password so the URL can be logged.
func Redact(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, ok := parse(trimmed); ok {
		return parsed.Redacted()
	}

	tokens := strings.Fields(trimmed)
	for i, token := range tokens {
		if strings.HasPrefix(token, "password=") {
			tokens[i] = "password=xxxxx"
		}
	}
	return strings.Join(tokens, " ")
}

func parse(raw string) (*url.URL, bool) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return nil, false
	}
	return parsed, true
}
