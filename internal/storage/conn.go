package storage

import (
	"net/url"
	"strings"
)

// IsPostgres reports whether conn is a PostgreSQL connection string rather than a SQLite path.
func IsPostgres(conn string) bool {
	c := strings.TrimSpace(conn)
	if strings.HasPrefix(c, "postgres://") || strings.HasPrefix(c, "postgresql://") {
		return true
	}
	// key=value DSN, e.g. "host=localhost dbname=progresio"
	for _, field := range strings.Fields(c) {
		key, _, ok := strings.Cut(field, "=")
		if ok && (strings.EqualFold(key, "host") || strings.EqualFold(key, "dbname")) {
			return true
		}
	}
	return false
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// (URL or key=value DSN) contains a password.
func HasEmbeddedCredentials(conn string) bool {
	c := strings.TrimSpace(conn)
	if strings.HasPrefix(c, "postgres://") || strings.HasPrefix(c, "postgresql://") {
		u, err := url.Parse(c)
		if err != nil {
			// Unparseable URLs are treated as unsafe.
			return true
		}
		if _, set := u.User.Password(); set {
			return true
		}
		return u.Query().Get("password") != ""
	}

	for _, field := range strings.Fields(c) {
		key, _, ok := strings.Cut(field, "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "password") {
			return true
		}
	}
	return false
}
