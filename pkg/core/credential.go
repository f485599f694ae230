package core

import (
	"os"
	"strings"
)

// ResolveCredential resolves a ${VAR} indirection against the process environment.
// Values that are not exactly of that form are returned unchanged.
// An unset variable resolves to the empty string.
func ResolveCredential(value string) string {
	name, ok := envReference(value)
	if !ok {
		return value
	}
	return os.Getenv(name)
}

// envReference extracts VAR from "${VAR}".
func envReference(value string) (string, bool) {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") || len(value) < 3 {
		return "", false
	}
	return value[2 : len(value)-1], true
}
