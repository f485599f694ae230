package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCredential(t *testing.T) {
	t.Setenv("DOCSQL_TEST_PASSWORD", "s3cret")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"literal", "plain", "plain"},
		{"empty", "", ""},
		{"set variable", "${DOCSQL_TEST_PASSWORD}", "s3cret"},
		{"unset variable", "${DOCSQL_TEST_UNSET_PASSWORD}", ""},
		{"embedded reference stays literal", "x${DOCSQL_TEST_PASSWORD}", "x${DOCSQL_TEST_PASSWORD}"},
		{"unterminated", "${DOCSQL_TEST_PASSWORD", "${DOCSQL_TEST_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCredential(tt.value))
		})
	}
}
