package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode(t *testing.T) {
	tests := []struct {
		in   string
		want OutputMode
	}{
		{"", ModeAuto},
		{"auto", ModeAuto},
		{"text", ModeText},
		{"TEXT", ModeText},
		{"json", ModeJSON},
		{"yaml", ModeAuto},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Mode(tt.in))
		})
	}
}

func TestRenderer_EffectiveMode(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.Equal(t, ModeText, NewRendererWithTTY(&out, &errOut, false, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeJSON, NewRendererWithTTY(&out, &errOut, false, ModeJSON).EffectiveMode())
}

func TestRenderer_PlainWhenNotTTY(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeText)

	r.Header(1, "Build")
	r.Success("done")
	r.KeyValue("Pages", "3")
	r.StatusLine("default", "error", "no such file")
	r.Warning("careful")

	assert.Equal(t, "Build\n✓ done\nPages:       3\n  ✗ default  no such file\n", out.String())
	assert.Equal(t, "! careful\n", errOut.String())
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestRenderer_StyledWhenTTY(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, true, ModeText)

	r.Success("done")
	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "done")
}

func TestRenderer_JSON(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeJSON)

	require.NoError(t, r.JSON(map[string]int{"pages": 2}))
	assert.Equal(t, "{\n  \"pages\": 2\n}\n", out.String())
}

func TestModes(t *testing.T) {
	assert.Equal(t, "auto,text,json", strings.Join(Modes(), ","))
}
