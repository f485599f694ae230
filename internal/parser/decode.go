package parser

import (
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// DecoderConfig returns the mapstructure settings shared by front matter and
// the global config file, so both accept the same keys and value spellings.
func DecoderConfig(out any) *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		TagName:          "koanf",
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook:       mapstructure.DecodeHookFuncType(yesNoHook),
	}
}

// Decode decodes a generic map into out using DecoderConfig.
func Decode(input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(DecoderConfig(out))
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// presenceKeys are data source keys that count as set whenever they appear,
// whatever their value (null included).
var presenceKeys = map[string]bool{"trusted_connection": true}

// IsPresenceKey reports whether a dotted config path names a data source
// presence flag, either under databases.<name> or the legacy database block.
func IsPresenceKey(path string) bool {
	parts := strings.Split(path, ".")
	switch {
	case len(parts) == 3 && parts[0] == "databases":
	case len(parts) == 2 && parts[0] == "database":
	default:
		return false
	}
	return presenceKeys[parts[len(parts)-1]]
}

// markPresence rewrites presence flags in a raw config map to true so that a
// null or non-boolean value still decodes as set.
func markPresence(raw map[string]any) {
	if dbs, ok := raw["databases"].(map[string]any); ok {
		for _, src := range dbs {
			markSource(src)
		}
	}
	markSource(raw["database"])
}

func markSource(src any) {
	m, ok := src.(map[string]any)
	if !ok {
		return
	}
	for key := range m {
		if presenceKeys[key] {
			m[key] = true
		}
	}
}

// yesNoHook accepts the ODBC-style yes/no (and on/off) spellings for booleans.
func yesNoHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	switch strings.ToLower(strings.TrimSpace(data.(string))) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return data, nil
}
