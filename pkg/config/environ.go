package config

import (
	"maps"
	"os"
	"slices"
	"strings"
)

// nestedDelimiter separates a settings group prefix from the variable name in
// nested-form addressing, e.g. database__DB_URL.
const nestedDelimiter = "__"

// groupVars lists, per settings group, the environment variables the group
// owns. Only these can be addressed through the nested form; nested keys
// outside the known group/field structure are ignored.
var groupVars = map[string][]string{
	"database": {"DB_URL", "DB_ECHO"},
	"whisper":  {"HF_TOKEN", "WHISPER_MODEL", "DEFAULT_LANG", "DEVICE", "COMPUTE_TYPE"},
	"logging":  {"LOG_LEVEL", "LOG_FORMAT", "FILTER_WARNING"},
}

// environSnapshot captures the process environment as a map.
func environSnapshot() map[string]string {
	environ := os.Environ()
	snapshot := make(map[string]string, len(environ))
	for _, kv := range environ {
		if key, value, ok := strings.Cut(kv, "="); ok {
			snapshot[key] = value
		}
	}
	return snapshot
}

// promoteNested overlays nested-form variables onto their flat counterparts,
// so database__DB_URL wins over DB_URL. Group and variable names are matched
// case-sensitively.
func promoteNested(environ map[string]string) {
	promoted := make(map[string]string)
	for key, value := range environ {
		group, name, found := strings.Cut(key, nestedDelimiter)
		if !found {
			continue
		}
		if !slices.Contains(groupVars[group], name) {
			continue
		}
		promoted[name] = value
	}
	maps.Copy(environ, promoted)
}
