package store

import (
	"errors"
	"fmt"
	"strings"
)

// Separator splits a store path into its section keys.
const Separator = "."

// ErrEmptyPath is returned for an empty store path.
var ErrEmptyPath = errors.New("empty path")

// ParsePath splits a dotted store path into keys.
// Supports: "port", "server.port", "world.spawn.x".
func ParsePath(path string) ([]string, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	keys := strings.Split(path, Separator)
	for _, key := range keys {
		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		}
	}

	return keys, nil
}

// JoinPath joins keys back into a dotted store path, skipping empty keys.
func JoinPath(keys ...string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			parts = append(parts, k)
		}
	}

	return strings.Join(parts, Separator)
}
