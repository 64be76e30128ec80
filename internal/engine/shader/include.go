package shader

import (
	"fmt"
	"regexp"
)

var includeLine = regexp.MustCompile(`(?m)^[ \t]*#include[ \t]+"([^"]+)"[ \t]*$`)

// Expand replaces every `#include "name"` line in src with chunks[name].
// Included chunks are not expanded further.
func Expand(src string, chunks map[string]string) (string, error) {
	var missing string
	out := includeLine.ReplaceAllStringFunc(src, func(line string) string {
		name := includeLine.FindStringSubmatch(line)[1]
		chunk, ok := chunks[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return line
		}
		return chunk
	})
	if missing != "" {
		return "", fmt.Errorf("unknown shader include %q", missing)
	}
	return out, nil
}
