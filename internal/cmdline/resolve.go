package cmdline

import (
	"fmt"
	"strconv"
	"strings"
)

// ResolveRepo turns a jump target into a zero-based repository index.
// A numeric target is a 1-based list position; anything else is a
// case-insensitive substring match against repository names. No match or an
// ambiguous match is an error for the caller to surface.
func ResolveRepo(target string, names []string) (int, error) {
	if n, err := strconv.Atoi(target); err == nil {
		if n < 1 || n > len(names) {
			return 0, fmt.Errorf("repository %d out of range (1-%d)", n, len(names))
		}
		return n - 1, nil
	}

	needle := strings.ToLower(target)
	matches := make([]int, 0, 1)
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("no repository matches %q", target)
	case 1:
		return matches[0], nil
	default:
		return 0, fmt.Errorf("%q is ambiguous (%d matches)", target, len(matches))
	}
}
