package catalog

import (
	"fmt"
	"strings"
	"unicode"
)

const maxNameLen = 100

// NormalizeName trims raw and checks it against the allowed alphabet for
// namespaces and object names.
func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("name must not be empty")
	}
	if len(name) > maxNameLen {
		return "", fmt.Errorf("name %q is too long (max %d characters)", name, maxNameLen)
	}
	for _, r := range name {
		if isAllowedNameRune(r) {
			continue
		}
		return "", fmt.Errorf("name %q contains invalid character %q (allowed: letters, digits, '.', '-', '_')", name, r)
	}
	return name, nil
}

func isAllowedNameRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '-', '_', '.':
		return true
	default:
		return false
	}
}

func key(namespace, name string) string {
	return strings.ToUpper(namespace) + "/" + strings.ToUpper(name)
}
