package util

import (
	"fmt"
	"regexp"
)

// validInstanceName matches RFC 1035 labels as required by GCE:
// a lowercase letter, then up to 62 lowercase letters, digits, or hyphens.
var validInstanceName = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateInstanceName checks that an instance name is acceptable to the
// provider before any CLI call is issued:
//   - 1 to 63 characters
//   - Only lowercase letters, digits, and hyphens
//   - First character must be a lowercase letter
//   - Last character must not be a hyphen
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("instance name must not be empty")
	}
	if len(name) > 63 {
		return fmt.Errorf("instance name must be at most 63 characters, got %d", len(name))
	}

	if !validInstanceName.MatchString(name) {
		return fmt.Errorf("instance name %q is invalid (must start with a lowercase letter and contain only lowercase letters, digits, and hyphens)", name)
	}

	if name[len(name)-1] == '-' {
		return fmt.Errorf("instance name must not end with a hyphen, got %q", name)
	}

	return nil
}

// ParsePair splits a "key=value" argument, reporting a usage-style error
// when the separator is missing or either side is empty.
func ParsePair(arg string) (key, value string, err error) {
	for i := 0; i < len(arg); i++ {
		if arg[i] == '=' {
			key, value = arg[:i], arg[i+1:]
			if key == "" || value == "" {
				return "", "", fmt.Errorf("malformed pair %q (expected key=value)", arg)
			}
			return key, value, nil
		}
	}
	return "", "", fmt.Errorf("malformed pair %q (expected key=value)", arg)
}
