// Package pathutil provides path hygiene helpers shared by configuration
// validation and command-text checks.
package pathutil

import (
	"strings"
)

// ContainsNullByte returns true if the string contains a null byte.
func ContainsNullByte(s string) bool {
	return strings.ContainsRune(s, '\x00')
}
