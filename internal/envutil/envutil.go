// Package envutil manipulates environment tables in the "KEY=value" slice
// form used by os/exec.
package envutil

import (
	"strings"
)

// Clone returns a copy of env. The copy never aliases the input, so callers
// can append or mutate freely.
func Clone(env []string) []string {
	return append(make([]string, 0, len(env)), env...)
}

// Set sets or replaces a variable in an env slice.
// Returns the modified slice. If the key already exists, its value is updated
// in place. Otherwise, the new entry is appended.
func Set(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

// Get gets a value from an env slice.
// Returns the value and true if found, or empty string and false if not.
func Get(env []string, key string) (string, bool) {
	prefix := key + "="
	for _, e := range env {
		if strings.HasPrefix(e, prefix) {
			return e[len(prefix):], true
		}
	}
	return "", false
}

// Unset removes a variable from an env slice.
// Returns a new slice with the variable removed.
func Unset(env []string, key string) []string {
	prefix := key + "="
	result := make([]string, 0, len(env))
	for _, e := range env {
		if !strings.HasPrefix(e, prefix) {
			result = append(result, e)
		}
	}
	return result
}
