//go:build !unix

package config

// isMount is unsupported off unix; the walk stops at the volume root.
func isMount(string) bool {
	return false
}
