//go:build !windows

package fsmeta

func longPath(path string) string {
	return path
}
