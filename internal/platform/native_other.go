//go:build !windows

package platform

// Native returns the Platform for the build target.
func Native() Platform {
	return POSIX{}
}
