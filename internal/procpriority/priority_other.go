//go:build !unix && !windows

package procpriority

// Set is a no-op on platforms with no supported priority primitive.
func Set(level Level) error {
	return nil
}
